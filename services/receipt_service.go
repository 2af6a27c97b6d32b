package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	config "github.com/skillmarkets/backend/configs"
	"github.com/skillmarkets/backend/database"
	"github.com/skillmarkets/backend/models"
)

const receiptTemplate = `<!DOCTYPE html>
<html>
<head><style>
body { font-family: Georgia, serif; margin: 48px; color: #222; }
h1 { border-bottom: 2px solid #222; padding-bottom: 8px; }
table { width: 100%; border-collapse: collapse; margin-top: 24px; }
td { padding: 6px 0; }
td.label { color: #666; width: 40%; }
</style></head>
<body>
<h1>SkillMarkets — Session Receipt</h1>
<table>
<tr><td class="label">Booking</td><td>{{.BookingID}}</td></tr>
<tr><td class="label">Student</td><td>{{.StudentName}}</td></tr>
<tr><td class="label">Tutor</td><td>{{.TutorName}}</td></tr>
<tr><td class="label">Subject</td><td>{{.Subject}}</td></tr>
<tr><td class="label">Session</td><td>{{.Session}}</td></tr>
<tr><td class="label">Amount paid</td><td>{{.Amount}}</td></tr>
<tr><td class="label">Issued</td><td>{{.Issued}}</td></tr>
</table>
</body>
</html>`

// GenerateBookingReceipt renders a PDF receipt for a completed booking and
// stores its URL on the payment record. Skipped when cloudinary is not
// configured.
func GenerateBookingReceipt(bookingID uuid.UUID) {
	if config.Get().CloudinaryURL == "" {
		return
	}

	var booking models.Booking
	if err := database.DB.Preload("Student").Preload("Tutor").Preload("Offer").
		First(&booking, "id = ?", bookingID).Error; err != nil {
		logrus.Errorf("receipt: booking %s not found: %v", bookingID, err)
		return
	}

	var payment models.Payment
	if err := database.DB.Where("booking_id = ? AND status = ?", bookingID, models.PaymentSucceeded).
		First(&payment).Error; err != nil {
		logrus.Errorf("receipt: no succeeded payment for booking %s", bookingID)
		return
	}
	if payment.ReceiptURL != nil {
		return
	}

	html, err := renderReceiptHTML(booking, payment)
	if err != nil {
		logrus.Errorf("receipt: failed to render HTML: %v", err)
		return
	}

	pdfBytes, err := renderPDFFromHTML(html)
	if err != nil {
		logrus.Errorf("receipt: failed to render PDF: %v", err)
		return
	}

	receiptURL, err := uploadReceipt(pdfBytes, booking.ID.String())
	if err != nil {
		logrus.Errorf("receipt: upload failed: %v", err)
		return
	}

	payment.ReceiptURL = &receiptURL
	if err := database.DB.Save(&payment).Error; err != nil {
		logrus.Errorf("receipt: failed to store receipt URL for booking %s: %v", bookingID, err)
		return
	}
	logrus.Infof("receipt generated for booking %s", bookingID)
}

func renderReceiptHTML(booking models.Booking, payment models.Payment) (string, error) {
	tmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		BookingID   string
		StudentName string
		TutorName   string
		Subject     string
		Session     string
		Amount      string
		Issued      string
	}{
		BookingID:   booking.ID.String(),
		StudentName: booking.Student.Username,
		TutorName:   booking.Tutor.Username,
		Subject:     booking.Offer.Subject,
		Session: fmt.Sprintf("%s — %s",
			booking.StartTime.Format("Jan 2, 2006 15:04"),
			booking.EndTime.Format("15:04")),
		Amount: fmt.Sprintf("$%.2f %s", float64(payment.AmountCents)/100, payment.Currency),
		Issued: time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func renderPDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceipt(fileBytes []byte, bookingID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Get().CloudinaryURL)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s_%s", bookingID, uuid.New().String()),
		Folder:       "skillmarkets_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
