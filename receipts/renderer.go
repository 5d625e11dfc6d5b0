// Package receipts renders fee receipts to PDF.
package receipts

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/anjiri1684/school_fees/logger"
	"github.com/anjiri1684/school_fees/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

//go:embed templates/receipt.html
var templateFS embed.FS

var receiptTemplate = template.Must(template.ParseFS(templateFS, "templates/receipt.html"))

type School struct {
	Name        string
	Affiliation string
	Address     string
}

// Document is everything printed on one receipt.
type Document struct {
	Payment  models.Payment
	Student  models.Student
	Academic models.StudentAcademic
}

type view struct {
	LogoSrc       template.URL
	SchoolName    string
	Affiliation   string
	Address       string
	ReceiptNumber string
	Date          string
	Mode          models.PaymentMode
	Amount        int64
	Months        string
	StudentName   string
	AdmissionNo   string
	Class         string
	AcademicYear  string
	Cash          bool
}

// PDFRenderer prints receipts with headless Chrome.
type PDFRenderer struct {
	school   School
	branding Branding
	timeout  time.Duration
}

func NewPDFRenderer(school School, branding Branding) *PDFRenderer {
	if branding == nil {
		branding = NoBranding{}
	}
	return &PDFRenderer{school: school, branding: branding, timeout: 30 * time.Second}
}

func (r *PDFRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	html, err := r.HTML(ctx, doc)
	if err != nil {
		return nil, err
	}
	return r.printPDF(ctx, html)
}

// HTML renders the receipt markup. A branding failure only drops the logo.
func (r *PDFRenderer) HTML(ctx context.Context, doc Document) (string, error) {
	logo, err := r.branding.Logo(ctx)
	if err != nil {
		logger.Warn().Err(err).Uint("payment_id", doc.Payment.ID).Msg("receipt branding unavailable, rendering without logo")
		logo = ""
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, buildView(r.school, logo, doc)); err != nil {
		return "", fmt.Errorf("failed to render receipt template: %w", err)
	}
	return buf.String(), nil
}

func buildView(school School, logo string, doc Document) view {
	p := doc.Payment
	months := make([]string, 0, len(p.MonthsCovered))
	for _, m := range p.MonthsCovered {
		months = append(months, string(m))
	}

	class := doc.Academic.Class
	if doc.Academic.Section != nil && *doc.Academic.Section != "" {
		class += "-" + *doc.Academic.Section
	}

	receiptNo := ""
	if p.ReceiptNumber != nil {
		receiptNo = *p.ReceiptNumber
	}

	return view{
		LogoSrc:       template.URL(logo),
		SchoolName:    school.Name,
		Affiliation:   school.Affiliation,
		Address:       school.Address,
		ReceiptNumber: receiptNo,
		Date:          p.CreatedAt.Format("02 Jan 2006"),
		Mode:          p.Mode,
		Amount:        p.Amount,
		Months:        strings.Join(months, ", "),
		StudentName:   doc.Student.Name,
		AdmissionNo:   doc.Student.AdmissionNo,
		Class:         class,
		AcademicYear:  doc.Academic.AcademicYear,
		Cash:          p.Mode == models.PaymentModeCash,
	}
}

func (r *PDFRenderer) printPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	ctx, cancel = chromedp.NewContext(ctx)
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
		return nil, fmt.Errorf("failed to print receipt PDF: %w", err)
	}
	return pdfBuffer, nil
}
