package receipts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anjiri1684/school_fees/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBranding struct{}

func (failingBranding) Logo(context.Context) (string, error) {
	return "", errors.New("cdn down")
}

type staticBranding string

func (s staticBranding) Logo(context.Context) (string, error) { return string(s), nil }

func sampleDocument(mode models.PaymentMode) Document {
	receipt := "TPS/2025-26/000042"
	section := "B"
	return Document{
		Payment: models.Payment{
			ID:            42,
			Amount:        2500,
			Mode:          mode,
			Status:        models.PaymentStatusConfirmed,
			MonthsCovered: []models.MonthCode{models.Apr, models.May},
			ReceiptNumber: &receipt,
			CreatedAt:     time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC),
		},
		Student:  models.Student{AdmissionNo: "A-100", Name: "Asha Verma"},
		Academic: models.StudentAcademic{AcademicYear: "2025-26", Class: "5", Section: &section},
	}
}

func TestHTMLContainsReceiptFields(t *testing.T) {
	r := NewPDFRenderer(School{Name: "Tagore Public School"}, nil)

	html, err := r.HTML(context.Background(), sampleDocument(models.PaymentModeCash))
	require.NoError(t, err)

	assert.Contains(t, html, "Tagore Public School")
	assert.Contains(t, html, "TPS/2025-26/000042")
	assert.Contains(t, html, "Months Covered: APR, MAY")
	assert.Contains(t, html, "Class: 5-B")
	assert.Contains(t, html, "CASH PAYMENT")
	assert.NotContains(t, html, "<img")
}

func TestHTMLSurvivesBrandingFailure(t *testing.T) {
	r := NewPDFRenderer(School{Name: "Tagore Public School"}, failingBranding{})

	html, err := r.HTML(context.Background(), sampleDocument(models.PaymentModeOnline))
	require.NoError(t, err)
	assert.Contains(t, html, "Fee Receipt")
	assert.NotContains(t, html, "<img")
	assert.NotContains(t, html, "CASH PAYMENT")
}

func TestHTMLIncludesLogo(t *testing.T) {
	r := NewPDFRenderer(School{}, staticBranding("data:image/png;base64,AAAA"))

	html, err := r.HTML(context.Background(), sampleDocument(models.PaymentModeOnline))
	require.NoError(t, err)
	assert.Contains(t, html, `src="data:image/png;base64,AAAA"`)
}
