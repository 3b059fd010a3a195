package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/hoa_billing_app/internal/core/domain"
	"github.com/SscSPs/hoa_billing_app/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMonthsSurviveJSONColumn(t *testing.T) {
	p := domain.Payment{
		PaymentID:   "p1",
		ApartmentID: "a1",
		Year:        2024,
		DateFrom:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	p.Months[0] = domain.PaymentMonth{Charge: decimal.RequireFromString("100.50"), Payment: decimal.RequireFromString("100")}
	p.Months[11] = domain.PaymentMonth{Charge: decimal.RequireFromString("12"), Payment: decimal.Zero}

	m, err := ToModelPayment(p)
	require.NoError(t, err)
	assert.Contains(t, string(m.Monthly), `"month":12`)

	back, err := ToDomainPayment(m)
	require.NoError(t, err)
	assert.True(t, back.Months[0].Charge.Equal(p.Months[0].Charge))
	assert.True(t, back.Months[11].Charge.Equal(decimal.NewFromInt(12)))
	assert.True(t, back.Months[5].Payment.IsZero())
}

func TestToDomainPayment_BadJSON(t *testing.T) {
	_, err := ToDomainPayment(models.Payment{PaymentID: "broken", Monthly: []byte("{")})
	assert.Error(t, err)
}
