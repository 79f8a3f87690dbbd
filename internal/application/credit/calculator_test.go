package credit

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsbank-api/internal/domain"
)

func TestCompute_PriceTable(t *testing.T) {
	res, err := Compute(domain.LoanSimulationInput{Amount: 10000, TermMonths: 12, MonthlyRatePercent: 2.99})
	require.NoError(t, err)

	f := math.Pow(1.0299, 12)
	want := 10000 * 0.0299 * f / (f - 1)
	assert.InDelta(t, want, res.MonthlyPayment, 1e-6)
	assert.InDelta(t, 1004.02, res.MonthlyPayment, 0.01)
	assert.InDelta(t, res.MonthlyPayment*12, res.TotalAmount, 1e-6)
	assert.InDelta(t, res.TotalAmount-10000, res.TotalInterest, 1e-6)
}

func TestCompute_ZeroRate(t *testing.T) {
	res, err := Compute(domain.LoanSimulationInput{Amount: 1200, TermMonths: 12})
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.MonthlyPayment)
	assert.Equal(t, 1200.0, res.TotalAmount)
	assert.Equal(t, 0.0, res.TotalInterest)
}

func TestCompute_InvalidInput(t *testing.T) {
	cases := map[string]domain.LoanSimulationInput{
		"zero amount":   {Amount: 0, TermMonths: 12, MonthlyRatePercent: 1},
		"negative term": {Amount: 1000, TermMonths: -1, MonthlyRatePercent: 1},
		"zero term":     {Amount: 1000, TermMonths: 0, MonthlyRatePercent: 1},
		"negative rate": {Amount: 1000, TermMonths: 12, MonthlyRatePercent: -0.5},
		"nan amount":    {Amount: math.NaN(), TermMonths: 12},
		"inf rate":      {Amount: 1000, TermMonths: 12, MonthlyRatePercent: math.Inf(1)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Compute(in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func sumPrincipal(s []domain.Installment) decimal.Decimal {
	total := decimal.Zero
	for _, i := range s {
		total = total.Add(i.Principal)
	}
	return total
}

func TestSchedule_PaysOffExactly(t *testing.T) {
	s := Schedule(domain.LoanSimulationInput{Amount: 10000, TermMonths: 12, MonthlyRatePercent: 2.99})
	require.Len(t, s, 12)

	first := s[0]
	assert.Equal(t, 1, first.Period)
	assert.True(t, first.Interest.Equal(decimal.RequireFromString("299")), "got %s", first.Interest)
	assert.True(t, first.Payment.Equal(decimal.RequireFromString("1004.02")), "got %s", first.Payment)

	last := s[11]
	assert.Equal(t, 12, last.Period)
	assert.True(t, last.RemainingBalance.IsZero())
	assert.True(t, sumPrincipal(s).Equal(decimal.NewFromInt(10000)))
	assert.True(t, last.Payment.Sub(first.Payment).Abs().LessThan(decimal.NewFromFloat(0.10)))
}

func TestSchedule_ZeroRate(t *testing.T) {
	s := Schedule(domain.LoanSimulationInput{Amount: 1000, TermMonths: 12})
	require.Len(t, s, 12)
	for _, i := range s {
		assert.True(t, i.Interest.IsZero())
	}
	assert.True(t, s[0].Payment.Equal(decimal.RequireFromString("83.33")))
	assert.True(t, s[11].Payment.Equal(decimal.RequireFromString("83.37")))
	assert.True(t, sumPrincipal(s).Equal(decimal.NewFromInt(1000)))
}
