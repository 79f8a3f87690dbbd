package credit

import (
	"github.com/shopspring/decimal"
	"github.com/vsbank-api/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Schedule breaks a loan into monthly installments rounded to cents. Interest
// accrues on the remaining balance; the last installment absorbs rounding so
// the balance ends at exactly zero. Inputs must already satisfy Compute.
func Schedule(in domain.LoanSimulationInput) []domain.Installment {
	principal := decimal.NewFromFloat(in.Amount).Round(2)
	r := decimal.NewFromFloat(in.MonthlyRatePercent).Div(hundred)
	n := int64(in.TermMonths)

	var payment decimal.Decimal
	if r.IsZero() {
		payment = principal.Div(decimal.NewFromInt(n))
	} else {
		f := one.Add(r).Pow(decimal.NewFromInt(n))
		payment = principal.Mul(r).Mul(f).Div(f.Sub(one))
	}
	payment = payment.Round(2)

	out := make([]domain.Installment, 0, in.TermMonths)
	balance := principal
	for period := 1; period <= in.TermMonths; period++ {
		interest := balance.Mul(r).Round(2)
		amort := payment.Sub(interest)
		if period == in.TermMonths || amort.GreaterThan(balance) {
			amort = balance
		}
		balance = balance.Sub(amort)
		out = append(out, domain.Installment{
			Period:           period,
			Payment:          amort.Add(interest),
			Principal:        amort,
			Interest:         interest,
			RemainingBalance: balance,
		})
	}
	return out
}
