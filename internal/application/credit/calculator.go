package credit

import (
	"math"

	"github.com/vsbank-api/internal/domain"
)

// Compute returns the fixed monthly payment of an amortized (Price table) loan.
//
//	payment = amount * r(1+r)^n / ((1+r)^n - 1), r = rate/100
//
// A zero rate divides the amount evenly. Results are not rounded.
func Compute(in domain.LoanSimulationInput) (domain.LoanSimulationResult, error) {
	if !finite(in.Amount) || in.Amount <= 0 {
		return domain.LoanSimulationResult{}, domain.InvalidInput("O valor deve ser maior que zero")
	}
	if in.TermMonths <= 0 {
		return domain.LoanSimulationResult{}, domain.InvalidInput("O prazo deve ser maior que zero")
	}
	if !finite(in.MonthlyRatePercent) || in.MonthlyRatePercent < 0 {
		return domain.LoanSimulationResult{}, domain.InvalidInput("A taxa não pode ser negativa")
	}

	n := float64(in.TermMonths)
	r := in.MonthlyRatePercent / 100

	var payment float64
	if r == 0 {
		payment = in.Amount / n
	} else {
		f := math.Pow(1+r, n)
		payment = in.Amount * r * f / (f - 1)
	}
	total := payment * n
	return domain.LoanSimulationResult{
		MonthlyPayment: payment,
		TotalAmount:    total,
		TotalInterest:  total - in.Amount,
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
