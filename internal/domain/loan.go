package domain

import "github.com/shopspring/decimal"

type LoanSimulationInput struct {
	Amount             float64 `json:"amount"`
	TermMonths         int     `json:"termMonths"`
	MonthlyRatePercent float64 `json:"monthlyRatePercent"`
}

type LoanSimulationResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalAmount    float64 `json:"totalAmount"`
	TotalInterest  float64 `json:"totalInterest"`
}

// Installment is one row of an amortization schedule, rounded to cents.
type Installment struct {
	Period           int             `json:"period"`
	Payment          decimal.Decimal `json:"payment"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// LoanPurpose mirrors the options offered by the credit page.
type LoanPurpose string

const (
	PurposePersonal  LoanPurpose = "pessoal"
	PurposeWork      LoanPurpose = "trabalho"
	PurposeEducation LoanPurpose = "estudo"
	PurposeOther     LoanPurpose = "outros"
)

// SimulateLoanRequest is the credit page form. Amount and rate are checked by
// the calculator so that out-of-domain values surface as invalid input.
type SimulateLoanRequest struct {
	Amount             float64  `json:"amount"`
	TermMonths         int      `json:"termMonths" validate:"oneof=12 24 36"`
	MonthlyRatePercent *float64 `json:"monthlyRatePercent"`
	Purpose            string   `json:"purpose" validate:"omitempty,oneof=pessoal trabalho estudo outros"`
	IncludeSchedule    bool     `json:"includeSchedule"`
}

type LoanSimulation struct {
	Input   LoanSimulationInput  `json:"input"`
	Purpose LoanPurpose          `json:"purpose,omitempty"`
	Result  LoanSimulationResult `json:"result"`
}
