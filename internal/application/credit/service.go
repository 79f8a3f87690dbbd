package credit

import (
	"context"
	"fmt"

	"github.com/vsbank-api/internal/domain"
	"github.com/vsbank-api/internal/pkg/money"
	"github.com/vsbank-api/internal/pkg/validate"
)

// Display carries BRL-formatted copies of a simulation's figures.
type Display struct {
	Amount         string `json:"amount"`
	MonthlyRate    string `json:"monthlyRate"`
	MonthlyPayment string `json:"monthlyPayment"`
	TotalAmount    string `json:"totalAmount"`
	TotalInterest  string `json:"totalInterest"`
}

type SimulationResponse struct {
	Simulation domain.LoanSimulation `json:"simulation"`
	Display    Display               `json:"display"`
	Schedule   []domain.Installment  `json:"schedule,omitempty"`
}

type Service interface {
	Simulate(ctx context.Context, sessionToken string, req domain.SimulateLoanRequest) (*SimulationResponse, error)
}

type sessionChecker interface {
	CheckSession(ctx context.Context, token string) error
}

type service struct {
	sessions    sessionChecker
	defaultRate float64
	maxAmount   float64
}

type ServiceDeps struct {
	Sessions           sessionChecker
	DefaultMonthlyRate float64
	MaxAmount          float64
}

func NewService(deps ServiceDeps) Service {
	return &service{
		sessions:    deps.Sessions,
		defaultRate: deps.DefaultMonthlyRate,
		maxAmount:   deps.MaxAmount,
	}
}

func (s *service) Simulate(ctx context.Context, sessionToken string, req domain.SimulateLoanRequest) (*SimulationResponse, error) {
	if err := s.sessions.CheckSession(ctx, sessionToken); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, domain.Validation("Prazo deve ser 12, 24 ou 36 meses e finalidade pessoal, trabalho, estudo ou outros")
	}
	if req.Amount > s.maxAmount {
		return nil, domain.Validation(fmt.Sprintf("O valor máximo é %s", money.BRL(s.maxAmount)))
	}

	in := domain.LoanSimulationInput{
		Amount:             req.Amount,
		TermMonths:         req.TermMonths,
		MonthlyRatePercent: s.defaultRate,
	}
	if req.MonthlyRatePercent != nil {
		in.MonthlyRatePercent = *req.MonthlyRatePercent
	}

	res, err := Compute(in)
	if err != nil {
		return nil, err
	}

	out := &SimulationResponse{
		Simulation: domain.LoanSimulation{Input: in, Purpose: domain.LoanPurpose(req.Purpose), Result: res},
		Display: Display{
			Amount:         money.BRL(in.Amount),
			MonthlyRate:    money.Percent(in.MonthlyRatePercent),
			MonthlyPayment: money.BRL(res.MonthlyPayment),
			TotalAmount:    money.BRL(res.TotalAmount),
			TotalInterest:  money.BRL(res.TotalInterest),
		},
	}
	if req.IncludeSchedule {
		out.Schedule = Schedule(in)
	}
	return out, nil
}
