package account

import (
	"context"
	"time"

	"github.com/vsbank-api/internal/config"
	"github.com/vsbank-api/internal/domain"
	"github.com/vsbank-api/internal/fixture"
	"github.com/vsbank-api/internal/pkg/latency"
)

const (
	// DefaultDays is the listing window when the caller gives none.
	DefaultDays = 7
	// MaxDays bounds the listing window, about a century.
	MaxDays = 36500
	// summaryWindow is how many leading fixture transactions the summary covers.
	summaryWindow = 5

	msgInvalidDays = "Parâmetro days inválido"
)

// TransactionQuery filters a transaction listing. Days must lie in [0, MaxDays];
// zero keeps only transactions dated at or after now. An empty Type matches all types.
type TransactionQuery struct {
	Days int
	Type domain.TransactionType
}

type Service interface {
	Info(ctx context.Context, sessionToken string) (*domain.AccountInfo, error)
	Summary(ctx context.Context, sessionToken string) (*domain.AccountSummary, error)
	Transactions(ctx context.Context, sessionToken string, q TransactionQuery) (*domain.TransactionPage, error)
}

type sessionChecker interface {
	CheckSession(ctx context.Context, token string) error
}

type service struct {
	fixture  *fixture.Fixture
	clock    latency.Simulator
	delays   config.Latency
	sessions sessionChecker
}

type ServiceDeps struct {
	Fixture  *fixture.Fixture
	Clock    latency.Simulator
	Delays   config.Latency
	Sessions sessionChecker
}

func NewService(deps ServiceDeps) Service {
	return &service{
		fixture:  deps.Fixture,
		clock:    deps.Clock,
		delays:   deps.Delays,
		sessions: deps.Sessions,
	}
}

// begin waits out the simulated delay, then checks the session token.
func (s *service) begin(ctx context.Context, delay time.Duration, token string) error {
	if err := s.clock.Sleep(ctx, delay); err != nil {
		return err
	}
	return s.sessions.CheckSession(ctx, token)
}

func (s *service) Info(ctx context.Context, sessionToken string) (*domain.AccountInfo, error) {
	if err := s.begin(ctx, s.delays.AccountInfo, sessionToken); err != nil {
		return nil, err
	}
	return &domain.AccountInfo{
		User:    s.fixture.PrimaryUser(),
		Account: s.fixture.PrimaryAccount(),
	}, nil
}

func (s *service) Summary(ctx context.Context, sessionToken string) (*domain.AccountSummary, error) {
	if err := s.begin(ctx, s.delays.Summary, sessionToken); err != nil {
		return nil, err
	}
	txs := s.fixture.Transactions()
	if len(txs) > summaryWindow {
		txs = txs[:summaryWindow]
	}
	return &domain.AccountSummary{
		User:    s.fixture.PrimaryUser(),
		Account: s.fixture.PrimaryAccount(),
		Summary: Summarize(txs),
	}, nil
}

// Summarize totals incoming and outgoing transactions. PIX transactions count
// towards TransactionCount but neither total.
func Summarize(txs []domain.Transaction) domain.Summary {
	var sum domain.Summary
	for _, t := range txs {
		switch t.Type {
		case domain.TransactionIn:
			sum.TotalIn += t.Amount
		case domain.TransactionOut:
			sum.TotalOut += t.Amount
		}
	}
	sum.Balance = sum.TotalIn - sum.TotalOut
	sum.TransactionCount = len(txs)
	return sum
}

func (s *service) Transactions(ctx context.Context, sessionToken string, q TransactionQuery) (*domain.TransactionPage, error) {
	if err := s.begin(ctx, s.delays.Transactions, sessionToken); err != nil {
		return nil, err
	}
	if q.Days < 0 || q.Days > MaxDays {
		return nil, domain.Validation(msgInvalidDays)
	}
	days := q.Days
	cutoff := s.clock.Now().AddDate(0, 0, -days)

	out := []domain.Transaction{}
	for _, t := range s.fixture.Transactions() {
		if t.Date.Before(cutoff) {
			continue
		}
		if q.Type != "" && t.Type != q.Type {
			continue
		}
		out = append(out, t)
	}
	return &domain.TransactionPage{Transactions: out, Total: len(out), Days: days}, nil
}
