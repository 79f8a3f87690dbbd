// Package fixture holds the immutable mock data set served by the gateway.
package fixture

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vsbank-api/internal/domain"
)

// Fixture is a read-only snapshot of users, accounts and transactions.
// Accessors return copies, so callers can never mutate the shared data.
type Fixture struct {
	users        []domain.User
	accounts     []domain.Account
	transactions []domain.Transaction
}

// Document is the JSON shape of a fixture file.
type Document struct {
	Users        []domain.User        `json:"users"`
	Accounts     []domain.Account     `json:"accounts"`
	Transactions []domain.Transaction `json:"transactions"`
}

// New builds a Fixture from the given records. At least one user and one
// account are required because the account endpoints serve the first of each.
func New(users []domain.User, accounts []domain.Account, txs []domain.Transaction) (*Fixture, error) {
	if len(users) == 0 {
		return nil, errors.New("fixture: at least one user is required")
	}
	if len(accounts) == 0 {
		return nil, errors.New("fixture: at least one account is required")
	}
	return &Fixture{
		users:        append([]domain.User(nil), users...),
		accounts:     append([]domain.Account(nil), accounts...),
		transactions: append([]domain.Transaction(nil), txs...),
	}, nil
}

// Decode reads a JSON Document from r.
func Decode(r io.Reader) (*Fixture, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("fixture: decode: %w", err)
	}
	return New(doc.Users, doc.Accounts, doc.Transactions)
}

// Users returns a copy of all users in fixture order.
func (f *Fixture) Users() []domain.User {
	return append([]domain.User(nil), f.users...)
}

// PrimaryUser is the user the account endpoints serve.
func (f *Fixture) PrimaryUser() domain.User { return f.users[0] }

// PrimaryAccount is the account the account endpoints serve.
func (f *Fixture) PrimaryAccount() domain.Account { return f.accounts[0] }

// Transactions returns a copy of all transactions in fixture order.
func (f *Fixture) Transactions() []domain.Transaction {
	return append([]domain.Transaction(nil), f.transactions...)
}

// FindUser returns the user whose email or taxpayer ID equals identifier.
func (f *Fixture) FindUser(identifier string) (domain.User, bool) {
	for _, u := range f.users {
		if u.Email == identifier || u.TaxpayerID == identifier {
			return u, true
		}
	}
	return domain.User{}, false
}

func (f *Fixture) EmailTaken(email string) bool {
	for _, u := range f.users {
		if u.Email == email {
			return true
		}
	}
	return false
}

func (f *Fixture) TaxpayerIDTaken(taxpayerID string) bool {
	for _, u := range f.users {
		if u.TaxpayerID == taxpayerID {
			return true
		}
	}
	return false
}

// Rebase returns a copy whose transaction dates are shifted by whole days so
// the most recent one falls on the calendar day of now. Gaps between
// transactions and times of day are preserved.
func (f *Fixture) Rebase(now time.Time) *Fixture {
	out := &Fixture{
		users:        f.Users(),
		accounts:     append([]domain.Account(nil), f.accounts...),
		transactions: f.Transactions(),
	}
	if len(out.transactions) == 0 {
		return out
	}
	latest := out.transactions[0].Date
	for _, t := range out.transactions[1:] {
		if t.Date.After(latest) {
			latest = t.Date
		}
	}
	latest = latest.UTC()
	now = now.UTC()
	latestDay := time.Date(latest.Year(), latest.Month(), latest.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(today.Sub(latestDay).Hours() / 24)
	for i := range out.transactions {
		out.transactions[i].Date = out.transactions[i].Date.AddDate(0, 0, days)
	}
	return out
}
