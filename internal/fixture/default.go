package fixture

import (
	"time"

	"github.com/vsbank-api/internal/domain"
)

// Default returns the demo data set the front end was designed against.
func Default() *Fixture {
	f, _ := New(defaultUsers(), defaultAccounts(), defaultTransactions())
	return f
}

func defaultUsers() []domain.User {
	return []domain.User{
		{UserID: "1", Name: "João Silva", Email: "joao@email.com", TaxpayerID: "123.456.789-00"},
		{UserID: "2", Name: "Maria Santos", Email: "maria@email.com", TaxpayerID: "987.654.321-00"},
	}
}

func defaultAccounts() []domain.Account {
	return []domain.Account{
		{AccountID: "1", AccountNumber: "0012345-6", Balance: 5250.00, AvailableBalance: 5250.00, BlockedBalance: 0},
		{AccountID: "2", AccountNumber: "0012346-7", Balance: 3200.50, AvailableBalance: 3200.50, BlockedBalance: 0},
	}
}

func defaultTransactions() []domain.Transaction {
	return []domain.Transaction{
		{TransactionID: "1", Type: domain.TransactionIn, Amount: 150.00, Description: "Transferência PIX recebida", Date: utc(2024, time.September, 1, 10, 30), Status: domain.StatusCompleted},
		{TransactionID: "2", Type: domain.TransactionOut, Amount: 89.90, Description: "Pagamento de conta de luz", Date: utc(2024, time.August, 31, 15, 45), Status: domain.StatusCompleted},
		{TransactionID: "3", Type: domain.TransactionIn, Amount: 500.00, Description: "Depósito em dinheiro", Date: utc(2024, time.August, 30, 9, 15), Status: domain.StatusCompleted},
		{TransactionID: "4", Type: domain.TransactionPix, Amount: 75.50, Description: "Transferência PIX enviada", Date: utc(2024, time.August, 29, 14, 20), Status: domain.StatusCompleted},
	}
}

func utc(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}
