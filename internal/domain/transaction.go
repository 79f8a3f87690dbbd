package domain

import "time"

type TransactionType string

const (
	TransactionIn  TransactionType = "IN"
	TransactionOut TransactionType = "OUT"
	TransactionPix TransactionType = "PIX"
)

type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusPending   TransactionStatus = "PENDING"
	StatusFailed    TransactionStatus = "FAILED"
)

type Transaction struct {
	TransactionID string            `json:"id"`
	Type          TransactionType   `json:"type"`
	Amount        float64           `json:"amount"`
	Description   string            `json:"description"`
	Date          time.Time         `json:"date"`
	Status        TransactionStatus `json:"status"`
}

// TransactionPage is the result of a transaction listing.
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
	Days         int           `json:"days"`
}
