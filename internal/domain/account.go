package domain

type Account struct {
	AccountID        string  `json:"id"`
	AccountNumber    string  `json:"accountNumber"`
	Balance          float64 `json:"balance"`
	AvailableBalance float64 `json:"availableBalance"`
	BlockedBalance   float64 `json:"blockedBalance"`
}

// Summary aggregates a slice of recent transactions.
type Summary struct {
	TotalIn          float64 `json:"totalIn"`
	TotalOut         float64 `json:"totalOut"`
	Balance          float64 `json:"balance"`
	TransactionCount int     `json:"transactionCount"`
}

type AccountInfo struct {
	User    User    `json:"user"`
	Account Account `json:"account"`
}

type AccountSummary struct {
	User    User    `json:"user"`
	Account Account `json:"account"`
	Summary Summary `json:"summary"`
}
