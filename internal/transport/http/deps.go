package http

import (
	"github.com/vsbank-api/internal/application/account"
	"github.com/vsbank-api/internal/application/auth"
	"github.com/vsbank-api/internal/application/credit"
)

// Deps holds the application services the router exposes.
type Deps struct {
	Auth    auth.Service
	Account account.Service
	Credit  credit.Service
}
