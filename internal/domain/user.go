package domain

import "time"

// User is a fixture customer. TaxpayerID holds the CPF in 000.000.000-00 form.
type User struct {
	UserID     string `json:"id" dynamodbav:"user_id"`
	Name       string `json:"name" dynamodbav:"name"`
	Email      string `json:"email" dynamodbav:"email"`
	TaxpayerID string `json:"taxpayerId" dynamodbav:"taxpayer_id"`
}

// RegisteredUser is a user created through registration when a registration store is configured.
type RegisteredUser struct {
	User
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
}

// PublicUser is the subset of User returned by login.
type PublicUser struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Public strips the taxpayer ID.
func (u User) Public() PublicUser {
	return PublicUser{UserID: u.UserID, Name: u.Name, Email: u.Email}
}

// Profile is what registration echoes back.
type Profile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	TaxpayerID string `json:"taxpayerId"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type TwoFactorRequest struct {
	Code     string `json:"code" validate:"required"`
	PreToken string `json:"preToken" validate:"required"`
}

type RegisterRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required"`
	TaxpayerID string `json:"taxpayerId" validate:"required"`
	Password   string `json:"password" validate:"required"`
}
