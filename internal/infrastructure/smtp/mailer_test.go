package smtp

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsbank-api/internal/config"
)

func TestSendEmail(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	var gotAuth smtp.Auth

	m := NewMailer(&config.Config{SMTPHost: "localhost", SMTPPort: "1025", SMTPFrom: "nao-responda@vsbank.local"}).(*mailer)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, msg
		return nil
	}

	subject, body := WelcomeMessage("Ana")
	require.NoError(t, m.SendEmail("ana@email.com", subject, body))

	assert.Equal(t, "localhost:1025", gotAddr)
	assert.Nil(t, gotAuth)
	assert.Equal(t, "nao-responda@vsbank.local", gotFrom)
	assert.Equal(t, []string{"ana@email.com"}, gotTo)
	assert.True(t, strings.HasPrefix(string(gotMsg), "From: nao-responda@vsbank.local\r\nTo: ana@email.com\r\nSubject: Bem-vindo ao VSBank\r\n"))
	assert.Contains(t, string(gotMsg), "Olá, Ana!")
}

func TestSendEmail_AuthAndError(t *testing.T) {
	m := NewMailer(&config.Config{SMTPHost: "mail", SMTPPort: "587", SMTPUsername: "u", SMTPPassword: "p"}).(*mailer)
	m.send = func(_ string, a smtp.Auth, _ string, _ []string, _ []byte) error {
		assert.NotNil(t, a)
		return errors.New("connection refused")
	}
	err := m.SendEmail("x@email.com", "s", "b")
	assert.ErrorContains(t, err, "connection refused")
}
