package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vsbank-api/internal/config"
	"github.com/vsbank-api/internal/domain"
	"github.com/vsbank-api/internal/fixture"
	jwtinfra "github.com/vsbank-api/internal/infrastructure/jwt"
	"github.com/vsbank-api/internal/infrastructure/smtp"
	"github.com/vsbank-api/internal/pkg/id"
	"github.com/vsbank-api/internal/pkg/latency"
	pkgtoken "github.com/vsbank-api/internal/pkg/token"
	"github.com/vsbank-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// User-facing messages.
const (
	msgLoginRequired     = "Email/CPF e senha são obrigatórios"
	msgInvalidCreds      = "Credenciais inválidas"
	msgTwoFactorRequired = "Código e preToken são obrigatórios"
	msgInvalidCode       = "Código inválido"
	msgInvalidPreToken   = "preToken inválido ou expirado"
	msgRegisterRequired  = "Todos os campos são obrigatórios"
	msgEmailTaken        = "Email já cadastrado"
	msgTaxpayerIDTaken   = "CPF já cadastrado"
	msgInvalidSession    = "Token de autenticação inválido"
)

type LoginResult struct {
	PreToken string
	User     domain.PublicUser
}

type TwoFactorResult struct {
	Token string
	User  domain.User
}

type Service interface {
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
	VerifyTwoFactor(ctx context.Context, req domain.TwoFactorRequest) (*TwoFactorResult, error)
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.Profile, error)
	CheckSession(ctx context.Context, token string) error
}

// tokenLedger binds issued tokens to the e-mail of the user they were issued for.
type tokenLedger interface {
	Put(ctx context.Context, token, email string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Take(ctx context.Context, token string) (string, error)
}

type registrationStore interface {
	Put(ctx context.Context, u *domain.RegisteredUser) error
	GetByEmail(ctx context.Context, email string) (*domain.RegisteredUser, error)
	GetByTaxpayerID(ctx context.Context, taxpayerID string) (*domain.RegisteredUser, error)
	GetByIdentifier(ctx context.Context, identifier string) (*domain.RegisteredUser, error)
}

type sessionSigner interface {
	Sign(userID string) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, e domain.Event) error
}

type service struct {
	fixture       *fixture.Fixture
	clock         latency.Simulator
	delays        config.Latency
	strict        bool
	preTokenTTL   time.Duration
	sessionTTL    time.Duration
	ledger        tokenLedger
	registrations registrationStore
	signer        sessionSigner
	publisher     eventPublisher
	mailer        smtp.Mailer
}

// ServiceDeps wires the auth service. Fixture, Clock and Ledger are required;
// the rest are optional and left nil when not configured.
type ServiceDeps struct {
	Fixture       *fixture.Fixture
	Clock         latency.Simulator
	Delays        config.Latency
	Auth          config.Auth
	Ledger        tokenLedger
	Registrations registrationStore
	Signer        sessionSigner
	Publisher     eventPublisher
	Mailer        smtp.Mailer
}

func NewService(deps ServiceDeps) Service {
	return &service{
		fixture:       deps.Fixture,
		clock:         deps.Clock,
		delays:        deps.Delays,
		strict:        deps.Auth.StrictTokens,
		preTokenTTL:   deps.Auth.PreTokenTTL,
		sessionTTL:    deps.Auth.SessionTTL,
		ledger:        deps.Ledger,
		registrations: deps.Registrations,
		signer:        deps.Signer,
		publisher:     deps.Publisher,
		mailer:        deps.Mailer,
	}
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	if err := s.clock.Sleep(ctx, s.delays.Login); err != nil {
		return nil, err
	}
	if validate.Struct(req) != nil {
		return nil, domain.Validation(msgLoginRequired)
	}

	u, err := s.findUser(ctx, req.Identifier, req.Password)
	if err != nil {
		return nil, err
	}

	preToken := pkgtoken.NewPreAuth()
	if err := s.ledger.Put(ctx, preAuthKey(preToken), u.Email, s.preTokenTTL); err != nil {
		return nil, fmt.Errorf("record pre-auth token: %w", err)
	}
	s.publish(ctx, domain.EventLogin, u)
	return &LoginResult{PreToken: preToken, User: u.Public()}, nil
}

// findUser matches identifier against the fixture first. Fixture users accept
// any password; registered users must match their stored hash.
func (s *service) findUser(ctx context.Context, identifier, password string) (domain.User, error) {
	if u, ok := s.fixture.FindUser(identifier); ok {
		return u, nil
	}
	if s.registrations == nil {
		return domain.User{}, domain.Unauthorized(msgInvalidCreds)
	}
	ru, err := s.registrations.GetByIdentifier(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, domain.Unauthorized(msgInvalidCreds)
	}
	if err != nil {
		return domain.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(ru.PasswordHash), []byte(password)) != nil {
		return domain.User{}, domain.Unauthorized(msgInvalidCreds)
	}
	return ru.User, nil
}

func (s *service) VerifyTwoFactor(ctx context.Context, req domain.TwoFactorRequest) (*TwoFactorResult, error) {
	if err := s.clock.Sleep(ctx, s.delays.TwoFactor); err != nil {
		return nil, err
	}
	if validate.Struct(req) != nil {
		return nil, domain.Validation(msgTwoFactorRequired)
	}
	if !validate.OTP(req.Code) {
		return nil, domain.Validation(msgInvalidCode)
	}

	u, err := s.preTokenUser(ctx, req.PreToken)
	if err != nil {
		return nil, err
	}

	tok, err := s.newSession(u.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.Put(ctx, sessionKey(tok), u.Email, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("record session token: %w", err)
	}
	s.publish(ctx, domain.EventTwoFactor, u)
	return &TwoFactorResult{Token: tok, User: u}, nil
}

// Pre-auth and session tokens share one ledger, keyed by kind so neither can
// stand in for the other.
func preAuthKey(tok string) string { return "pre:" + tok }
func sessionKey(tok string) string { return "sess:" + tok }

// preTokenUser resolves the user a pre-auth token was issued for. In strict
// mode the token is consumed and must exist; otherwise any token is accepted
// and unknown ones fall back to the primary fixture user.
func (s *service) preTokenUser(ctx context.Context, preToken string) (domain.User, error) {
	var (
		email string
		err   error
	)
	if s.strict {
		if !pkgtoken.IsPreAuth(preToken) {
			return domain.User{}, domain.Unauthorized(msgInvalidPreToken)
		}
		email, err = s.ledger.Take(ctx, preAuthKey(preToken))
	} else {
		email, err = s.ledger.Get(ctx, preAuthKey(preToken))
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if s.strict {
			return domain.User{}, domain.Unauthorized(msgInvalidPreToken)
		}
		return s.fixture.PrimaryUser(), nil
	case err != nil:
		return domain.User{}, err
	}

	if u, ok := s.fixture.FindUser(email); ok {
		return u, nil
	}
	if s.registrations != nil {
		ru, err := s.registrations.GetByEmail(ctx, email)
		if err == nil {
			return ru.User, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, err
		}
	}
	return s.fixture.PrimaryUser(), nil
}

func (s *service) newSession(userID string) (string, error) {
	if s.signer == nil {
		return pkgtoken.NewSession(), nil
	}
	tok, err := s.signer.Sign(userID)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return tok, nil
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Profile, error) {
	if err := s.clock.Sleep(ctx, s.delays.Register); err != nil {
		return nil, err
	}
	if validate.Struct(req) != nil {
		return nil, domain.Validation(msgRegisterRequired)
	}
	if err := s.checkAvailable(ctx, req.Email, req.TaxpayerID); err != nil {
		return nil, err
	}

	u := domain.User{Name: req.Name, Email: req.Email, TaxpayerID: req.TaxpayerID}
	if s.registrations != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.UserID = id.New()
		ru := &domain.RegisteredUser{User: u, PasswordHash: string(hash), CreatedAt: s.clock.Now()}
		if err := s.registrations.Put(ctx, ru); err != nil {
			if !errors.Is(err, domain.ErrConflict) {
				return nil, err
			}
			// Lost a race with a concurrent registration; report the field that collided.
			if cerr := s.checkAvailable(ctx, req.Email, req.TaxpayerID); cerr != nil {
				return nil, cerr
			}
			return nil, domain.Conflict(msgEmailTaken)
		}
	}

	if s.mailer != nil {
		subject, body := smtp.WelcomeMessage(u.Name)
		if err := s.mailer.SendEmail(u.Email, subject, body); err != nil {
			slog.Warn("failed to send welcome email", "email", u.Email, "err", err)
		}
	}
	s.publish(ctx, domain.EventRegister, u)
	return &domain.Profile{Name: u.Name, Email: u.Email, TaxpayerID: u.TaxpayerID}, nil
}

func (s *service) checkAvailable(ctx context.Context, email, taxpayerID string) error {
	if s.fixture.EmailTaken(email) {
		return domain.Conflict(msgEmailTaken)
	}
	if s.fixture.TaxpayerIDTaken(taxpayerID) {
		return domain.Conflict(msgTaxpayerIDTaken)
	}
	if s.registrations == nil {
		return nil
	}
	if _, err := s.registrations.GetByEmail(ctx, email); err == nil {
		return domain.Conflict(msgEmailTaken)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if _, err := s.registrations.GetByTaxpayerID(ctx, taxpayerID); err == nil {
		return domain.Conflict(msgTaxpayerIDTaken)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

// CheckSession accepts any non-empty token unless strict mode is on, in which
// case the token must have been issued by VerifyTwoFactor and not expired.
// Pre-auth tokens never pass as sessions.
func (s *service) CheckSession(ctx context.Context, token string) error {
	if token == "" {
		return domain.Unauthorized(msgInvalidSession)
	}
	if !s.strict {
		return nil
	}
	if pkgtoken.IsPreAuth(token) {
		return domain.Unauthorized(msgInvalidSession)
	}
	if s.signer != nil {
		if _, err := s.signer.Verify(token); err != nil {
			return domain.Unauthorized(msgInvalidSession)
		}
	}
	_, err := s.ledger.Get(ctx, sessionKey(token))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Unauthorized(msgInvalidSession)
	}
	return err
}

// publish is best effort: a failed event never fails the request.
func (s *service) publish(ctx context.Context, eventType string, u domain.User) {
	if s.publisher == nil {
		return
	}
	e := domain.Event{
		EventID:    id.New(),
		Type:       eventType,
		UserID:     u.UserID,
		Email:      u.Email,
		OccurredAt: s.clock.Now(),
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		slog.Warn("failed to publish event", "type", eventType, "err", err)
	}
}
