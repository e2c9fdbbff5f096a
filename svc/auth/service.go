package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authgate/pkg/account"
	"github.com/dmitrymomot/authgate/pkg/email"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/metrics"
	"github.com/dmitrymomot/authgate/pkg/password"
	"github.com/dmitrymomot/authgate/pkg/ratelimiter"
	"github.com/dmitrymomot/authgate/pkg/session"
	"github.com/dmitrymomot/authgate/pkg/token"
	"github.com/dmitrymomot/authgate/pkg/validator"
)

// VerificationCodeLength is the length of the code mailed on registration.
const VerificationCodeLength = 32

// Login outcomes reported to metrics.
const (
	LoginSuccess   = "success"
	LoginRejected  = "rejected"
	LoginThrottled = "throttled"
)

// Session is a freshly issued session as returned to clients.
type Session struct {
	Token string `json:"token"`
	TTL   int    `json:"ttl"`
}

func newSession(issued session.Issued) Session {
	return Session{Token: issued.Token, TTL: issued.TTLSeconds()}
}

// RegisterInput is the data needed to open an account.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Service implements the account lifecycle on top of the stores.
type Service struct {
	accounts account.Store
	sessions *session.Manager
	hasher   *password.Hasher
	limiter  ratelimiter.Limiter
	mailer   email.Sender
	log      *slog.Logger
	metrics  metrics.Recorder
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLoginLimiter throttles login attempts per identifier.
func WithLoginLimiter(l ratelimiter.Limiter) ServiceOption {
	return func(s *Service) {
		s.limiter = l
	}
}

// WithMailer enables verification mails.
func WithMailer(m email.Sender) ServiceOption {
	return func(s *Service) {
		s.mailer = m
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(r metrics.Recorder) ServiceOption {
	return func(s *Service) {
		if r != nil {
			s.metrics = r
		}
	}
}

// NewService creates the account service.
func NewService(accounts account.Store, sessions *session.Manager, hasher *password.Hasher, opts ...ServiceOption) *Service {
	s := &Service{
		accounts: accounts,
		sessions: sessions,
		hasher:   hasher,
		log:      logger.Discard(),
		metrics:  metrics.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account with a password method, mails its
// verification code and opens the first session.
func (s *Service) Register(ctx context.Context, in RegisterInput, ip, userAgent string) (*account.Account, Session, error) {
	username := strings.TrimSpace(in.Username)
	address := strings.TrimSpace(in.Email)
	if err := validator.Apply(
		validator.LenBetween("username", username, 3, 32, "Username must be between 3 and 32 characters."),
		validator.Email("email", address, "Email address is not valid."),
		passwordRule("password", in.Password),
	); err != nil {
		return nil, Session{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, Session{}, fmt.Errorf("auth: hash password: %w", err)
	}
	code, err := token.RandomString(VerificationCodeLength)
	if err != nil {
		return nil, Session{}, fmt.Errorf("auth: verification code: %w", err)
	}

	acc := account.New(username, account.NormalizeEmail(address),
		account.Methods{account.PasswordAuthentication: hash}, &code)
	if err := s.accounts.Register(ctx, acc); err != nil {
		return nil, Session{}, err
	}

	if s.mailer != nil {
		if err := email.SendVerification(ctx, s.mailer, acc.Email, acc.Username, code); err != nil {
			s.log.ErrorContext(ctx, "failed to send verification email",
				logger.AccountID(acc.ID.String()),
				logger.Error(err),
			)
		}
	}

	issued, err := s.sessions.Create(ctx, ip, userAgent, acc.ID.String())
	if err != nil {
		return nil, Session{}, fmt.Errorf("auth: create session: %w", err)
	}

	s.log.InfoContext(ctx, "account registered",
		logger.Event("account_registered"),
		logger.AccountID(acc.ID.String()),
	)

	return acc, newSession(issued), nil
}

// Login checks a password against the account found by username, then by
// email, and opens a session.
func (s *Service) Login(ctx context.Context, identifier, pw, ip, userAgent string) (Session, error) {
	identifier = strings.TrimSpace(identifier)
	key := "login:" + account.NormalizeEmail(identifier)

	if s.limiter != nil {
		res, err := s.limiter.Allow(ctx, key)
		if err != nil {
			return Session{}, fmt.Errorf("auth: login limiter: %w", err)
		}
		if !res.Allowed() {
			s.metrics.RecordLogin(LoginThrottled)
			return Session{}, ErrTooManyAttempts
		}
	}

	acc, err := s.lookup(ctx, identifier)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			s.metrics.RecordLogin(LoginRejected)
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	hash, ok := acc.Methods[account.PasswordAuthentication]
	if !ok {
		s.metrics.RecordLogin(LoginRejected)
		return Session{}, ErrPasswordNotEnabled
	}

	match, err := s.hasher.Verify(hash, pw)
	if err != nil {
		return Session{}, fmt.Errorf("auth: verify password: %w", err)
	}
	if !match {
		s.metrics.RecordLogin(LoginRejected)
		return Session{}, ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, key); err != nil {
			s.log.WarnContext(ctx, "failed to reset login limiter", logger.Error(err))
		}
	}
	s.rehash(ctx, acc, hash, pw)

	issued, err := s.sessions.Create(ctx, ip, userAgent, acc.ID.String())
	if err != nil {
		return Session{}, fmt.Errorf("auth: create session: %w", err)
	}
	s.metrics.RecordLogin(LoginSuccess)

	return newSession(issued), nil
}

func (s *Service) lookup(ctx context.Context, identifier string) (*account.Account, error) {
	acc, err := s.accounts.GetByUsername(ctx, identifier)
	if err == nil || !errors.Is(err, account.ErrAccountNotFound) {
		return acc, err
	}
	return s.accounts.GetByEmail(ctx, account.NormalizeEmail(identifier))
}

// Logout deletes the session identified by tok.
func (s *Service) Logout(ctx context.Context, tok string) error {
	return s.sessions.Store().Delete(ctx, tok)
}

// LogoutAll deletes every session of the account.
func (s *Service) LogoutAll(ctx context.Context, id uuid.UUID) error {
	return s.sessions.RevokeAll(ctx, id.String())
}

// Verify consumes the verification code. All existing sessions are dropped
// and a new one is returned.
func (s *Service) Verify(ctx context.Context, acc *account.Account, code, ip, userAgent string) (Session, error) {
	if acc.Verified() {
		return Session{}, ErrAlreadyVerified
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(*acc.VerificationToken)) != 1 {
		return Session{}, ErrInvalidVerificationCode
	}

	if err := s.accounts.Verify(ctx, acc.ID); err != nil {
		return Session{}, err
	}
	if err := s.sessions.RevokeAll(ctx, acc.ID.String()); err != nil {
		return Session{}, fmt.Errorf("auth: drop sessions: %w", err)
	}

	issued, err := s.sessions.Create(ctx, ip, userAgent, acc.ID.String())
	if err != nil {
		return Session{}, fmt.Errorf("auth: create session: %w", err)
	}
	return newSession(issued), nil
}

// Delete removes the account and all of its sessions.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.sessions.RevokeAll(ctx, id.String()); err != nil {
		return fmt.Errorf("auth: drop sessions: %w", err)
	}
	s.log.InfoContext(ctx, "account deleted",
		logger.Event("account_deleted"),
		logger.AccountID(id.String()),
	)
	return nil
}

// UpdateAuthenticationMethod adds or replaces a method. Password values are
// stored hashed.
func (s *Service) UpdateAuthenticationMethod(ctx context.Context, acc *account.Account, tag account.Tag, value string) error {
	if !tag.Valid() {
		return ErrInvalidMethodTag
	}
	if value == "" {
		return ErrInvalidMethodValue
	}

	if tag == account.PasswordAuthentication {
		if err := validator.Apply(passwordRule("value", value)); err != nil {
			return err
		}
		hash, err := s.hasher.Hash(value)
		if err != nil {
			return fmt.Errorf("auth: hash password: %w", err)
		}
		value = hash
	}

	return s.accounts.UpdateAuthenticationMethod(ctx, acc.ID, tag, value)
}

// rehash upgrades a stale password hash after a successful login.
func (s *Service) rehash(ctx context.Context, acc *account.Account, hash, pw string) {
	if !s.hasher.NeedsRehash(hash) {
		return
	}
	upgraded, err := s.hasher.Hash(pw)
	if err == nil {
		err = s.accounts.UpdateAuthenticationMethod(ctx, acc.ID, account.PasswordAuthentication, upgraded)
	}
	if err != nil {
		s.log.WarnContext(ctx, "failed to upgrade password hash",
			logger.Error(err),
			logger.AccountID(acc.ID.String()),
		)
	}
}

// RemoveAuthenticationMethod drops a method unless it is the last one.
func (s *Service) RemoveAuthenticationMethod(ctx context.Context, acc *account.Account, tag account.Tag) error {
	if !tag.Valid() {
		return ErrUnknownMethod
	}
	err := s.accounts.RemoveAuthenticationMethod(ctx, acc.ID, tag)
	if errors.Is(err, account.ErrMethodNotFound) {
		return ErrUnknownMethod
	}
	return err
}

func passwordRule(field, pw string) validator.Rule {
	return validator.LenBetween(field, pw, 8, 128, "Password must be between 8 and 128 characters.")
}
