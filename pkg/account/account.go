package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Account is a persisted user record.
type Account struct {
	ID                uuid.UUID
	Username          string
	Email             string
	CreatedAt         time.Time
	Roles             uint64
	Methods           Methods
	VerificationToken *string
}

// New builds an unsaved account with a fresh id.
func New(username, email string, methods Methods, verificationToken *string) *Account {
	return &Account{
		ID:                uuid.New(),
		Username:          username,
		Email:             email,
		CreatedAt:         time.Now().UTC().Truncate(time.Second),
		Methods:           methods,
		VerificationToken: verificationToken,
	}
}

// Verified reports whether the account has no pending verification token.
func (a *Account) Verified() bool {
	return a.VerificationToken == nil
}

// Clone returns a deep copy of a.
func (a *Account) Clone() *Account {
	c := *a
	c.Methods = a.Methods.Clone()
	if a.VerificationToken != nil {
		v := *a.VerificationToken
		c.VerificationToken = &v
	}
	return &c
}

// View is the public representation of an account.
type View struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	CreatedAt      int64  `json:"created_at"`
	Roles          uint64 `json:"roles"`
	Authentication int16  `json:"authentication"`
	Verified       bool   `json:"verified"`
}

// View returns the public representation of a.
func (a *Account) View() View {
	return View{
		ID:             a.ID.String(),
		Username:       a.Username,
		Email:          a.Email,
		CreatedAt:      a.CreatedAt.Unix(),
		Roles:          a.Roles,
		Authentication: int16(a.Methods.Mask()),
		Verified:       a.Verified(),
	}
}

// NormalizeEmail trims and case-folds an email address for storage and lookup.
func NormalizeEmail(email string) string {
	// A Caser is stateful and must not be shared between goroutines.
	return cases.Fold().String(strings.TrimSpace(email))
}
