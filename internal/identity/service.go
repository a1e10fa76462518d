// Package identity validates and registers credentials against a
// credential directory (SQLite locally, Postgres when shared).
package identity

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/reportdrop/internal/common"
	"github.com/dmitrijs2005/reportdrop/internal/logging"
	"github.com/dmitrijs2005/reportdrop/internal/models"
)

const minPasswordLength = 6

type Option func(*Service)

// WithBcryptCost overrides the hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

type Service struct {
	repo   Repository
	logger logging.Logger
	cost   int
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

func NewService(repo Repository, logger logging.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: logger.With("component", "identity"),
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks email and password against the directory. Every failure
// the user could cause yields common.ErrInvalidCredentials.
func (s *Service) Validate(ctx context.Context, email, password string) (*models.Identity, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.ErrInvalidCredentials
	}

	pw := prehash(password)
	defer common.WipeByteArray(pw)

	cred, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// keep timing close to the known-email path
			_ = bcrypt.CompareHashAndPassword(s.dummy(), pw)
			s.logger.Info(ctx, "login rejected")
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup credential: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(cred.PasswordHash, pw); err != nil {
		s.logger.Info(ctx, "login rejected")
		return nil, common.ErrInvalidCredentials
	}

	return s.identityFor(cred), nil
}

// Register creates a new credential. Checks run in a fixed order and stop
// at the first failure.
func (s *Service) Register(ctx context.Context, email, password, confirmPassword string) (*models.Identity, error) {
	email = NormalizeEmail(email)

	switch {
	case email == "" || password == "" || confirmPassword == "":
		return nil, common.ErrMissingFields
	case password != confirmPassword:
		return nil, common.ErrPasswordMismatch
	case utf8.RuneCountInString(password) < minPasswordLength:
		return nil, common.ErrPasswordTooShort
	case !strings.Contains(email, "@"):
		return nil, common.ErrInvalidEmail
	}

	pw := prehash(password)
	defer common.WipeByteArray(pw)

	hash, err := bcrypt.GenerateFromPassword(pw, s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	cred := &models.Credential{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         displayName(email),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, cred); err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("create credential: %w", err)
	}

	s.logger.Info(ctx, "identity registered", "id", cred.ID)

	return s.identityFor(cred), nil
}

func (s *Service) identityFor(c *models.Credential) *models.Identity {
	name := c.Name
	if name == "" {
		name = displayName(c.Email)
	}
	return &models.Identity{
		ID:               c.ID,
		Email:            c.Email,
		DisplayName:      name,
		SessionStartedAt: s.now().UTC(),
	}
}

func (s *Service) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword(prehash("reportdrop-dummy-password"), s.cost)
	})
	return s.dummyHash
}

// prehash feeds bcrypt a fixed 44-byte digest, since bcrypt refuses input
// longer than 72 bytes.
func prehash(password string) []byte {
	raw := []byte(password)
	defer common.WipeByteArray(raw)

	sum := sha256.Sum256(raw)
	defer common.WipeByteArray(sum[:])

	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// displayName is the local part of the address.
func displayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
