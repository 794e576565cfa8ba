package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"location-service/apperr"
	"location-service/metrics"
	"location-service/models"
	"location-service/store"
	"location-service/validation"

	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

var (
	ErrMissingKey         = apperr.Auth("API key required")
	ErrInvalidKey         = apperr.Auth("Invalid API key")
	ErrInvalidCredentials = apperr.Auth("Invalid credentials")
	ErrEmailTaken         = apperr.Conflict("Email already registered")
	ErrKeyCollision       = apperr.Conflict("API key collision, please retry")
)

// UserStore is the credential store the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash, apiKey string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByAPIKey(ctx context.Context, apiKey string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
}

// KeyCache memoizes successful API key lookups. Get returns (nil, nil) on a miss.
type KeyCache interface {
	Get(ctx context.Context, apiKey string) (*models.User, error)
	Set(ctx context.Context, apiKey string, user *models.User) error
}

// Service implements registration, password login and API key authentication.
type Service struct {
	users  UserStore
	hasher *PasswordHasher
	issuer *KeyIssuer
	cache  KeyCache
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

type Option func(*Service)

// WithKeyCache enables the API key lookup cache.
func WithKeyCache(c KeyCache) Option {
	return func(s *Service) { s.cache = c }
}

func NewService(users UserStore, hasher *PasswordHasher, issuer *KeyIssuer, opts ...Option) *Service {
	s := &Service{
		users:  users,
		hasher: hasher,
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account and returns it with its freshly issued API key.
// Input is validated before anything is written.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, error) {
	creds := models.Credentials{Email: models.NormalizeEmail(email), Password: password}
	if err := validation.ValidateStruct(&creds); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(resultLabel(err)).Inc()
		return nil, err
	}

	apiKey, err := s.issuer.Issue()
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, apperr.Internal("issue api key", err)
	}

	user, err := s.users.CreateUser(ctx, creds.Email, hash, apiKey)
	switch {
	case errors.Is(err, store.ErrDuplicateEmail):
		metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		return nil, ErrEmailTaken
	case errors.Is(err, store.ErrDuplicateAPIKey):
		metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		return nil, ErrKeyCollision
	case err != nil:
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return user, nil
}

// Login verifies the password and returns the user with its stored API key.
// Unknown e-mail and wrong password both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		// Burn one comparison so unknown accounts cost the same as wrong passwords.
		_, _ = s.hasher.Verify(password, s.dummy())
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Error("Failed to record last login", zap.String("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLogin = &now
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return user, nil
}

// Authenticate resolves a presented API key to its user. It never touches lastLogin.
func (s *Service) Authenticate(ctx context.Context, apiKey string) (*models.User, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		metrics.APIKeyAuthFailuresTotal.WithLabelValues("missing").Inc()
		return nil, ErrMissingKey
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, apiKey)
		if err != nil {
			logger.Error("API key cache lookup failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.users.FindByAPIKey(ctx, apiKey)
	if errors.Is(err, store.ErrNotFound) {
		metrics.APIKeyAuthFailuresTotal.WithLabelValues("invalid").Inc()
		return nil, ErrInvalidKey
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, apiKey, user); err != nil {
			logger.Error("API key cache store failed", zap.String("user_id", user.ID), zap.Error(err))
		}
	}
	return user, nil
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("location-service-dummy-password")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

func resultLabel(err error) string {
	if apperr.KindOf(err) == apperr.KindValidation {
		return "invalid"
	}
	return "error"
}
