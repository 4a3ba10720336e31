package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/quicknotes/notes-api/internal/core/domain"
	"github.com/quicknotes/notes-api/internal/core/ports"
)

// UserCache abstracts the Redis-backed lookup cache used during token
// verification. A nil-safe no-op implementation is acceptable in tests.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id string) error
}

// AuthService implements signup, signin, and stateless bearer tokens. The
// signing secret is injected at construction so tests can run with isolated
// secrets.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	cache    UserCache
	secret   []byte
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, cache UserCache, secret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		cache:    cache,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Register creates a new account. The email is normalized and format-checked
// before the (deliberately slow) hash is computed, so malformed requests fail
// cheaply.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}
	if !domain.ValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies credentials and mints a bearer token. Unknown email and
// wrong password are collapsed into the same error so the response does not
// reveal which part was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := s.hasher.Compare(ctx, user.PasswordHash, password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.log.Info().Str("user_id", user.ID).Msg("signin rejected: wrong password")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user signed in")
	return token, user, nil
}

// IssueToken signs {sub, iat} with HS256. An exp claim is added only when a
// token TTL is configured.
func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
	}
	if s.tokenTTL > 0 {
		claims["exp"] = now.Add(s.tokenTTL).Unix()
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Authenticate validates a bearer token and resolves its subject back to a
// live account. Structural problems, signature mismatches, expiry, and a
// vanished subject all collapse into domain.ErrInvalidToken: the caller is
// simply unauthenticated, never shown a server error.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.lookupUser(ctx, sub)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Valid signature but the account is gone: unauthenticated.
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// lookupUser resolves a user ID through the cache, falling back to the
// repository. Cache failures degrade to a direct lookup.
func (s *AuthService) lookupUser(ctx context.Context, id string) (*domain.User, error) {
	if s.cache != nil {
		if user, err := s.cache.Get(ctx, id); err == nil && user != nil {
			return user, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.log.Warn().Err(err).Str("user_id", id).Msg("failed to cache user")
		}
	}
	return user, nil
}
