package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/fitshop-api/internal/database"
	"github.com/01moynul/fitshop-api/internal/models"
)

var (
	// ErrDuplicateUser is returned when the username or email is taken within the site.
	ErrDuplicateUser = errors.New("username or email already exists for this site")
	// ErrRegistrationFailed wraps every other registration failure.
	ErrRegistrationFailed = errors.New("registration failed")
)

// DefaultRole is assigned to self-registered users.
const DefaultRole = "user"

// UserStore is the credential store used by the service.
type UserStore interface {
	Create(ctx context.Context, q database.Querier, u *models.User) error
	FindByUsername(ctx context.Context, q database.Querier, username, site string) (*models.User, error)
}

// Result is a successful authentication.
type Result struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Service registers and authenticates users per site.
type Service struct {
	Users      UserStore
	Tokens     *TokenIssuer
	BcryptCost int
}

func NewService(users UserStore, tokens *TokenIssuer, bcryptCost int) *Service {
	return &Service{Users: users, Tokens: tokens, BcryptCost: bcryptCost}
}

// Register hashes the password and stores the user. The returned user has no hash.
func (s *Service) Register(ctx context.Context, username, password, email, site string) (*models.User, error) {
	var pw models.Password
	if err := pw.Set(password, s.BcryptCost); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		Role:         DefaultRole,
		Site:         site,
		PasswordHash: pw.Hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Users.Create(ctx, nil, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}

	public := user.Public()
	return &public, nil
}

// Authenticate returns (nil, nil) for an unknown user or a wrong password.
// An error means the lookup or token signing itself failed.
func (s *Service) Authenticate(ctx context.Context, username, password, site string) (*Result, error) {
	user, err := s.Users.FindByUsername(ctx, nil, username, site)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	pw := models.Password{Hash: user.PasswordHash}
	ok, err := pw.Matches(password)
	if err != nil || !ok {
		// A malformed stored hash is treated as a failed match.
		return nil, nil
	}

	token, err := s.Tokens.GenerateToken(user.ID, user.Username, user.Role, user.Site)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Result{Token: token, User: user.Public()}, nil
}

// Verify validates a bearer token for the authorization gate.
func (s *Service) Verify(token string) (*Claims, error) {
	return s.Tokens.ValidateToken(token)
}
