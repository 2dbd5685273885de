package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Aarya06/Bookwizard/internal/mail"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Service handles registration, password login and email verification.
type Service struct {
	repo       Repository
	mailer     mail.Dispatcher
	baseURL    string // public base URL used in the verification link
	adminEmail string // the one account with catalog admin rights
	logger     *zap.Logger
}

func NewService(repo Repository, mailer mail.Dispatcher, baseURL, adminEmail string, logger *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		mailer:     mailer,
		baseURL:    strings.TrimRight(baseURL, "/"),
		adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
		logger:     logger,
	}
}

// flagAdmin stamps the derived admin bit. The admin is pinned to one
// configured email; an empty configuration means nobody is admin.
func (s *Service) flagAdmin(u *User) *User {
	u.Admin = s.adminEmail != "" && u.Email == s.adminEmail
	return u
}

// Register creates an unverified account and sends the verification mail.
// Mail delivery is best-effort: a send failure is logged, the account still
// exists and the link can be re-requested by registering support later.
func (s *Service) Register(ctx context.Context, email, firstName, lastName, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("email is required")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		VerifyToken:  uuid.NewString(),
	}

	id, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	u.ID = id

	link := fmt.Sprintf("%s/verify/%s", s.baseURL, u.VerifyToken)
	body := fmt.Sprintf("Hi %s,\n\nWelcome to bookwizard. Confirm your address:\n%s\n", u.FirstName, link)
	if err := s.mailer.Send(ctx, u.Email, "Verify your bookwizard account", body); err != nil {
		s.logger.Warn("verification mail failed", zap.String("user_id", u.ID), zap.Error(err))
	}

	return s.flagAdmin(u), nil
}

// Authenticate checks the password login. Unknown emails and wrong
// passwords return the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.flagAdmin(u), nil
}

// Verify flips the account to verified by its emailed token.
func (s *Service) Verify(ctx context.Context, token string) (*User, error) {
	u, err := s.repo.VerifyByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.flagAdmin(u), nil
}

// Get returns the user by id.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.flagAdmin(u), nil
}
