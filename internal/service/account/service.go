// Package account handles registration, login and profile management. Every
// local account is paired with a registrar customer record so domains
// purchased later can be provisioned under the right contact.
package account

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"domainhost/internal/domain"
	"domainhost/internal/gateway/registrar"
	sessionrepo "domainhost/internal/repository/session"
	userrepo "domainhost/internal/repository/user"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// Service wires local accounts to registrar customers and issues sessions.
type Service struct {
	users       userrepo.Repository
	sessions    sessionrepo.Repository
	registrar   registrar.Gateway
	tokens      *tokenManager
	sessionTTL  time.Duration
	passwordMin int
	logger      *log.Logger
}

func New(users userrepo.Repository, sessions sessionrepo.Repository, gw registrar.Gateway, logger *log.Logger) *Service {
	return &Service{
		users:       users,
		sessions:    sessions,
		registrar:   gw,
		tokens:      newTokenManager(sessions),
		sessionTTL:  48 * time.Hour,
		passwordMin: 8,
		logger:      logger,
	}
}

// RegisterInput captures the signup form.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// Register creates the registrar customer first, then the local account
// linked to it. The registrar is the system of record for contacts, so a
// failure there aborts signup.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("valid email required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("name required")
	}
	password := strings.TrimSpace(in.Password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cust, err := s.registrar.CreateCustomer(ctx, registrar.Customer{
		Name:   name,
		Email:  email,
		Street: strings.TrimSpace(in.Street),
		City:   strings.TrimSpace(in.City),
		State:  strings.TrimSpace(in.State),
		Voice:  strings.TrimSpace(in.Phone),
	})
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		CustomerID:   cust.ID,
		Role:         domain.RoleCustomer,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		// Registrar customer is orphaned here; log it for cleanup.
		s.logger.Printf("account: user create failed after registrar customer %d was created: %v", cust.ID, err)
		return nil, err
	}
	return u, nil
}

// Login validates credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(ctx, u.ID, s.sessionTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Logout revokes the session token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// LookupByToken resolves a session token to its user. Expired or unknown
// tokens yield domain.ErrInvalidSession.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	userID, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, domain.ErrInvalidSession
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}
	return u, nil
}

// ProfileInput is the editable subset of an account.
type ProfileInput struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
}

// UpdateProfile changes the local record and pushes the contact change to the
// registrar so WHOIS data stays in sync.
func (s *Service) UpdateProfile(ctx context.Context, user *domain.User, in ProfileInput) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidSession
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("name required")
	}
	if err := s.registrar.UpdateCustomer(ctx, user.CustomerID, registrar.Customer{
		Name:   name,
		Email:  user.Email,
		Street: strings.TrimSpace(in.Street),
		City:   strings.TrimSpace(in.City),
		State:  strings.TrimSpace(in.State),
		Voice:  strings.TrimSpace(in.Phone),
	}); err != nil {
		return nil, err
	}
	return s.users.Update(ctx, user.ID, userrepo.UpdateInput{Name: name, Email: user.Email})
}

// SessionTTL exposes the session lifetime for cookie max-age.
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

func validatePassword(p string, min int) error {
	if len(p) < min {
		return fmt.Errorf("password must be at least %d characters", min)
	}
	hasLetter := false
	hasDigit := false
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("password must contain at least 1 letter and 1 number")
	}
	return nil
}
