// Package account manages user credentials.
package account

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"procure.GO/core/errs"
	"procure.GO/model/entity"
)

// ErrInvalidCredentials is returned for an unknown username or a wrong password alike.
var ErrInvalidCredentials = errors.New("invalid username or password")

// MinPasswordLength is the shortest password Register and ChangePassword accept.
const MinPasswordLength = 6

type UserStore interface {
	Create(u *entity.User) error
	Update(u *entity.User) error
	Get(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
}

type Service struct {
	users UserStore
	cost  int
}

type Option func(*Service)

// WithCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

func NewService(users UserStore, opts ...Option) *Service {
	s := &Service{users: users, cost: bcrypt.DefaultCost}
	for _, fn := range opts {
		fn(s)
	}
	return s
}

// Register creates a user with a hashed password.
func (s *Service) Register(name, username, password string, role entity.Role) (*entity.User, error) {
	if len(password) < MinPasswordLength {
		return nil, errs.Invalid("password must be at least %d characters", MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{Name: name, Username: username, PasswordHash: string(hash), Role: role}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate returns the user whose username and password match.
func (s *Service) Authenticate(username, password string) (*entity.User, error) {
	u, err := s.users.GetByUsername(username)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) ChangePassword(userID, oldPassword, newPassword string) error {
	u, err := s.users.Get(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if len(newPassword) < MinPasswordLength {
		return errs.Invalid("password must be at least %d characters", MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return s.users.Update(u)
}
