package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-events/internal/domain/entity"
	repo "github.com/oksasatya/campus-events/internal/domain/repository"
	"github.com/oksasatya/campus-events/internal/metrics"
	"github.com/oksasatya/campus-events/pkg/helpers"
)

type UserService struct {
	Users              repo.UserRepository
	Registrations      repo.RegistrationRepository
	JWT                *helpers.JWTManager
	AllowedEmailDomain string
	Metrics            metrics.Recorder
	Logger             *logrus.Logger
}

func NewUserService(users repo.UserRepository, regs repo.RegistrationRepository, jwt *helpers.JWTManager, allowedDomain string, rec metrics.Recorder, logger *logrus.Logger) *UserService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &UserService{
		Users:              users,
		Registrations:      regs,
		JWT:                jwt,
		AllowedEmailDomain: allowedDomain,
		Metrics:            rec,
		Logger:             logger,
	}
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
}

type AddUserInput struct {
	Email    string
	Name     string
	Password string // optional; without one the account cannot log in
	Role     entity.Role
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *entity.User `json:"user"`
}

// Signup creates a regular user whose email is on the campus domain.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	email := normalizeEmail(in.Email)
	if s.AllowedEmailDomain != "" && !strings.HasSuffix(email, strings.ToLower(s.AllowedEmailDomain)) {
		return nil, ErrEmailDomainNotAllowed
	}
	return s.create(ctx, email, in.Name, in.Password, entity.RoleUser)
}

// AddUser is the admin path for creating accounts; it skips the domain policy.
func (s *UserService) AddUser(ctx context.Context, in AddUserInput) (*entity.User, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !role.Valid() {
		return nil, &ValidationError{Message: "Role must be user or admin"}
	}
	return s.create(ctx, normalizeEmail(in.Email), in.Name, in.Password, role)
}

func (s *UserService) create(ctx context.Context, email, name, password string, role entity.Role) (*entity.User, error) {
	var hash string
	if password != "" {
		h, err := helpers.HashPassword(password)
		if err != nil {
			return nil, err
		}
		hash = h
	}
	u := &entity.User{
		ID:       uuid.NewString(),
		Email:    email,
		Password: hash,
		Name:     strings.TrimSpace(name),
		Role:     role,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, storeErr("create user", err)
	}
	return u, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storeErr("get user by email", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.JWT.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr("get user", err, ErrUserNotFound)
	}
	return u, nil
}

// IsAdmin reads the user record fresh on every call.
func (s *UserService) IsAdmin(ctx context.Context, id string) (bool, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return u.IsAdmin(), nil
}

// Delete removes the user and then their registrations. A failed cascade is
// only logged; listings skip registrations whose user is gone.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Users.Delete(ctx, id); err != nil {
		return lookupErr("delete user", err, ErrUserNotFound)
	}
	n, err := s.Registrations.DeleteByUser(ctx, id)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("cascade delete of user registrations failed")
		}
		return nil
	}
	s.Metrics.RecordCascadeDeleted("user", n)
	return nil
}

// SetAdmin grants the admin role to the account with the given email.
func (s *UserService) SetAdmin(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, lookupErr("get user by email", err, ErrUserNotFound)
	}
	if err := s.Users.SetRole(ctx, u.ID, entity.RoleAdmin); err != nil {
		return nil, lookupErr("set role", err, ErrUserNotFound)
	}
	u.Role = entity.RoleAdmin
	return u, nil
}

// EnsureAdmin creates the admin account if it is missing, or promotes the
// existing account. The password is only used on creation.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password, name string) (*entity.User, bool, error) {
	u, err := s.SetAdmin(ctx, email)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, false, err
	}
	u, err = s.create(ctx, normalizeEmail(email), name, password, entity.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
