package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"user-graph/internal/domain"
	"user-graph/internal/email"
	"user-graph/internal/repository"
)

// UserService coordina reglas de negocio para usuarios.
type UserService struct {
	logger       *zap.Logger
	users        repository.UserRepository
	emailSender  email.Sender
	loginLimiter LoginRateLimiter
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailTaken         = errors.New("email already registered")
	ErrRateLimited        = errors.New("rate limited")
)

// Cuenta administradora sembrada en el arranque.
const (
	DefaultAdminName     = "Admin User"
	DefaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "admin123"
)

func NewUserService(logger *zap.Logger, users repository.UserRepository, emailSender email.Sender, loginLimiter LoginRateLimiter) *UserService {
	if loginLimiter == nil {
		loginLimiter = NewLoginRateLimiter(10*time.Minute, 10)
	}
	return &UserService{
		logger:       logger,
		users:        users,
		emailSender:  emailSender,
		loginLimiter: loginLimiter,
	}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// CreateUser persiste un usuario nuevo. El password se hashea siempre
// antes de tocar el repositorio; el hash jamás viaja de vuelta al caller
// serializado.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	emailAddr := normalizeEmail(input.Email)
	if emailAddr == "" {
		return domain.User{}, ErrInvalidEmail
	}
	name := strings.TrimSpace(input.Name)

	passwordHash, err := HashPassword(input.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		Name:         name,
		Email:        emailAddr,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	if s.emailSender != nil {
		if err := s.emailSender.SendWelcome(ctx, user.Email, user.Name); err != nil {
			if s.logger != nil {
				s.logger.Warn("send welcome email failed", zap.Error(err), zap.String("email", user.Email))
			}
		}
	}

	return user, nil
}

// Authenticate valida credenciales. Email desconocido y password errado
// devuelven el mismo ErrInvalidCredentials: el caller no puede saber cuál
// de los dos factores falló.
func (s *UserService) Authenticate(ctx context.Context, emailAddr, password string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	if s.loginLimiter != nil && !s.loginLimiter.Allow(emailAddr) {
		return domain.User{}, ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.PasswordHash == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID busca un usuario por id.
func (s *UserService) GetByID(ctx context.Context, id int64) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// ListUsers devuelve todos los usuarios registrados.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	if s.users == nil {
		return nil, errors.New("user service not configured")
	}
	return s.users.ListAll(ctx)
}

// SeedDefaultUser crea la cuenta admin por defecto si no existe. Es
// idempotente: una segunda corrida deja exactamente un admin.
func (s *UserService) SeedDefaultUser(ctx context.Context) error {
	if s.users == nil {
		return errors.New("user service not configured")
	}

	_, err := s.users.GetByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		if s.logger != nil {
			s.logger.Info("default user already exists", zap.String("email", DefaultAdminEmail))
		}
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	passwordHash, err := HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	user := domain.User{
		Name:         DefaultAdminName,
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		// Otra instancia pudo sembrar primero; el estado final es el mismo.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil
		}
		return err
	}

	if s.logger != nil {
		s.logger.Info("default user created", zap.String("email", DefaultAdminEmail))
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
