package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/muniempleo/intake-api/internal/dto"
	"github.com/muniempleo/intake-api/internal/models"
	"github.com/muniempleo/intake-api/internal/repository"
)

var (
	// ErrUserNotFound means the targeted staff account does not exist.
	ErrUserNotFound = errors.New("usuario no encontrado")
	// ErrUserExists rejects a duplicate username on creation.
	ErrUserExists = errors.New("el usuario ya existe")
	// ErrAdminProtected guards the built-in admin account against
	// deactivation and deletion.
	ErrAdminProtected = errors.New("no se puede modificar el usuario admin")
	// ErrInvalidRole rejects roles outside admin/usuario.
	ErrInvalidRole = errors.New("rol inválido")
)

// UserAdminService manages staff accounts. Every mutation is audited with
// the acting administrator's username.
type UserAdminService interface {
	Create(ctx context.Context, req dto.CreateUserRequest, actor string) error
	SetActive(ctx context.Context, username string, active bool, actor string) error
	Delete(ctx context.Context, username, actor string) error
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, actor string) error
	GetPassword(ctx context.Context, username string) (string, error)
	List(ctx context.Context) ([]models.User, error)
}

type userAdminService struct {
	users     repository.UserRepository
	audit     AuditService
	validator *validator.Validate
	clock     func() time.Time
	logger    zerolog.Logger
}

// NewUserAdminService constructs the staff account management workflow.
func NewUserAdminService(users repository.UserRepository, audit AuditService, validate *validator.Validate, clock func() time.Time, logger zerolog.Logger) UserAdminService {
	if clock == nil {
		clock = time.Now
	}

	return &userAdminService{
		users:     users,
		audit:     audit,
		validator: validate,
		clock:     clock,
		logger:    logger.With().Str("component", "user_admin_service").Logger(),
	}
}

func (s *userAdminService) Create(ctx context.Context, req dto.CreateUserRequest, actor string) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	username := strings.TrimSpace(req.Username)
	rol := strings.TrimSpace(req.Rol)
	if rol == "" {
		rol = models.RoleUsuario
	}
	if rol != models.RoleAdmin && rol != models.RoleUsuario {
		return ErrInvalidRole
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUserExists
	}

	user := models.User{
		Username:  username,
		Password:  strings.TrimSpace(req.Password),
		Rol:       rol,
		Activo:    1,
		CreatedAt: s.clock(),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, fmt.Sprintf("Creó al usuario %s (%s)", username, rol))
	s.logger.Info().Str("username", username).Str("rol", rol).Msg("staff account created")

	return nil
}

func (s *userAdminService) SetActive(ctx context.Context, username string, active bool, actor string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUserNotFound
	}
	if username == models.AdminUsername && !active {
		return ErrAdminProtected
	}

	affected, err := s.users.SetActive(ctx, username, active)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	accion := fmt.Sprintf("Desactivó al usuario %s", username)
	if active {
		accion = fmt.Sprintf("Activó al usuario %s", username)
	}
	s.audit.Record(ctx, actor, accion)

	return nil
}

func (s *userAdminService) Delete(ctx context.Context, username, actor string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUserNotFound
	}
	if username == models.AdminUsername {
		return ErrAdminProtected
	}

	affected, err := s.users.Delete(ctx, username)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	s.audit.Record(ctx, actor, fmt.Sprintf("Eliminó al usuario %s", username))

	return nil
}

func (s *userAdminService) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, actor string) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	username := strings.TrimSpace(req.Username)
	affected, err := s.users.SetPassword(ctx, username, strings.TrimSpace(req.Password))
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	s.audit.Record(ctx, actor, fmt.Sprintf("Cambió la contraseña de %s", username))

	return nil
}

func (s *userAdminService) GetPassword(ctx context.Context, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrUserNotFound
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	return user.Password, nil
}

func (s *userAdminService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}
