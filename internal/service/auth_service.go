package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/muniempleo/intake-api/internal/models"
	"github.com/muniempleo/intake-api/internal/observability"
	"github.com/muniempleo/intake-api/internal/ratelimit"
	"github.com/muniempleo/intake-api/internal/repository"
	"github.com/muniempleo/intake-api/internal/session"
)

// ErrInvalidCredentials means the username/password pair did not match an
// active account.
var ErrInvalidCredentials = errors.New("credenciales incorrectas")

// ThrottledError reports a login attempt rejected by the sliding-window
// limiter. RetryAfter is how long the address stays locked out.
type ThrottledError struct {
	RetryAfter time.Duration
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("demasiados intentos fallidos, intente en %d segundos", int(e.RetryAfter.Seconds()+0.5))
}

// FailedLoginError carries the number of attempts left before lockout.
type FailedLoginError struct {
	Remaining int
}

func (e *FailedLoginError) Error() string {
	return fmt.Sprintf("credenciales incorrectas, le quedan %d intentos", e.Remaining)
}

// AuthService handles staff login and logout.
type AuthService interface {
	Login(ctx context.Context, usuario, password, addr string) (string, session.Principal, error)
	Logout(ctx context.Context, principal session.Principal)
}

type authService struct {
	users    repository.UserRepository
	limiter  ratelimit.LoginLimiter
	sessions *session.Manager
	audit    AuditService
	clock    func() time.Time
	logger   zerolog.Logger
}

// NewAuthService constructs the login workflow.
func NewAuthService(users repository.UserRepository, limiter ratelimit.LoginLimiter, sessions *session.Manager, audit AuditService, clock func() time.Time, logger zerolog.Logger) AuthService {
	if clock == nil {
		clock = time.Now
	}

	return &authService{
		users:    users,
		limiter:  limiter,
		sessions: sessions,
		audit:    audit,
		clock:    clock,
		logger:   logger.With().Str("component", "auth_service").Logger(),
	}
}

// Login checks the limiter before touching credentials. A blocked address
// is rejected even when the credentials are correct; a success clears the
// address's failure history and mints a fresh session with a new CSRF
// secret.
func (s *authService) Login(ctx context.Context, usuario, password, addr string) (string, session.Principal, error) {
	usuario = strings.TrimSpace(usuario)
	password = strings.TrimSpace(password)

	if decision := s.limiter.Check(addr); !decision.Allowed {
		observability.LoginAttempts().WithLabelValues("throttled").Inc()
		return "", session.Principal{}, &ThrottledError{RetryAfter: decision.RetryAfter}
	}

	user, err := s.users.FindActiveByCredentials(ctx, usuario, password)
	if err != nil {
		return "", session.Principal{}, err
	}

	if user == nil {
		remaining := s.limiter.RecordFailure(addr)
		observability.LoginAttempts().WithLabelValues("failure").Inc()
		s.logger.Warn().Str("usuario", usuario).Str("addr", addr).Int("remaining", remaining).Msg("login rejected")
		if remaining <= 0 {
			return "", session.Principal{}, ErrInvalidCredentials
		}
		return "", session.Principal{}, &FailedLoginError{Remaining: remaining}
	}

	s.limiter.Clear(addr)

	token, principal, err := s.sessions.Issue(user.Username, user.Rol, s.clock())
	if err != nil {
		return "", session.Principal{}, err
	}

	if user.Rol == models.RoleUsuario {
		s.audit.Record(ctx, user.Username, "Inicio de sesión")
	}

	observability.LoginAttempts().WithLabelValues("success").Inc()
	s.logger.Info().Str("usuario", user.Username).Str("rol", user.Rol).Msg("login accepted")

	return token, principal, nil
}

func (s *authService) Logout(ctx context.Context, principal session.Principal) {
	if principal.Role == models.RoleUsuario {
		s.audit.Record(ctx, principal.Username, "Cerró sesión")
	}
}
