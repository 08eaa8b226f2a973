package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
	"github.com/jhoicas/elbaul-api/pkg/clock"
	"github.com/jhoicas/elbaul-api/pkg/jwt"
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TokenRevoker lista de tokens revocados por jti. Las entradas expiran junto con el token.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y perfil.
type AuthUseCase struct {
	txRunner repository.TxRunner
	users    repository.UserRepository
	revoker  TokenRevoker
	jwtCfg   JWTConfig
	clock    clock.Clock
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. revoker puede ser nil: logout queda sin efecto en servidor.
func NewAuthUseCase(txRunner repository.TxRunner, users repository.UserRepository, revoker TokenRevoker, jwtCfg JWTConfig, clk clock.Clock, log *logger.Logger) *AuthUseCase {
	if clk == nil {
		clk = clock.NewSystem()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{txRunner: txRunner, users: users, revoker: revoker, jwtCfg: jwtCfg, clock: clk, log: log.Named("auth")}
}

// RegisterUser crea un cliente: hashea la contraseña con bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" || strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, domain.ErrMissingFields
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user *entity.User
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		existing, err := r.Users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		id, err := r.Sequences.Next(ctx, domain.KindUser)
		if err != nil {
			return err
		}
		user = &entity.User{
			ID:           id,
			FirstName:    strings.TrimSpace(in.FirstName),
			LastName:     strings.TrimSpace(in.LastName),
			Email:        email,
			PasswordHash: string(hash),
			Address:      strings.TrimSpace(in.Address),
			Phone:        strings.TrimSpace(in.Phone),
			Role:         entity.RoleCliente,
			Active:       true,
			CreatedAt:    uc.clock.Now(),
		}
		if err := r.Users.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.ErrEmailAlreadyExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("usuario_id", user.ID).Msg("usuario registrado")
	resp := dto.FromUser(user)
	return &resp, nil
}

// Login verifica email/contraseña, genera JWT y retorna token + usuario.
// Email inexistente y contraseña incorrecta dan el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, domain.ErrAccountDisabled
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: dto.FromUser(user)}, nil
}

// Logout revoca el token hasta su expiración.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if uc.revoker == nil || claims == nil || claims.ID == "" {
		return nil
	}
	ttl := claims.TTL(uc.clock.Now())
	if ttl <= 0 {
		return nil
	}
	if err := uc.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}
	uc.log.Info().Str("usuario_id", claims.UserID).Msg("sesión cerrada")
	return nil
}

// IsRevoked indica si el jti fue revocado. Sin almacén configurado nunca lo está.
func (uc *AuthUseCase) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if uc.revoker == nil || jti == "" {
		return false, nil
	}
	return uc.revoker.IsRevoked(ctx, jti)
}

// Profile devuelve el usuario autenticado.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
