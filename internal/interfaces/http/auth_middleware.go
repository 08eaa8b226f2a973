package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/pkg/jwt"
)

// Locals keys que deja el middleware de auth en Fiber.
const (
	LocalUserID = "usuario_id"
	LocalRole   = "rol"
	LocalClaims = "claims"
)

// RevocationChecker consulta si un token fue revocado por logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware valida el Bearer Token JWT, rechaza los revocados y deja usuario, rol y claims en c.Locals.
// revoked puede ser nil.
func AuthMiddleware(jwtSecret string, revoked RevocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "NO_TOKEN", "Token de acceso requerido")
		}
		if ae := authenticate(c, jwtSecret, revoked, authHeader); ae != nil {
			return fail(c, ae.status, ae.codigo, ae.mensaje)
		}
		return c.Next()
	}
}

// OptionalAuth deja los claims si llega un token válido; sin token o con uno inválido sigue como anónimo.
func OptionalAuth(jwtSecret string, revoked RevocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
			_ = authenticate(c, jwtSecret, revoked, authHeader)
		}
		return c.Next()
	}
}

type authError struct {
	status  int
	codigo  string
	mensaje string
}

func authenticate(c *fiber.Ctx, jwtSecret string, revoked RevocationChecker, authHeader string) *authError {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return &authError{fiber.StatusUnauthorized, "INVALID_TOKEN_FORMAT", "Formato de token inválido. Use: Bearer <token>"}
	}
	claims, err := jwt.Parse(jwtSecret, strings.TrimSpace(parts[1]))
	if err != nil {
		return &authError{fiber.StatusUnauthorized, "INVALID_TOKEN", "Token inválido o expirado"}
	}
	if revoked != nil && claims.ID != "" {
		isRevoked, err := revoked.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			return &authError{fiber.StatusServiceUnavailable, "AUTH_UNAVAILABLE", "No se pudo validar la sesión"}
		}
		if isRevoked {
			return &authError{fiber.StatusUnauthorized, "INVALID_TOKEN", "Token inválido o expirado"}
		}
	}
	c.Locals(LocalUserID, claims.UserID)
	c.Locals(LocalRole, claims.Role)
	c.Locals(LocalClaims, claims)
	return nil
}

// RequireRole deja pasar solo a los roles indicados. Va después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_ROLE", "El token no incluye rol")
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return fail(c, fiber.StatusForbidden, "ACCESS_DENIED", "Acceso denegado. Se requieren permisos de administrador")
	}
}

// GetUserID devuelve el usuario autenticado (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetClaims devuelve los claims completos, nil si la ruta no pasó por AuthMiddleware.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	cl, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return cl
}

func isAdmin(c *fiber.Ctx) bool {
	return GetRole(c) == entity.RoleAdmin
}
