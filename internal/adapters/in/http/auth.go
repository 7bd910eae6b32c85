package http

import (
	"errors"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/pkg/errs"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"

	principalKey = "principal"
)

// Principal is the authenticated caller taken from the bearer token.
type Principal struct {
	UserID kernel.UserID
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Requester is nil for admins, which selects the unrestricted read path.
func (p Principal) Requester() services.Requester {
	if p.IsAdmin() {
		return nil
	}
	return services.AsRequester(p.UserID)
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth verifies an HS256 bearer token and stores the Principal on the
// echo context. Tokens are issued elsewhere; only sub and role are read.
func JWTAuth(secret string) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	key := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return errs.NewUnauthorizedError(errors.New("missing bearer token"))
			}

			claims := &tokenClaims{}
			if _, err := parser.ParseWithClaims(strings.TrimSpace(token), claims, func(*jwt.Token) (any, error) {
				return key, nil
			}); err != nil {
				return errs.NewUnauthorizedError(err)
			}

			userID, err := kernel.UserIDFromString(claims.Subject)
			if err != nil {
				return errs.NewUnauthorizedError(err)
			}

			role := strings.ToUpper(strings.TrimSpace(claims.Role))
			if role == "" {
				role = RoleUser
			}
			c.Set(principalKey, Principal{UserID: userID, Role: role})
			return next(c)
		}
	}
}

// RequireRole rejects principals whose role is not listed.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := principalFrom(c)
			if err != nil {
				return err
			}
			for _, role := range roles {
				if p.Role == role {
					return next(c)
				}
			}
			return errs.NewAccessDeniedError("route", c.Path())
		}
	}
}

func principalFrom(c echo.Context) (Principal, error) {
	p, ok := c.Get(principalKey).(Principal)
	if !ok {
		return Principal{}, errs.NewUnauthorizedError(errors.New("missing principal"))
	}
	return p, nil
}
