// app/echoServer/middleware.go
package echoServer

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	portalsvc "github.com/Macsarunrat/pink-rental/service/portal"
	jwtutil "github.com/Macsarunrat/pink-rental/util/jwt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func RegisterMiddlewares(e *echo.Echo) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog())
}

func Slog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)
			return err
		}
	}
}

// StaffID pulls the staff user id out of the Authorization header and puts
// it on the context as "user_id". Runs behind echo-jwt, which has already
// rejected unsigned and tampered tokens.
func StaffID(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := jwtutil.ParseAuth(c.Request().Header.Get("Authorization"), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			sub, ok := claims["sub"].(float64)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			c.Set("user_id", int64(sub))
			return next(c)
		}
	}
}

// PortalAuth resolves the portal session token to a customer id. Tokens are
// opaque session handles, not JWTs; staff tokens do not pass here.
func PortalAuth(sessions portalsvc.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get("X-Portal-Token")
			if token == "" {
				h := c.Request().Header.Get("Authorization")
				if strings.HasPrefix(strings.ToLower(h), "bearer ") {
					token = strings.TrimSpace(h[7:])
				}
			}

			cid, err := sessions.Resolve(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, portalsvc.ErrNoSession) || errors.Is(err, portalsvc.ErrSessionExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
			}
			c.Set("customer_id", cid)
			c.Set("portal_token", token)
			return next(c)
		}
	}
}
