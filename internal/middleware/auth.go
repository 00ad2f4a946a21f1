package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"user_galleries/internal/domain/models"
	appjwt "user_galleries/internal/lib/jwt"
	"user_galleries/internal/lib/logger/sl"
	"user_galleries/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	tokenContextKey = "user"
	actorContextKey = "actor"
)

type UserLoader interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
}

// JWT проверяет Bearer-токен. При optional=true запрос без токена проходит дальше анонимно,
// но испорченный токен все равно отклоняется.
func JWT(secret string, optional bool) echo.MiddlewareFunc {
	cfg := echojwt.Config{
		SigningKey: []byte(secret),
		ContextKey: tokenContextKey,
	}

	if optional {
		cfg.ContinueOnIgnoredError = true
		cfg.ErrorHandler = func(c echo.Context, err error) error {
			var extractErr *echojwt.TokenExtractionError
			if errors.As(err, &extractErr) {
				return nil
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired jwt")
		}
	}

	return echojwt.WithConfig(cfg)
}

// LoadActor превращает проверенный токен в models.Actor с правами из учетной записи
func LoadActor(log *slog.Logger, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			const op = "middleware.LoadActor"

			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok || token == nil {
				c.Set(actorContextKey, models.Anonymous())
				return next(c)
			}

			userID, err := appjwt.UserID(token)
			if err != nil {
				log.Warn("bad token claims", slog.String("op", op), sl.Err(err))
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}

			user, err := users.GetUserByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, storage.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
				}
				log.Error("failed to load user", slog.String("op", op), sl.Err(err))
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to load user")
			}

			if !user.Active {
				return echo.NewHTTPError(http.StatusForbidden, "account is blocked")
			}

			c.Set(actorContextKey, user.Actor())
			return next(c)
		}
	}
}

// AdminOnly пропускает только пользователей с правом управлять галереями
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor := ActorFrom(c)
		if actor.IsAnonymous() {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		if !actor.HasPermission(models.PermManageGalleries) {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

// ActorFrom возвращает текущего пользователя запроса или анонима
func ActorFrom(c echo.Context) models.Actor {
	if actor, ok := c.Get(actorContextKey).(models.Actor); ok {
		return actor
	}
	return models.Anonymous()
}
