package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"fourcut/internal/domain/errs"
	"fourcut/internal/domain/models"
	jwtlib "fourcut/internal/lib/jwt"
	"fourcut/internal/transport/http/dto/response"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	tokenContextKey  = "user"
	MemberContextKey = "member_id"
)

type MemberResolver interface {
	Resolve(ctx context.Context, memberID int64) (models.Member, error)
}

// JWT проверяет bearer-токен. Для optional запросы без заголовка Authorization
// пропускаются как анонимные; присланный, но невалидный токен отклоняется всегда.
func JWT(secret string, optional bool) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		ContextKey: tokenContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(jwtlib.Claims)
		},
		Skipper: func(c echo.Context) bool {
			return optional && strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization)) == ""
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, response.AuthenticationRequired("missing or invalid access token"))
		},
	})
}

// Identity превращает проверенный токен в id активного участника и кладет его в контекст.
// Без токена запрос остается анонимным, если required == false.
func Identity(log *slog.Logger, resolver MemberResolver, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			const op = "middleware.Identity"

			token, _ := c.Get(tokenContextKey).(*jwt.Token)
			if token == nil {
				if required {
					return c.JSON(http.StatusUnauthorized, response.AuthenticationRequired("access token is required"))
				}
				return next(c)
			}

			memberID, err := jwtlib.MemberIDFromToken(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, response.AuthenticationRequired("access token has no member"))
			}

			if _, err := resolver.Resolve(c.Request().Context(), memberID); err != nil {
				if errors.Is(err, errs.ErrMemberNotFound) {
					return c.JSON(http.StatusUnauthorized, response.AuthenticationRequired("member is not active"))
				}
				log.Error("failed to resolve member", slog.String("op", op), slog.Int64("member_id", memberID), slog.Any("err", err))
				return c.JSON(http.StatusInternalServerError, response.Internal())
			}

			c.Set(MemberContextKey, memberID)
			return next(c)
		}
	}
}

// MemberID id участника из контекста; 0 для анонимного запроса.
func MemberID(c echo.Context) int64 {
	id, _ := c.Get(MemberContextKey).(int64)
	return id
}
