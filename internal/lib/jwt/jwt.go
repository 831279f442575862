package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims полезная нагрузка access-токена. Токены выпускает внешний сервис авторизации,
// здесь они только проверяются; NewToken нужен для тестов и локальной разработки.
type Claims struct {
	MemberID int64 `json:"uid"`
	jwt.RegisteredClaims
}

func NewToken(memberID int64, secret string, duration time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		MemberID: memberID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(memberID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken проверяет подпись и срок действия и возвращает id участника.
func ParseToken(tokenString, secret string) (int64, error) {
	claims := new(Claims)

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return MemberIDFromToken(token)
}

// MemberIDFromToken достает id из уже проверенного токена (например, положенного echo-jwt в контекст).
func MemberIDFromToken(token *jwt.Token) (int64, error) {
	if token == nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.MemberID <= 0 {
		return 0, ErrInvalidToken
	}

	return claims.MemberID, nil
}
