package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const userIDKey contextKey = "userID"

// WithAuth проверяет заголовок Authorization: Bearer и кладёт id
// пользователя в контекст запроса. Любая ошибка проверки — неверная
// подпись, истёкший срок, чужой issuer/audience, кривой клейм —
// оставляет запрос анонимным, не различая причин.
// Допуска по времени нет: токен с exp в прошлом отклоняется сразу.
func WithAuth(secret, issuer, audience string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := parseBearer(r, secret, issuer, audience); ok {
				ctx := context.WithValue(r.Context(), userIDKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func parseBearer(r *http.Request, secret, issuer, audience string) (int64, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return 0, false
	}

	token, err := jwt.Parse(strings.TrimPrefix(header, prefix),
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	return userIDFromClaims(claims)
}

// userIDFromClaims достаёт id из клейма userId, запасной вариант — sub.
func userIDFromClaims(claims jwt.MapClaims) (int64, bool) {
	if v, ok := claims["userId"].(float64); ok {
		return int64(v), true
	}
	if sub, ok := claims["sub"].(string); ok {
		if id, err := strconv.ParseInt(sub, 10, 64); err == nil {
			return id, true
		}
	}
	return 0, false
}

// GetUserIDFromContext возвращает id пользователя, установленный WithAuth.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
