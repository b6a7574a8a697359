package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/golfops/GP-TeeSheetService/internal/api/handlers"
)

type contextKey string

const consumerKey contextKey = "api_consumer"

const (
	msgMissingToken = "authorization token is missing"
	msgInvalidToken = "authorization token is invalid"
)

// Auth middleware аутентификации API-потребителя по JWT (HS256).
// Токен передается в заголовке Authorization: Bearer <token>.
// Отклоняет запрос до какой-либо логики агрегатов.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			consumer, err := parseConsumer(token, secret)
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), consumerKey, consumer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetConsumer возвращает идентификатор API-потребителя из контекста
func GetConsumer(ctx context.Context) (string, bool) {
	consumer, ok := ctx.Value(consumerKey).(string)
	return consumer, ok
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}

func parseConsumer(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("token subject is missing")
	}

	return subject, nil
}
