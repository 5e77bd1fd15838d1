package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный или просроченный токен"

	bearerPrefix = "Bearer "
)

// TokenParser проверяет токен администратора и возвращает его ID
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Auth пропускает только запросы с валидным "Authorization: Bearer <jwt>"
func Auth(parser TokenParser, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				logger.Warn("Auth: missing token: %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			if !strings.HasPrefix(header, bearerPrefix) || len(header) == len(bearerPrefix) {
				logger.Warn("Auth: malformed authorization header: %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			adminID, err := parser.ParseToken(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				logger.Warn("Auth: %v: %s %s", err, r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdminID(r.Context(), adminID)))
		})
	}
}
