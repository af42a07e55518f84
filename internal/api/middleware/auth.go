package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/bedbees/BB-CalendarService/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

const msgMissingUserID = "отсутствует заголовок X-User-ID"

// Auth извлекает идентификатор пользователя из заголовка X-User-ID
// и кладет его в контекст запроса. Запросы без валидного заголовка
// отклоняются с 401. Сама аутентификация выполняется на API gateway,
// сервис доверяет заголовку внутри периметра.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает идентификатор пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
