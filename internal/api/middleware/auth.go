package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-MentorBookingService/internal/api/handlers"
)

// UserIDHeader заголовок с ID пользователя, проставляется API gateway
const UserIDHeader = "X-User-ID"

const msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"

type ctxKey int

const (
	userIDKey ctxKey = iota
	requestIDKey
)

// Auth кладёт ID пользователя из X-User-ID в context.
// Проверку подлинности выполняет gateway, здесь только идентификация.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID кладёт ID пользователя в context
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID достаёт ID пользователя, положенный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
