package middleware

import "context"

type contextKey string

const (
	adminIDKey   contextKey = "admin_id"
	requestIDKey contextKey = "request_id"
)

// GetAdminID возвращает ID администратора, положенный в контекст middleware Auth
func GetAdminID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(adminIDKey).(int64)
	return id, ok
}

// WithAdminID кладёт ID администратора в контекст
func WithAdminID(ctx context.Context, adminID int64) context.Context {
	return context.WithValue(ctx, adminIDKey, adminID)
}

// GetRequestID возвращает ID запроса, выданный middleware RequestID
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
