package ctxutil

import "context"

type ctxKey string

const (
	operatorKey  ctxKey = "operator"
	roleKey      ctxKey = "role"
	requestIDKey ctxKey = "request_id"
)

// RoleAdmin is the role claim that unlocks the admin routes.
const RoleAdmin = "admin"

// WithOperator stores the authenticated token subject and role in the context.
func WithOperator(ctx context.Context, subject, role string) context.Context {
	ctx = context.WithValue(ctx, operatorKey, subject)
	return context.WithValue(ctx, roleKey, role)
}

// OperatorFromCtx extracts the token subject from the context.
// Returns "" and false when the request is anonymous.
func OperatorFromCtx(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(operatorKey).(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}

// RoleFromCtx returns the role claim, or "" for anonymous requests.
func RoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

// IsAdminCtx reports whether the request carries an admin token.
func IsAdminCtx(ctx context.Context) bool {
	_, ok := OperatorFromCtx(ctx)
	return ok && RoleFromCtx(ctx) == RoleAdmin
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
