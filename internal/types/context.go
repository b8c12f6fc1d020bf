package types

import "context"

type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
)

// GetRequestID returns the request id attached to the context, if any.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(CtxRequestID).(string); ok {
		return id
	}
	return ""
}
