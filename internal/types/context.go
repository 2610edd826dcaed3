package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID      ContextKey = "ctx_request_id"
	CtxConversationID ContextKey = "ctx_conversation_id"
)

const (
	HeaderRequestID = "X-Request-ID"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetConversationID(ctx context.Context) string {
	if conversationID, ok := ctx.Value(CtxConversationID).(string); ok {
		return conversationID
	}
	return ""
}

// SetRequestID sets the request ID in the context
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

// SetConversationID sets the conversation ID in the context
func SetConversationID(ctx context.Context, conversationID string) context.Context {
	return context.WithValue(ctx, CtxConversationID, conversationID)
}
