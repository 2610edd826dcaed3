package testutil

import (
	"context"

	"github.com/cardsage/cardsage/internal/types"
)

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	ctx = context.WithValue(ctx, types.CtxConversationID, types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CONVERSATION))
	return ctx
}
