package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/quoteline/rfqtracker-backend/internal/rfqs"
	"github.com/quoteline/rfqtracker-backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxUserName contextKey = "user_name"
	ctxRole     contextKey = "actor_role"
	ctxAccessID contextKey = "access_id"
)

// AccessIDFromContext returns the session access id (jti) of the
// current bearer token.
func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func UserNameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserName).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// ActorFromContext rebuilds the authenticated actor injected by Auth.
// The zero Actor means the request was not authenticated.
func ActorFromContext(ctx context.Context) rfqs.Actor {
	id, err := uuid.Parse(UserIDFromContext(ctx))
	if err != nil {
		return rfqs.Actor{}
	}
	return rfqs.Actor{
		ID:   id,
		Name: UserNameFromContext(ctx),
		Role: enums.MemberRole(RoleFromContext(ctx)),
	}
}

// WithActor injects the actor identity into the context, used by tests
// to bypass token minting.
func WithActor(ctx context.Context, actor rfqs.Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, actor.ID.String())
	ctx = context.WithValue(ctx, ctxUserName, actor.Name)
	return context.WithValue(ctx, ctxRole, string(actor.Role))
}

// WithAccessID injects a session access id, used by tests.
func WithAccessID(ctx context.Context, accessID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAccessID, accessID)
}
