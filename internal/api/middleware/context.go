package middleware

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type contextKey string

const profileIDKey contextKey = "profileID"

var errNoProfile = errors.New("no profile")

// ContextWithProfileID returns a new context with the given profile ID set.
func ContextWithProfileID(ctx context.Context, profileID uuid.UUID) context.Context {
	return context.WithValue(ctx, profileIDKey, profileID)
}

func GetProfileIDFromContext(ctx context.Context) (uuid.UUID, error) {
	v := ctx.Value(profileIDKey)
	if v == nil {
		return uuid.Nil, errNoProfile
	}

	switch id := v.(type) {
	case uuid.UUID:
		return id, nil
	case string:
		parsed, err := uuid.Parse(id)
		if err != nil {
			return uuid.Nil, errNoProfile
		}
		return parsed, nil
	default:
		return uuid.Nil, errNoProfile
	}
}
