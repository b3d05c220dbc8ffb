package staffauth

import "context"

type Identity struct {
	StaffID     string
	DisplayName string
	Token       string
}

type identityContextKeyType struct{}

var identityContextKey identityContextKeyType

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok
}
