package shared

import "context"

type sessionContextKey struct{}

// ContextWithSession stores the view-state session in context. The session
// middleware attaches it once per request; handlers read it back through
// SessionFromContext.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context. A missing session
// yields nil, which handlers treat as the default view state.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}
