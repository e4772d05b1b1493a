package server

import "context"

type headersKeyType struct{}

var headersKey = headersKeyType{}

// ContextWithHeaders returns a context carrying the transport headers of a
// single call. Headers are call-scoped: transports must attach them here
// rather than on the Session, which concurrent calls share.
func ContextWithHeaders(ctx context.Context, headers map[string]string) context.Context {
	return context.WithValue(ctx, headersKey, headers)
}

// HeadersFromContext retrieves the call's transport headers, or nil when
// the transport attached none.
func HeadersFromContext(ctx context.Context) map[string]string {
	headers, _ := ctx.Value(headersKey).(map[string]string)
	return headers
}
