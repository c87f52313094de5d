package services

import "context"

type ctxKey string

const clientAddrKey ctxKey = "clientAddr"

// ContextWithClientAddr attaches the remote address of the connection the
// request arrived on, for audit trails.
func ContextWithClientAddr(ctx context.Context, addr string) context.Context {
	return context.WithValue(ctx, clientAddrKey, addr)
}

// ClientAddrFromContext returns the attached remote address, or "".
func ClientAddrFromContext(ctx context.Context) string {
	addr, _ := ctx.Value(clientAddrKey).(string)
	return addr
}
