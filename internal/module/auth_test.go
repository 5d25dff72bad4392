package module

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type fixedVerifier string

func (f fixedVerifier) VerifyToken(_ context.Context, token string) (bool, error) {
	return token == string(f), nil
}

func TestUnaryServerAuthTokenInterceptor(t *testing.T) {
	interceptor := UnaryServerAuthTokenInterceptor(fixedVerifier("secret"), "/svc/Public")
	handler := func(ctx context.Context, req any) (any, error) { return "ok", nil }
	private := &grpc.UnaryServerInfo{FullMethod: "/svc/Private"}

	withAuth := func(value string) context.Context {
		return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", value))
	}

	tests := []struct {
		name string
		ctx  context.Context
		info *grpc.UnaryServerInfo
		code codes.Code
	}{
		{name: "valid token", ctx: withAuth("Bearer secret"), info: private, code: codes.OK},
		{name: "wrong token", ctx: withAuth("Bearer nope"), info: private, code: codes.PermissionDenied},
		{name: "no bearer prefix", ctx: withAuth("secret"), info: private, code: codes.Unauthenticated},
		{name: "short header", ctx: withAuth("Bear"), info: private, code: codes.Unauthenticated},
		{name: "no metadata", ctx: context.Background(), info: private, code: codes.Unauthenticated},
		{name: "public method", ctx: context.Background(), info: &grpc.UnaryServerInfo{FullMethod: "/svc/Public"}, code: codes.OK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := interceptor(tt.ctx, nil, tt.info, handler)
			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}
