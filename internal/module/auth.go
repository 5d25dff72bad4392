package module

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	authorization = "authorization"
	bearerPrefix  = "Bearer "
)

var (
	ErrMissingMetadata = errors.New("metadata not found")
	ErrMissingToken    = errors.New("authorization token not found")
)

// TokenVerifier decides whether a bearer token grants api access.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (bool, error)
}

// UnaryServerAuthTokenInterceptor rejects calls without a verified bearer
// token. Methods listed in public skip the check.
func UnaryServerAuthTokenInterceptor(verifier TokenVerifier, public ...string) grpc.UnaryServerInterceptor {
	open := make(map[string]bool, len(public))
	for _, m := range public {
		open[m] = true
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		if open[info.FullMethod] {
			return handler(ctx, req)
		}

		accessToken, err := accessTokenFromHeader(ctx, authorization)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}

		ok, err := verifier.VerifyToken(ctx, accessToken)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}

		if !ok {
			return nil, status.Error(codes.PermissionDenied, "access token verification failed")
		}

		return handler(ctx, req)
	}
}

func accessTokenFromHeader(ctx context.Context, header string) (string, error) {
	headers, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", ErrMissingMetadata
	}

	val := headers.Get(header)
	if len(val) == 0 || val[0] == "" {
		return "", ErrMissingToken
	}

	authToken, ok := strings.CutPrefix(val[0], bearerPrefix)
	if !ok || authToken == "" {
		return "", ErrMissingToken
	}

	return authToken, nil
}
