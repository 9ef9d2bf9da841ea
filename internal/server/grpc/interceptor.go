package grpc

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/giftbox/internal/common"
	"github.com/dmitrijs2005/giftbox/internal/server/auth"
)

const healthServicePrefix = "/grpc.health.v1.Health/"

// apiKeyInterceptor requires a valid API key on every call except health
// checks and stores the key's role in the context.
func (s *GRPCServer) apiKeyInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if strings.HasPrefix(info.FullMethod, healthServicePrefix) {
		return handler(ctx, req)
	}

	var apiKey string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.APIKeyHeaderName)
		if len(values) > 0 {
			apiKey = values[0]
		}
	}
	if len(apiKey) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing api key")
	}

	role, err := auth.ParseAPIKey(apiKey, s.jwtSecret)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid api key")
	}

	return handler(auth.WithRole(ctx, role), req)
}
