package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/usermanager/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDHeader = "x-request-id"

type ctxKey string

const requestIDKey ctxKey = "requestID"

// RequestID returns the correlation id the interceptor stored in ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestIDInterceptor reuses the caller's x-request-id or mints one, and
// echoes it back in the response header.
func (s *GRPCServer) requestIDInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	var id string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(requestIDHeader); len(values) > 0 {
			id = values[0]
		}
	}
	if id == "" {
		var err error
		if id, err = common.MakeRandHexString(8); err != nil {
			s.logger.Warn(ctx, "could not generate request id", "error", err)
		}
	}

	if id != "" {
		_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, id))
		ctx = context.WithValue(ctx, requestIDKey, id)
	}

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	s.logger.Info(ctx, "grpc call",
		"method", info.FullMethod,
		"request_id", RequestID(ctx),
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)
	return resp, err
}
