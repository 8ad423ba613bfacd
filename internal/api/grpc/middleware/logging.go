package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/basebackend-server/internal/logger"
)

// Logging logs every gRPC call on the ops port.
type Logging struct {
	logger *logger.Logger
}

func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method, duration and resulting code of a unary call.
func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	code := codeOf(err)
	l.log(info.FullMethod, time.Since(start), code, err)

	return resp, err
}

// HandleGRPCStream does the same for streams such as health Watch.
func (l *Logging) HandleGRPCStream(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()

	err := handler(srv, ss)

	l.log(info.FullMethod, time.Since(start), codeOf(err), err)

	return err
}

func (l *Logging) log(method string, duration time.Duration, code codes.Code, err error) {
	if err != nil && code != codes.Canceled {
		l.logger.Error("gRPC request failed",
			"method", method,
			"duration_ms", duration.Milliseconds(),
			"status", code.String(),
			"error", err.Error())
		return
	}

	l.logger.Debug("gRPC request completed",
		"method", method,
		"duration_ms", duration.Milliseconds(),
		"status", code.String())
}

func codeOf(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	return codes.Internal
}
