package router

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/dtroode/basebackend-server/internal/api/grpc/middleware"
	"github.com/dtroode/basebackend-server/internal/logger"
)

// Router builds the gRPC server exposed on the ops port.
type Router struct {
	healthServer *health.Server
	logger       *logger.Logger
}

func New(healthServer *health.Server, logger *logger.Logger) *Router {
	return &Router{
		healthServer: healthServer,
		logger:       logger,
	}
}

// Register returns a gRPC server with the standard health service and reflection.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recoverOpt := recovery.WithRecoveryHandler(func(p any) error {
		r.logger.Error("gRPC handler panicked", "panic", p)
		return status.Error(codes.Internal, "internal server error")
	})

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoverOpt),
		),
		grpc.ChainStreamInterceptor(
			logging.HandleGRPCStream,
			recovery.StreamServerInterceptor(recoverOpt),
		),
	)

	healthpb.RegisterHealthServer(s, r.healthServer)
	reflection.Register(s)

	return s
}
