package grpc

import (
	"context"
	"net"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/giftbox/internal/api"
	"github.com/dmitrijs2005/giftbox/internal/gift"
	"github.com/dmitrijs2005/giftbox/internal/logging"
	"github.com/dmitrijs2005/giftbox/internal/server/services"
)

// GiftService is the business logic the handlers delegate to.
type GiftService interface {
	Create(ctx context.Context, f gift.Fields) (*gift.Gift, error)
	AddPhotos(ctx context.Context, giftID string, refs []string) error
	Get(ctx context.Context, id string) (*gift.Gift, error)
	MarkOpened(ctx context.Context, id string) (bool, error)
	PresignUpload(ctx context.Context, path, contentType string) (*services.Upload, error)
}

type GRPCServer struct {
	api.UnimplementedGiftServiceServer
	address   string
	gifts     GiftService
	logger    logging.Logger
	jwtSecret []byte
	validate  *validator.Validate
}

func NewGRPCServer(a string, l logging.Logger, gifts GiftService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		gifts:     gifts,
		jwtSecret: []byte(secretKey),
		validate:  validator.New(),
	}
}

// newServer builds the gRPC server with interceptors, the gift service
// and the standard health service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.apiKeyInterceptor),
	)

	api.RegisterGiftServiceServer(srv, s)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(api.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	if err != nil {
		s.logger.Warn(ctx, "rpc failed", "method", info.FullMethod, "duration", time.Since(start), "error", err)
	} else {
		s.logger.Debug(ctx, "rpc", "method", info.FullMethod, "duration", time.Since(start))
	}
	return resp, err
}
