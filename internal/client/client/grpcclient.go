package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"

	"github.com/dmitrijs2005/giftbox/internal/api"
	"github.com/dmitrijs2005/giftbox/internal/common"
	"github.com/dmitrijs2005/giftbox/internal/gift"
	"github.com/dmitrijs2005/giftbox/internal/netx"
)

const pingTimeout = 5 * time.Second

// GRPCClient is a gift.Store backed by the hosted giftbox service.
type GRPCClient struct {
	endpointURL string
	apiKey      string
	dialOpts    []grpc.DialOption

	conn       *grpc.ClientConn
	client     *api.GiftServiceClient
	health     grpc_health_v1.HealthClient
	httpClient *http.Client
}

func withAPIKey(ctx context.Context, key string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.APIKeyHeaderName)
	md.Set(common.APIKeyHeaderName, key)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) apiKeyInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.apiKey != "" {
		ctx = withAPIKey(ctx, s.apiKey)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient connects lazily to endpointURL. Extra dial options are
// appended after the defaults.
func NewGRPCClient(endpointURL, apiKey string, opts ...grpc.DialOption) (*GRPCClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	c := &GRPCClient{
		endpointURL: endpointURL,
		apiKey:      apiKey,
		dialOpts:    opts,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.apiKeyInterceptor),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}, s.dialOpts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewGiftServiceClient(conn)
	s.health = grpc_health_v1.NewHealthClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

// Ping asks the health service whether the gift service is serving.
func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp, err := s.health.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: api.ServiceName})
	if err != nil {
		return s.mapError(err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) CreateGift(ctx context.Context, f gift.Fields) (*gift.Gift, error) {
	resp, err := s.client.CreateGift(ctx, &api.CreateGiftRequest{
		SenderName:    f.SenderName,
		RecipientName: f.RecipientName,
		Message:       f.Message,
		VoiceRef:      f.VoiceRef,
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Gift == nil {
		return nil, fmt.Errorf("create gift: empty response")
	}
	return resp.Gift, nil
}

func (s *GRPCClient) AddPhotos(ctx context.Context, giftID string, refs []string) error {
	if len(refs) == 0 {
		return nil
	}
	_, err := s.client.AddPhotos(ctx, &api.AddPhotosRequest{GiftID: giftID, PhotoRefs: refs})
	return s.mapError(err)
}

func (s *GRPCClient) GetGift(ctx context.Context, id string) (*gift.Gift, error) {
	resp, err := s.client.GetGift(ctx, &api.GetGiftRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Gift == nil {
		return nil, gift.ErrNotFound
	}
	if resp.Gift.PhotoRefs == nil {
		resp.Gift.PhotoRefs = []string{}
	}
	return resp.Gift, nil
}

// MarkOpened asks the backend to set the marker. The backend may decline
// under its access policy, which is not an error.
func (s *GRPCClient) MarkOpened(ctx context.Context, id string) error {
	_, err := s.client.MarkOpened(ctx, &api.MarkOpenedRequest{ID: id})
	return s.mapError(err)
}

// UploadFile presigns a PUT, sends data to it and returns the public URL.
func (s *GRPCClient) UploadFile(ctx context.Context, data []byte, path, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	resp, err := s.client.PresignUpload(ctx, &api.PresignUploadRequest{Path: path, ContentType: contentType})
	if err != nil {
		return "", s.mapError(err)
	}

	if err := netx.UploadToPresignedURL(ctx, s.httpClient, resp.UploadURL, data, contentType); err != nil {
		return "", err
	}
	return resp.PublicURL, nil
}

func (s *GRPCClient) mapError(err error) error {
	return api.FromStatus(err)
}
