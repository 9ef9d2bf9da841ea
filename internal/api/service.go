package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "giftbox.v1.GiftService"

// Full method names.
const (
	MethodCreateGift    = "/" + ServiceName + "/CreateGift"
	MethodAddPhotos     = "/" + ServiceName + "/AddPhotos"
	MethodGetGift       = "/" + ServiceName + "/GetGift"
	MethodMarkOpened    = "/" + ServiceName + "/MarkOpened"
	MethodPresignUpload = "/" + ServiceName + "/PresignUpload"
)

// GiftServiceServer is implemented by the hosted backend.
type GiftServiceServer interface {
	CreateGift(context.Context, *CreateGiftRequest) (*GiftResponse, error)
	AddPhotos(context.Context, *AddPhotosRequest) (*Empty, error)
	GetGift(context.Context, *GetGiftRequest) (*GiftResponse, error)
	MarkOpened(context.Context, *MarkOpenedRequest) (*MarkOpenedResponse, error)
	PresignUpload(context.Context, *PresignUploadRequest) (*PresignUploadResponse, error)
}

// UnimplementedGiftServiceServer answers every method with
// codes.Unimplemented. Embed it to implement a subset.
type UnimplementedGiftServiceServer struct{}

func (UnimplementedGiftServiceServer) CreateGift(context.Context, *CreateGiftRequest) (*GiftResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateGift not implemented")
}

func (UnimplementedGiftServiceServer) AddPhotos(context.Context, *AddPhotosRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method AddPhotos not implemented")
}

func (UnimplementedGiftServiceServer) GetGift(context.Context, *GetGiftRequest) (*GiftResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetGift not implemented")
}

func (UnimplementedGiftServiceServer) MarkOpened(context.Context, *MarkOpenedRequest) (*MarkOpenedResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MarkOpened not implemented")
}

func (UnimplementedGiftServiceServer) PresignUpload(context.Context, *PresignUploadRequest) (*PresignUploadResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PresignUpload not implemented")
}

func unaryHandler[Req, Resp any](fullMethod string, call func(GiftServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GiftServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GiftServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes giftbox.v1.GiftService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GiftServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateGift", Handler: unaryHandler(MethodCreateGift, GiftServiceServer.CreateGift)},
		{MethodName: "AddPhotos", Handler: unaryHandler(MethodAddPhotos, GiftServiceServer.AddPhotos)},
		{MethodName: "GetGift", Handler: unaryHandler(MethodGetGift, GiftServiceServer.GetGift)},
		{MethodName: "MarkOpened", Handler: unaryHandler(MethodMarkOpened, GiftServiceServer.MarkOpened)},
		{MethodName: "PresignUpload", Handler: unaryHandler(MethodPresignUpload, GiftServiceServer.PresignUpload)},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterGiftServiceServer(s grpc.ServiceRegistrar, srv GiftServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// GiftServiceClient is the client stub for giftbox.v1.GiftService.
type GiftServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewGiftServiceClient(cc grpc.ClientConnInterface) *GiftServiceClient {
	return &GiftServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GiftServiceClient) CreateGift(ctx context.Context, in *CreateGiftRequest, opts ...grpc.CallOption) (*GiftResponse, error) {
	return invoke[GiftResponse](ctx, c.cc, MethodCreateGift, in, opts)
}

func (c *GiftServiceClient) AddPhotos(ctx context.Context, in *AddPhotosRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodAddPhotos, in, opts)
}

func (c *GiftServiceClient) GetGift(ctx context.Context, in *GetGiftRequest, opts ...grpc.CallOption) (*GiftResponse, error) {
	return invoke[GiftResponse](ctx, c.cc, MethodGetGift, in, opts)
}

func (c *GiftServiceClient) MarkOpened(ctx context.Context, in *MarkOpenedRequest, opts ...grpc.CallOption) (*MarkOpenedResponse, error) {
	return invoke[MarkOpenedResponse](ctx, c.cc, MethodMarkOpened, in, opts)
}

func (c *GiftServiceClient) PresignUpload(ctx context.Context, in *PresignUploadRequest, opts ...grpc.CallOption) (*PresignUploadResponse, error) {
	return invoke[PresignUploadResponse](ctx, c.cc, MethodPresignUpload, in, opts)
}
