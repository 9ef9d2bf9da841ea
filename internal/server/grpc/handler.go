package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/giftbox/internal/api"
)

func (s *GRPCServer) checkRequest(req any) error {
	if err := s.validate.Struct(req); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

func (s *GRPCServer) CreateGift(ctx context.Context, req *api.CreateGiftRequest) (*api.GiftResponse, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	g, err := s.gifts.Create(ctx, req.Fields())
	if err != nil {
		return nil, api.ToStatus(err)
	}
	return &api.GiftResponse{Gift: g}, nil
}

func (s *GRPCServer) AddPhotos(ctx context.Context, req *api.AddPhotosRequest) (*api.Empty, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	if err := s.gifts.AddPhotos(ctx, req.GiftID, req.PhotoRefs); err != nil {
		return nil, api.ToStatus(err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) GetGift(ctx context.Context, req *api.GetGiftRequest) (*api.GiftResponse, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	g, err := s.gifts.Get(ctx, req.ID)
	if err != nil {
		return nil, api.ToStatus(err)
	}
	return &api.GiftResponse{Gift: g}, nil
}

func (s *GRPCServer) MarkOpened(ctx context.Context, req *api.MarkOpenedRequest) (*api.MarkOpenedResponse, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	written, err := s.gifts.MarkOpened(ctx, req.ID)
	if err != nil {
		return nil, api.ToStatus(err)
	}
	return &api.MarkOpenedResponse{Written: written}, nil
}

func (s *GRPCServer) PresignUpload(ctx context.Context, req *api.PresignUploadRequest) (*api.PresignUploadResponse, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	up, err := s.gifts.PresignUpload(ctx, req.Path, req.ContentType)
	if err != nil {
		s.logger.Error(ctx, "presign failed", "error", err)
		return nil, api.ToStatus(err)
	}
	return &api.PresignUploadResponse{
		Key:       up.Key,
		UploadURL: up.UploadURL,
		PublicURL: up.PublicURL,
		ExpiresAt: up.ExpiresAt,
	}, nil
}
