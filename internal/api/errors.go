package api

import (
	"errors"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/giftbox/internal/common"
	"github.com/dmitrijs2005/giftbox/internal/gift"
)

// ErrUnavailable is returned by clients when the backend cannot be reached.
var ErrUnavailable = errors.New("server unavailable")

// ToStatus converts a service error into a gRPC status error. Errors that
// already carry a status pass through. A *gift.ValidationError keeps its
// field in a BadRequest detail.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var ve *gift.ValidationError
	switch {
	case errors.As(err, &ve):
		st := status.New(codes.InvalidArgument, ve.Error())
		if withDetails, derr := st.WithDetails(&errdetails.BadRequest{
			FieldViolations: []*errdetails.BadRequest_FieldViolation{{Field: ve.Field, Description: gift.ErrMissingField.Error()}},
		}); derr == nil {
			st = withDetails
		}
		return st.Err()
	case errors.Is(err, gift.ErrNotFound):
		return status.Error(codes.NotFound, gift.ErrNotFound.Error())
	case errors.Is(err, common.ErrorInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, common.ErrorForbidden.Error())
	default:
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}

// FromStatus maps a gRPC error back onto the domain and transport
// sentinels so callers can use errors.Is/As.
func FromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.InvalidArgument:
		for _, d := range st.Details() {
			if br, ok := d.(*errdetails.BadRequest); ok && len(br.GetFieldViolations()) > 0 {
				return &gift.ValidationError{Field: br.GetFieldViolations()[0].GetField()}
			}
		}
		return fmt.Errorf("%w: %s", common.ErrorInvalidArgument, st.Message())
	case codes.NotFound:
		return gift.ErrNotFound
	case codes.Unauthenticated:
		return common.ErrorUnauthorized
	case codes.PermissionDenied:
		return common.ErrorForbidden
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
