package grpc

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/andrescamacho/domnus-go/internal/adapters/store"
	appProduction "github.com/andrescamacho/domnus-go/internal/application/production"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// Error reasons carried in ErrorInfo details
const (
	errorDomain          = "domnus.economy.v1"
	reasonRejected       = "ORDER_REJECTED"
	reasonInvalid        = "INVALID_ARGUMENT"
	reasonCommitFailed   = "COMMIT_FAILED"
	reasonRequestReused  = "REQUEST_ID_REUSED"
	reasonReconcile      = "RECONCILE_REQUIRED"
	reasonStoreBreakerOn = "STORE_CIRCUIT_OPEN"
)

// toStatus maps engine errors to gRPC status codes. Rejections keep their
// static message and carry the rule that fired.
func toStatus(err error) error {
	if err == nil {
		return nil
	}

	var rejection *shared.Rejection
	var invalid *shared.ValidationError
	var notFound *shared.KingdomNotFoundError
	var reused *production.ErrRequestIDReused
	var reconcile *production.ErrReconcileRequired
	var commitErr *appProduction.CommitError

	switch {
	case errors.As(err, &rejection):
		return withInfo(codes.FailedPrecondition, rejection.Message, reasonRejected, map[string]string{
			"reason": string(rejection.Reason),
		})
	case errors.As(err, &invalid):
		return withInfo(codes.InvalidArgument, invalid.Message, reasonInvalid, map[string]string{
			"field": invalid.Field,
		})
	case errors.As(err, &notFound):
		return status.Error(codes.NotFound, notFound.Error())
	case errors.As(err, &reused):
		return withInfo(codes.AlreadyExists, reused.Error(), reasonRequestReused, nil)
	case errors.As(err, &reconcile):
		return withInfo(codes.Aborted, reconcile.Error(), reasonReconcile, map[string]string{
			"request_id": reconcile.RequestID,
		})
	case errors.As(err, &commitErr):
		return withInfo(codes.Internal, commitErr.Error(), reasonCommitFailed, map[string]string{
			"stage": string(commitErr.Stage),
		})
	case errors.Is(err, store.ErrCircuitOpen):
		return withInfo(codes.Unavailable, err.Error(), reasonStoreBreakerOn, nil)
	}
	return status.Error(codes.Internal, err.Error())
}

func withInfo(code codes.Code, message, reason string, metadata map[string]string) error {
	st := status.New(code, message)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   errorDomain,
		Metadata: metadata,
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// fromStatus turns a status returned by the server back into the engine's
// error types where one exists, so client callers can use errors.As
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	for _, detail := range st.Details() {
		info, ok := detail.(*errdetails.ErrorInfo)
		if !ok || info.Domain != errorDomain {
			continue
		}
		switch info.Reason {
		case reasonRejected:
			return shared.NewRejection(shared.RejectionReason(info.Metadata["reason"]), st.Message())
		case reasonInvalid:
			return shared.NewValidationError(info.Metadata["field"], st.Message())
		}
	}
	return err
}
