package service

import (
	"context"
	"errors"
	"strings"

	"tripwise/internal/domain"
	"tripwise/internal/logger"
)

// toCallError maps a repository or internal error onto a caller-visible CallError.
// Unrecognized errors become internal with msg as the caller-facing message.
func toCallError(ctx context.Context, err error, msg string) error {
	var callErr *domain.CallError
	if errors.As(err, &callErr) {
		return callErr
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.NewCallError(domain.CodeNotFound, rootMessage(err), err)
	case errors.Is(err, domain.ErrPermissionDenied):
		return domain.NewCallError(domain.CodePermissionDenied, rootMessage(err), err)
	case errors.Is(err, domain.ErrInvalidArgument):
		return domain.NewCallError(domain.CodeInvalidArgument, rootMessage(err), err)
	case errors.Is(err, domain.ErrUnauthenticated):
		return domain.NewCallError(domain.CodeUnauthenticated, rootMessage(err), err)
	}
	logger.For(ctx, "service").Error().Err(err).Msg(msg)
	return domain.NewCallError(domain.CodeInternal, msg, err)
}

// rootMessage returns the outermost message of a sentinel-wrapped domain error,
// e.g. "trip template not found" from "trip template not found: resource not found".
func rootMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrNotFound, domain.ErrPermissionDenied, domain.ErrInvalidArgument, domain.ErrUnauthenticated} {
		if m := strings.TrimSuffix(msg, ": "+sentinel.Error()); m != msg {
			return m
		}
	}
	return msg
}
