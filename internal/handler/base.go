// Package handler defines HTTP request handlers and related utilities.
package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mud2monarch/liquidity-depth-cli/internal/oracle"
	"github.com/mud2monarch/liquidity-depth-cli/pkg/depth"
	"github.com/mud2monarch/liquidity-depth-cli/pkg/fixedpoint"
)

// BaseHandler provides common dependencies for HTTP handlers.
type BaseHandler struct {
	logger *slog.Logger
}

// validateAddresses checks that every field holds a hex address and that src
// and dst differ.
func (h *BaseHandler) validateAddresses(pool, src, dst string) error {
	addresses := []struct{ field, addr string }{
		{"pool", pool},
		{"src", src},
		{"dst", dst},
	}

	for _, a := range addresses {
		if a.addr == "" {
			return NewAddressRequired(a.field)
		}
		if !common.IsHexAddress(a.addr) {
			return NewInvalidAddress(a.field)
		}
	}

	if common.HexToAddress(src) == common.HexToAddress(dst) {
		return ErrSameAddresses
	}

	return nil
}

// handleServiceError maps domain errors to HTTP errors and logs the rest.
func (h *BaseHandler) handleServiceError(err error) error {
	switch {
	case errors.Is(err, oracle.ErrSameToken):
		return ErrSameTokenBadRequest
	case errors.Is(err, oracle.ErrPairMismatch):
		return ErrPairMismatchBadRequest
	case errors.Is(err, oracle.ErrEmptyReserves):
		return ErrEmptyReservesBadRequest
	case errors.Is(err, depth.ErrToleranceUnattainable):
		return ErrToleranceUnattainable
	case errors.Is(err, depth.ErrInvalidInput):
		return ErrInvalidSearchInput
	case errors.Is(err, fixedpoint.ErrOverflow):
		return ErrSearchOverflow
	case errors.Is(err, context.DeadlineExceeded):
		return ErrSearchTimeout
	default:
		h.logger.Error("service call failed", "err", err)
		return ErrEstimationFailedInternal
	}
}
