// Package service contains business logic and integrations backing HTTP handlers.
package service

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mud2monarch/liquidity-depth-cli/internal/oracle"
)

// BaseService provides common dependencies for service types.
type BaseService struct {
	logger *slog.Logger
}

// PoolLoader snapshots a pair. *oracle.Reader is the production implementation.
type PoolLoader interface {
	LoadPool(ctx context.Context, pool common.Address) (*oracle.Pool, error)
}
