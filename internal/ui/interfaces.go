package ui

import (
	"context"

	"github.com/ackboard/ackboard/internal/board"
)

// Synchronizer is the data source the dashboard refreshes from.
type Synchronizer interface {
	Sync(ctx context.Context, progress func(loaded int)) ([]board.Record, error)
}
