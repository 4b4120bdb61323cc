// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// SummaryCache stores computed per-user dashboard payloads.
// A miss is reported as (false, nil); errors are reserved for backend failures.
type SummaryCache interface {
	Get(ctx context.Context, userID uuid.UUID, key string, dest any) (bool, error)
	Set(ctx context.Context, userID uuid.UUID, key string, value any) error

	// Invalidate drops every cached entry for the user.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
