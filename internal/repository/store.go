package repository

import "context"

// Store bundles every table the crate engine persists to.
// Both storage backends implement it.
type Store interface {
	ActorData
	Cooldown
	Pity
	OfflineQueue

	Ping(ctx context.Context) error
	Close() error
}
