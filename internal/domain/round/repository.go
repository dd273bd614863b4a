package round

import "context"

// Repository describes round persistence needs from use cases.
type Repository interface {
	GetCurrent(ctx context.Context) (Round, bool, error)
	GetByName(ctx context.Context, name string) (Round, bool, error)
	GetByID(ctx context.Context, id string) (Round, bool, error)
	Upsert(ctx context.Context, item Round) error
}
