package player

import "context"

// Repository describes player directory persistence needs from use cases.
type Repository interface {
	ListAll(ctx context.Context) ([]Player, error)
	ListByPosition(ctx context.Context, position Position) ([]Player, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	AddTotalPoints(ctx context.Context, pointsByPlayerID map[string]int) error
}
