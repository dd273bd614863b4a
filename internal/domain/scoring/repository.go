package scoring

import "context"

// Repository describes scoring persistence needs from use cases.
type Repository interface {
	UpsertRoundPoints(ctx context.Context, items []RoundPoints) error
	ListByRound(ctx context.Context, roundID string) ([]RoundPoints, error)
}
