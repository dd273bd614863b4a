package round

import (
	"fmt"
	"time"
)

// Round is a single matchday (jornada) in the competition calendar.
// ProviderRoundID is the identifier used against the match data provider.
type Round struct {
	ID              string
	ProviderRoundID int64
	Name            string
	Number          int
	StartsAt        time.Time
	EndsAt          time.Time
	IsCurrent       bool
}

func (r Round) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("round id is required")
	}
	if r.ProviderRoundID <= 0 {
		return fmt.Errorf("provider round id must be greater than zero")
	}
	if r.Name == "" {
		return fmt.Errorf("round name is required")
	}
	return nil
}

// Open reports whether drafting is still allowed for the round at ts.
func (r Round) Open(ts time.Time) bool {
	if r.StartsAt.IsZero() {
		return true
	}
	return ts.Before(r.StartsAt)
}
