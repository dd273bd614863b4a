package postgres

import "time"

type playerTableModel struct {
	PublicID    string `db:"public_id"`
	TeamID      string `db:"team_public_id"`
	Name        string `db:"name"`
	Position    string `db:"position"`
	Stars       int    `db:"stars"`
	TotalPoints int    `db:"total_points"`
	ImageURL    string `db:"image_url"`
	PlayerRefID int64  `db:"player_ref_id"`
}

type roundTableModel struct {
	PublicID        string    `db:"public_id"`
	ProviderRoundID int64     `db:"provider_round_id"`
	Name            string    `db:"name"`
	Number          int       `db:"number"`
	StartsAt        time.Time `db:"starts_at"`
	EndsAt          time.Time `db:"ends_at"`
	IsCurrent       bool      `db:"is_current"`
}

type draftSquadTableModel struct {
	PublicID  string    `db:"public_id"`
	UserID    string    `db:"user_id"`
	LeagueID  string    `db:"league_id"`
	RoundID   string    `db:"round_public_id"`
	Formation string    `db:"formation"`
	SlotsJSON []byte    `db:"slots"`
	Finalized bool      `db:"finalized"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type roundPointsTableModel struct {
	RoundID      string    `db:"round_public_id"`
	PlayerID     string    `db:"player_public_id"`
	Points       int       `db:"points"`
	CalculatedAt time.Time `db:"calculated_at"`
}
