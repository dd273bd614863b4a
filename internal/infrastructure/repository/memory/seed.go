package memory

import (
	"time"

	"github.com/riskibarqy/fantasy-draft/internal/domain/player"
	"github.com/riskibarqy/fantasy-draft/internal/domain/round"
)

const (
	TeamIDMadrid  = "esp-madrid"
	TeamIDBarca   = "esp-barca"
	TeamIDAtleti  = "esp-atleti"
	TeamIDSevilla = "esp-sevilla"
)

// SeedPlayers covers every formation's worst case: three forward slots,
// four midfield slots and four defender slots each need four distinct
// candidates, plus four keepers for the goalkeeper slot.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "gk-01", TeamID: TeamIDMadrid, Name: "Iker Montoya", Position: player.PositionGoalkeeper, Stars: 4, PlayerRefID: 9001},
		{ID: "gk-02", TeamID: TeamIDBarca, Name: "Pau Galindo", Position: player.PositionGoalkeeper, Stars: 3, PlayerRefID: 9002},
		{ID: "gk-03", TeamID: TeamIDAtleti, Name: "Unai Zubiarrain", Position: player.PositionGoalkeeper, Stars: 3, PlayerRefID: 9003},
		{ID: "gk-04", TeamID: TeamIDSevilla, Name: "Sergio Robles", Position: player.PositionGoalkeeper, Stars: 2, PlayerRefID: 9004},

		{ID: "def-01", TeamID: TeamIDMadrid, Name: "Raul Carvajal", Position: player.PositionDefender, Stars: 5, PlayerRefID: 9101},
		{ID: "def-02", TeamID: TeamIDMadrid, Name: "Mario Llorente", Position: player.PositionDefender, Stars: 3, PlayerRefID: 9102},
		{ID: "def-03", TeamID: TeamIDMadrid, Name: "Abel Navarro", Position: player.PositionDefender, Stars: 2, PlayerRefID: 9103},
		{ID: "def-04", TeamID: TeamIDMadrid, Name: "Jon Etxeberria", Position: player.PositionDefender, Stars: 3, PlayerRefID: 9104},
		{ID: "def-05", TeamID: TeamIDBarca, Name: "Marc Cubells", Position: player.PositionDefender, Stars: 4, PlayerRefID: 9105},
		{ID: "def-06", TeamID: TeamIDBarca, Name: "Pol Aguirre", Position: player.PositionDefender, Stars: 3, PlayerRefID: 9106},
		{ID: "def-07", TeamID: TeamIDBarca, Name: "Xavi Ferrando", Position: player.PositionDefender, Stars: 2, PlayerRefID: 9107},
		{ID: "def-08", TeamID: TeamIDBarca, Name: "Oriol Casas", Position: player.PositionDefender, Stars: 3, PlayerRefID: 9108},
		{ID: "def-09", TeamID: TeamIDAtleti, Name: "Diego Hermoso", Position: player.PositionDefender, Stars: 4, PlayerRefID: 9109},
		{ID: "def-10", TeamID: TeamIDAtleti, Name: "Cesar Molina", Position: player.PositionDefender, Stars: 3, PlayerRefID: 9110},
		{ID: "def-11", TeamID: TeamIDAtleti, Name: "Ivan Soriano", Position: player.PositionDefender, Stars: 2, PlayerRefID: 9111},
		{ID: "def-12", TeamID: TeamIDAtleti, Name: "Mikel Arantza", Position: player.PositionDefender, Stars: 1, PlayerRefID: 9112},
		{ID: "def-13", TeamID: TeamIDSevilla, Name: "Nacho Peraza", Position: player.PositionDefender, Stars: 3, PlayerRefID: 9113},
		{ID: "def-14", TeamID: TeamIDSevilla, Name: "Alvaro Quintana", Position: player.PositionDefender, Stars: 3, PlayerRefID: 9114},
		{ID: "def-15", TeamID: TeamIDSevilla, Name: "Ruben Castell", Position: player.PositionDefender, Stars: 2, PlayerRefID: 9115},
		{ID: "def-16", TeamID: TeamIDSevilla, Name: "Javi Ordonez", Position: player.PositionDefender, Stars: 4, PlayerRefID: 9116},

		{ID: "mid-01", TeamID: TeamIDMadrid, Name: "Lucas Zaragoza", Position: player.PositionMidfielder, Stars: 5, PlayerRefID: 9201},
		{ID: "mid-02", TeamID: TeamIDMadrid, Name: "Hugo Pavon", Position: player.PositionMidfielder, Stars: 3, PlayerRefID: 9202},
		{ID: "mid-03", TeamID: TeamIDMadrid, Name: "Dani Cortes", Position: player.PositionMidfielder, Stars: 3, PlayerRefID: 9203},
		{ID: "mid-04", TeamID: TeamIDMadrid, Name: "Adrian Belmonte", Position: player.PositionMidfielder, Stars: 2, PlayerRefID: 9204},
		{ID: "mid-05", TeamID: TeamIDBarca, Name: "Pedri Alcazar", Position: player.PositionMidfielder, Stars: 5, PlayerRefID: 9205},
		{ID: "mid-06", TeamID: TeamIDBarca, Name: "Gerard Pons", Position: player.PositionMidfielder, Stars: 4, PlayerRefID: 9206},
		{ID: "mid-07", TeamID: TeamIDBarca, Name: "Aleix Vilanova", Position: player.PositionMidfielder, Stars: 3, PlayerRefID: 9207},
		{ID: "mid-08", TeamID: TeamIDBarca, Name: "Sergi Batlle", Position: player.PositionMidfielder, Stars: 2, PlayerRefID: 9208},
		{ID: "mid-09", TeamID: TeamIDAtleti, Name: "Koke Santamaria", Position: player.PositionMidfielder, Stars: 4, PlayerRefID: 9209},
		{ID: "mid-10", TeamID: TeamIDAtleti, Name: "Saul Carrasco", Position: player.PositionMidfielder, Stars: 3, PlayerRefID: 9210},
		{ID: "mid-11", TeamID: TeamIDAtleti, Name: "Rodrigo Paredes", Position: player.PositionMidfielder, Stars: 3, PlayerRefID: 9211},
		{ID: "mid-12", TeamID: TeamIDAtleti, Name: "Tomas Iglesias", Position: player.PositionMidfielder, Stars: 1, PlayerRefID: 9212},
		{ID: "mid-13", TeamID: TeamIDSevilla, Name: "Oscar Rincon", Position: player.PositionMidfielder, Stars: 3, PlayerRefID: 9213},
		{ID: "mid-14", TeamID: TeamIDSevilla, Name: "Pablo Ontiveros", Position: player.PositionMidfielder, Stars: 3, PlayerRefID: 9214},
		{ID: "mid-15", TeamID: TeamIDSevilla, Name: "Manu Baena", Position: player.PositionMidfielder, Stars: 2, PlayerRefID: 9215},
		{ID: "mid-16", TeamID: TeamIDSevilla, Name: "Isco Palacios", Position: player.PositionMidfielder, Stars: 4, PlayerRefID: 9216},

		{ID: "fwd-01", TeamID: TeamIDMadrid, Name: "Marco Bastida", Position: player.PositionForward, Stars: 5, PlayerRefID: 9301},
		{ID: "fwd-02", TeamID: TeamIDMadrid, Name: "Julen Amorebieta", Position: player.PositionForward, Stars: 3, PlayerRefID: 9302},
		{ID: "fwd-03", TeamID: TeamIDMadrid, Name: "Borja Salinas", Position: player.PositionForward, Stars: 2, PlayerRefID: 9303},
		{ID: "fwd-04", TeamID: TeamIDBarca, Name: "Ansu Morientes", Position: player.PositionForward, Stars: 4, PlayerRefID: 9304},
		{ID: "fwd-05", TeamID: TeamIDBarca, Name: "Ferran Duarte", Position: player.PositionForward, Stars: 3, PlayerRefID: 9305},
		{ID: "fwd-06", TeamID: TeamIDBarca, Name: "Pau Miralles", Position: player.PositionForward, Stars: 3, PlayerRefID: 9306},
		{ID: "fwd-07", TeamID: TeamIDAtleti, Name: "Angel Fuentes", Position: player.PositionForward, Stars: 4, PlayerRefID: 9307},
		{ID: "fwd-08", TeamID: TeamIDAtleti, Name: "Memo Talavera", Position: player.PositionForward, Stars: 2, PlayerRefID: 9308},
		{ID: "fwd-09", TeamID: TeamIDAtleti, Name: "Yeray Camacho", Position: player.PositionForward, Stars: 3, PlayerRefID: 9309},
		{ID: "fwd-10", TeamID: TeamIDSevilla, Name: "Rafa Mendez", Position: player.PositionForward, Stars: 3, PlayerRefID: 9310},
		{ID: "fwd-11", TeamID: TeamIDSevilla, Name: "Bryan Ocampo", Position: player.PositionForward, Stars: 1, PlayerRefID: 9311},
		{ID: "fwd-12", TeamID: TeamIDSevilla, Name: "Luis Arteaga", Position: player.PositionForward, Stars: 5, PlayerRefID: 9312},
	}
}

func SeedRounds(now time.Time) []round.Round {
	weekStart := now.Truncate(24 * time.Hour)
	return []round.Round{
		{
			ID:              "round-01",
			ProviderRoundID: 339270,
			Name:            "Jornada 1",
			Number:          1,
			StartsAt:        weekStart.Add(-7 * 24 * time.Hour),
			EndsAt:          weekStart.Add(-5 * 24 * time.Hour),
		},
		{
			ID:              "round-02",
			ProviderRoundID: 339271,
			Name:            "Jornada 2",
			Number:          2,
			StartsAt:        weekStart.Add(2 * 24 * time.Hour),
			EndsAt:          weekStart.Add(4 * 24 * time.Hour),
			IsCurrent:       true,
		},
	}
}
