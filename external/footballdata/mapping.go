package footballdata

import (
	"strings"

	"github.com/riskibarqy/fantasy-draft/internal/usecase"
)

// Provider code tables. The provider ships numeric type codes alongside
// display names; codes win, names are the fallback for older payloads
// that omit them.
const (
	lineupTypeStarting = 11
	lineupTypeBench    = 12

	eventTypeIDGoal         = 14
	eventTypeIDPenalty      = 16
	eventTypeIDSubstitution = 18
	eventTypeIDYellowCard   = 19
	eventTypeIDRedCard      = 20
	eventTypeIDSecondYellow = 21

	positionIDGoalkeeper = 24
	positionIDDefender   = 25
	positionIDMidfielder = 26
	positionIDForward    = 27

	statTypeIDShotsOnTarget = 86
	statTypeIDPassAccuracy  = 82
	statTypeIDSaves         = 57
	statTypeIDShotsBlocked  = 58
	statTypeIDOffsides      = 51
)

type roundsEnvelope struct {
	Data []roundItem `json:"data"`
}

type roundItem struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Number     int    `json:"round"`
	StartingAt string `json:"starting_at"`
	EndingAt   string `json:"ending_at"`
	IsCurrent  bool   `json:"is_current"`
}

type roundDetailEnvelope struct {
	Data struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Number   int    `json:"round"`
		Fixtures []struct {
			ID int64 `json:"id"`
		} `json:"fixtures"`
	} `json:"data"`
}

type lineupsEnvelope struct {
	Data []lineupItem `json:"data"`
}

type lineupItem struct {
	PlayerID     int64  `json:"player_id"`
	PlayerName   string `json:"player_name"`
	TeamID       int64  `json:"team_id"`
	TypeID       int64  `json:"type_id"`
	PositionID   int64  `json:"position_id"`
	PositionName string `json:"position_name"`
}

type eventsEnvelope struct {
	Data []eventItem `json:"data"`
}

type eventItem struct {
	ID                int64  `json:"id"`
	TypeID            int64  `json:"type_id"`
	TypeName          string `json:"type_name"`
	SubTypeName       string `json:"sub_type_name"`
	PlayerID          int64  `json:"player_id"`
	PlayerName        string `json:"player_name"`
	RelatedPlayerID   int64  `json:"related_player_id"`
	RelatedPlayerName string `json:"related_player_name"`
	ParticipantID     int64  `json:"participant_id"`
	Minute            *int   `json:"minute"`
}

type statisticsEnvelope struct {
	Data []statisticItem `json:"data"`
}

type statisticItem struct {
	TypeID        int64          `json:"type_id"`
	TypeName      string         `json:"type_name"`
	ParticipantID int64          `json:"participant_id"`
	Data          map[string]any `json:"data"`
	Value         *float64       `json:"value"`
}

func (i statisticItem) numericValue() float64 {
	if i.Value != nil {
		return *i.Value
	}
	if i.Data == nil {
		return 0
	}
	switch v := i.Data["value"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

func resolveLineupPosition(item lineupItem) string {
	if code := positionCodeFromID(item.PositionID); code != "" {
		return code
	}
	return normalizePositionName(item.PositionName)
}

func positionCodeFromID(value int64) string {
	switch value {
	case positionIDGoalkeeper:
		return "GK"
	case positionIDDefender:
		return "DEF"
	case positionIDMidfielder:
		return "MID"
	case positionIDForward:
		return "FWD"
	default:
		return ""
	}
}

func normalizePositionName(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "goalkeeper", "keeper", "goalie", "gk":
		return "GK"
	case "defender", "def", "centre-back", "center-back", "full-back", "wing-back":
		return "DEF"
	case "midfielder", "midfielders", "mid", "winger", "attacking midfielder", "defensive midfielder":
		return "MID"
	case "forward", "attacker", "striker", "fwd":
		return "FWD"
	default:
		return ""
	}
}

// resolveEventType maps a provider event record to the closed domain set.
// A penalty scored during open play arrives either as its own type or as a
// goal with a penalty sub type.
func resolveEventType(item eventItem) (usecase.EventType, bool) {
	switch item.TypeID {
	case eventTypeIDGoal:
		if strings.Contains(strings.ToLower(item.SubTypeName), "penalty") {
			return usecase.EventTypePenaltyScored, true
		}
		return usecase.EventTypeGoal, true
	case eventTypeIDPenalty:
		return usecase.EventTypePenaltyScored, true
	case eventTypeIDSubstitution:
		return usecase.EventTypeSubstitution, true
	case eventTypeIDYellowCard:
		return usecase.EventTypeYellowCard, true
	case eventTypeIDRedCard, eventTypeIDSecondYellow:
		return usecase.EventTypeRedCard, true
	}

	switch normalizeTypeName(item.TypeName) {
	case "goal":
		return usecase.EventTypeGoal, true
	case "penalty", "penalty scored":
		return usecase.EventTypePenaltyScored, true
	case "substitution", "sub":
		return usecase.EventTypeSubstitution, true
	case "yellowcard", "yellow card":
		return usecase.EventTypeYellowCard, true
	case "redcard", "red card", "yellowred card", "second yellow":
		return usecase.EventTypeRedCard, true
	}
	return "", false
}

func resolveStatType(item statisticItem) (usecase.StatType, bool) {
	switch item.TypeID {
	case statTypeIDShotsOnTarget:
		return usecase.StatTypeShotsOnTarget, true
	case statTypeIDPassAccuracy:
		return usecase.StatTypePassAccuracy, true
	case statTypeIDSaves:
		return usecase.StatTypeSaves, true
	case statTypeIDShotsBlocked:
		return usecase.StatTypeShotsBlocked, true
	case statTypeIDOffsides:
		return usecase.StatTypeOffsides, true
	}

	switch normalizeTypeName(item.TypeName) {
	case "shots on target":
		return usecase.StatTypeShotsOnTarget, true
	case "pass accuracy", "passes percentage", "successful passes percentage":
		return usecase.StatTypePassAccuracy, true
	case "saves":
		return usecase.StatTypeSaves, true
	case "shots blocked":
		return usecase.StatTypeShotsBlocked, true
	case "offsides":
		return usecase.StatTypeOffsides, true
	}
	return "", false
}

func normalizeTypeName(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	raw = strings.ReplaceAll(raw, "_", " ")
	raw = strings.ReplaceAll(raw, "-", " ")
	return strings.Join(strings.Fields(raw), " ")
}
