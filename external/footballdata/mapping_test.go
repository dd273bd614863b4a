package footballdata

import (
	"testing"

	"github.com/riskibarqy/fantasy-draft/internal/usecase"
)

func TestResolveEventType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		item   eventItem
		want   usecase.EventType
		wantOK bool
	}{
		{name: "goal by id", item: eventItem{TypeID: eventTypeIDGoal}, want: usecase.EventTypeGoal, wantOK: true},
		{name: "penalty goal by sub type", item: eventItem{TypeID: eventTypeIDGoal, SubTypeName: "Penalty"}, want: usecase.EventTypePenaltyScored, wantOK: true},
		{name: "penalty by id", item: eventItem{TypeID: eventTypeIDPenalty}, want: usecase.EventTypePenaltyScored, wantOK: true},
		{name: "substitution by id", item: eventItem{TypeID: eventTypeIDSubstitution}, want: usecase.EventTypeSubstitution, wantOK: true},
		{name: "yellow by id", item: eventItem{TypeID: eventTypeIDYellowCard}, want: usecase.EventTypeYellowCard, wantOK: true},
		{name: "red by id", item: eventItem{TypeID: eventTypeIDRedCard}, want: usecase.EventTypeRedCard, wantOK: true},
		{name: "second yellow counts as red", item: eventItem{TypeID: eventTypeIDSecondYellow}, want: usecase.EventTypeRedCard, wantOK: true},
		{name: "name fallback", item: eventItem{TypeName: "Yellow Card"}, want: usecase.EventTypeYellowCard, wantOK: true},
		{name: "name fallback with underscores", item: eventItem{TypeName: "yellowred_card"}, want: usecase.EventTypeRedCard, wantOK: true},
		{name: "unknown code dropped", item: eventItem{TypeID: 999, TypeName: "VAR review"}, wantOK: false},
	}

	for _, tc := range cases {
		got, ok := resolveEventType(tc.item)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("%s: resolveEventType = (%q, %t), want (%q, %t)", tc.name, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestResolveStatType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		item   statisticItem
		want   usecase.StatType
		wantOK bool
	}{
		{name: "shots on target by id", item: statisticItem{TypeID: statTypeIDShotsOnTarget}, want: usecase.StatTypeShotsOnTarget, wantOK: true},
		{name: "pass accuracy by id", item: statisticItem{TypeID: statTypeIDPassAccuracy}, want: usecase.StatTypePassAccuracy, wantOK: true},
		{name: "saves by name", item: statisticItem{TypeName: "Saves"}, want: usecase.StatTypeSaves, wantOK: true},
		{name: "pass accuracy alias", item: statisticItem{TypeName: "successful_passes_percentage"}, want: usecase.StatTypePassAccuracy, wantOK: true},
		{name: "unknown dropped", item: statisticItem{TypeID: 12345, TypeName: "ball possession"}, wantOK: false},
	}

	for _, tc := range cases {
		got, ok := resolveStatType(tc.item)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("%s: resolveStatType = (%q, %t), want (%q, %t)", tc.name, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestResolveLineupPosition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		item lineupItem
		want string
	}{
		{item: lineupItem{PositionID: positionIDGoalkeeper}, want: "GK"},
		{item: lineupItem{PositionID: positionIDDefender, PositionName: "Striker"}, want: "DEF"},
		{item: lineupItem{PositionName: "Centre-Back"}, want: "DEF"},
		{item: lineupItem{PositionName: "Attacking Midfielder"}, want: "MID"},
		{item: lineupItem{PositionName: "Striker"}, want: "FWD"},
		{item: lineupItem{PositionID: 99, PositionName: "Libero"}, want: ""},
	}

	for _, tc := range cases {
		if got := resolveLineupPosition(tc.item); got != tc.want {
			t.Fatalf("resolveLineupPosition(%+v) = %q, want %q", tc.item, got, tc.want)
		}
	}
}

func TestStatisticItem_NumericValue(t *testing.T) {
	t.Parallel()

	direct := 7.0
	if got := (statisticItem{Value: &direct}).numericValue(); got != 7 {
		t.Fatalf("direct value = %v, want 7", got)
	}
	nested := statisticItem{Data: map[string]any{"value": 84.5}}
	if got := nested.numericValue(); got != 84.5 {
		t.Fatalf("nested value = %v, want 84.5", got)
	}
	if got := (statisticItem{}).numericValue(); got != 0 {
		t.Fatalf("empty value = %v, want 0", got)
	}
}

func TestParseProviderDateTime(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"2026-08-21T19:00:00Z", "2026-08-21 19:00:00", "2026-08-21"} {
		ts := parseProviderDateTime(raw)
		if ts == nil || ts.IsZero() {
			t.Fatalf("parseProviderDateTime(%q) did not parse", raw)
		}
	}

	if ts := parseProviderDateTime("21/08/2026"); ts != nil {
		t.Fatal("expected nil for unsupported layout")
	}
}
