package draft

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/riskibarqy/fantasy-draft/internal/domain/player"
)

func TestCandidateWeight(t *testing.T) {
	t.Parallel()

	cases := []struct {
		stars int
		want  float64
	}{
		{stars: 1, want: 1},
		{stars: 5, want: 1},
		{stars: 2, want: 3},
		{stars: 4, want: 3},
		{stars: 3, want: 4},
		{stars: 0, want: 4},
		{stars: 9, want: 4},
	}

	for _, tc := range cases {
		if got := CandidateWeight(tc.stars); got != tc.want {
			t.Fatalf("CandidateWeight(%d) = %v, want %v", tc.stars, got, tc.want)
		}
	}
}

func testPool(size int) []player.Player {
	pool := make([]player.Player, 0, size)
	stars := []int{1, 2, 3, 4, 5}
	for i := 0; i < size; i++ {
		pool = append(pool, player.Player{
			ID:    string(rune('a' + i)),
			Stars: stars[i%len(stars)],
		})
	}
	return pool
}

func TestSelector_Pick_Deterministic(t *testing.T) {
	t.Parallel()

	pool := testPool(10)

	first, err := NewSelector(rand.NewSource(42)).Pick(pool, 4)
	if err != nil {
		t.Fatalf("first pick error: %v", err)
	}
	second, err := NewSelector(rand.NewSource(42)).Pick(pool, 4)
	if err != nil {
		t.Fatalf("second pick error: %v", err)
	}

	if len(first) != 4 || len(second) != 4 {
		t.Fatalf("unexpected pick sizes: %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("same seed produced different draws at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestSelector_Pick_WithoutReplacement(t *testing.T) {
	t.Parallel()

	pool := testPool(6)
	picked, err := NewSelector(rand.NewSource(7)).Pick(pool, 6)
	if err != nil {
		t.Fatalf("pick error: %v", err)
	}

	seen := make(map[string]struct{}, len(picked))
	for _, p := range picked {
		if _, dup := seen[p.ID]; dup {
			t.Fatalf("player %s drawn twice", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	if len(seen) != 6 {
		t.Fatalf("expected 6 distinct players, got %d", len(seen))
	}
}

func TestSelector_Pick_InsufficientCandidates(t *testing.T) {
	t.Parallel()

	_, err := NewSelector(rand.NewSource(1)).Pick(testPool(3), 4)
	if !errors.Is(err, ErrInsufficientCandidates) {
		t.Fatalf("expected ErrInsufficientCandidates, got %v", err)
	}
}

func TestSelector_Pick_InvalidCount(t *testing.T) {
	t.Parallel()

	if _, err := NewSelector(rand.NewSource(1)).Pick(testPool(3), 0); err == nil {
		t.Fatal("expected error for zero count")
	}
}
