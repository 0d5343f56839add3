package leaderboard

import (
	"errors"
	"testing"
)

func entry(name string, date int64, count int) TopEarner {
	return TopEarner{UserName: name, UserDate: date, CookieCount: count}
}

func sub(name string, date int64, earned int) Submission {
	return Submission{UserName: name, UserDate: date, CookiesEarned: earned}
}

func mustRank(t *testing.T, snapshot []TopEarner, s Submission) Decision {
	t.Helper()
	d, err := Rank(snapshot, s)
	if err != nil {
		t.Fatalf("Rank returned unexpected error: %v", err)
	}
	return d
}

func TestRankIdentityMatchIncrements(t *testing.T) {
	board := []TopEarner{entry("A", 100, 5), entry("B", 90, 3)}

	d := mustRank(t, board, sub("B", 90, 3))

	if d.Outcome != OutcomeIncremented {
		t.Fatalf("expected OutcomeIncremented, got %v", d.Outcome)
	}
	if d.Entry != entry("B", 90, 4) {
		t.Errorf("expected updated entry {B 90 4}, got %+v", d.Entry)
	}
	if d.Previous != entry("B", 90, 3) {
		t.Errorf("expected previous entry {B 90 3}, got %+v", d.Previous)
	}
	// A still leads with 5 cookies, B moves to rank 2 with 4.
	if d.TopRank == nil || *d.TopRank != 2 {
		t.Errorf("expected topRank 2, got %v", d.TopRank)
	}
}

func TestRankIdentityMatchCanReachFirst(t *testing.T) {
	board := []TopEarner{entry("A", 100, 5), entry("B", 90, 5)}

	// B ties A at 5 but arrived earlier; the increment puts B at 6, rank 1.
	d := mustRank(t, board, sub("B", 90, 5))

	if d.TopRank == nil || *d.TopRank != 1 {
		t.Errorf("expected topRank 1, got %v", d.TopRank)
	}
}

func TestRankInconsistentSubmission(t *testing.T) {
	board := []TopEarner{entry("A", 100, 5)}

	_, err := Rank(board, sub("X", 50, 10))
	if !errors.Is(err, ErrInconsistentSubmission) {
		t.Fatalf("expected ErrInconsistentSubmission, got %v", err)
	}
}

func TestRankDisplacementOnEqualCount(t *testing.T) {
	board := []TopEarner{entry("A", 100, 5), entry("B", 90, 3)}

	d := mustRank(t, board, sub("C", 95, 3))

	if d.Outcome != OutcomeDisplaced {
		t.Fatalf("expected OutcomeDisplaced, got %v", d.Outcome)
	}
	if d.Entry != entry("C", 95, 4) {
		t.Errorf("expected candidate {C 95 4}, got %+v", d.Entry)
	}
	if d.Previous != entry("B", 90, 3) {
		t.Errorf("expected displaced {B 90 3}, got %+v", d.Previous)
	}
	if d.TopRank == nil || *d.TopRank != 2 {
		t.Errorf("expected topRank 2, got %v", d.TopRank)
	}
}

func TestRankDisplacementOnEarlierDate(t *testing.T) {
	board := []TopEarner{entry("A", 100, 5), entry("B", 90, 3)}

	// 2+1 equals B's count and date 80 is earlier than 90, so C wins the slot.
	d := mustRank(t, board, sub("C", 80, 2))

	if d.Outcome != OutcomeDisplaced {
		t.Fatalf("expected OutcomeDisplaced, got %v", d.Outcome)
	}
	if d.Entry != entry("C", 80, 3) {
		t.Errorf("expected candidate {C 80 3}, got %+v", d.Entry)
	}
	if d.TopRank == nil || *d.TopRank != 2 {
		t.Errorf("expected topRank 2, got %v", d.TopRank)
	}
}

func TestRankNotRanked(t *testing.T) {
	board := []TopEarner{entry("A", 100, 5), entry("B", 90, 3)}

	cases := []struct {
		name string
		sub  Submission
	}{
		{"incremented count still below last", sub("C", 80, 1)},
		{"count matches but date equal", sub("C", 90, 2)},
		{"count matches but date later", sub("C", 95, 2)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := mustRank(t, board, tc.sub)
			if d.Outcome != OutcomeNotRanked {
				t.Fatalf("expected OutcomeNotRanked, got %v", d.Outcome)
			}
			if d.TopRank != nil {
				t.Errorf("expected nil topRank, got %d", *d.TopRank)
			}
		})
	}
}

func TestRankBootstrapsEmptyBoard(t *testing.T) {
	d := mustRank(t, nil, sub("A", 100, 0))

	if d.Outcome != OutcomeBootstrapped {
		t.Fatalf("expected OutcomeBootstrapped, got %v", d.Outcome)
	}
	if d.Entry != entry("A", 100, 1) {
		t.Errorf("expected entry {A 100 1}, got %+v", d.Entry)
	}
	if d.TopRank == nil || *d.TopRank != 1 {
		t.Errorf("expected topRank 1, got %v", d.TopRank)
	}
}

func TestRankDoesNotMutateSnapshot(t *testing.T) {
	board := []TopEarner{entry("A", 100, 5), entry("B", 90, 3)}

	mustRank(t, board, sub("B", 90, 3))
	mustRank(t, board, sub("C", 95, 3))

	if board[0] != entry("A", 100, 5) || board[1] != entry("B", 90, 3) {
		t.Errorf("snapshot was mutated: %+v", board)
	}
}

func TestSortEntriesOrdering(t *testing.T) {
	entries := []TopEarner{
		entry("C", 95, 4),
		entry("A", 100, 5),
		entry("D", 90, 4),
		entry("B", 110, 5),
	}

	SortEntries(entries)

	want := []TopEarner{
		entry("A", 100, 5), // 5 cookies, earlier date
		entry("B", 110, 5),
		entry("D", 90, 4), // 4 cookies, earlier date
		entry("C", 95, 4),
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("position %d: expected %+v, got %+v", i, want[i], entries[i])
		}
	}

	// Sorting again must not reshuffle anything.
	again := make([]TopEarner, len(entries))
	copy(again, entries)
	SortEntries(again)
	for i := range entries {
		if entries[i] != again[i] {
			t.Fatalf("sort is not idempotent at position %d", i)
		}
	}
}

func TestLastEntryTieBreak(t *testing.T) {
	board := []TopEarner{entry("A", 90, 3), entry("B", 100, 3), entry("C", 95, 5)}

	// At equal counts the later date is last.
	if got := lastEntry(board); got != entry("B", 100, 3) {
		t.Errorf("expected last entry {B 100 3}, got %+v", got)
	}
}
