package leaderboard

import (
	"errors"
	"sort"
)

// ErrInconsistentSubmission means the claimed cookie count is higher than the
// lowest ranked score, which cannot happen through normal play.
var ErrInconsistentSubmission = errors.New("claimed cookie count exceeds the lowest ranked score")

// TopEarner is one leaderboard row. Identity is the exact triple, there is no
// durable user id (deliberate simplification carried over from the data model).
type TopEarner struct {
	UserName    string `json:"userName"`
	UserDate    int64  `json:"userDate"`
	CookieCount int    `json:"cookieCount"`
}

// Submission carries the submitter's identity and the cookie count they held
// before this correct answer.
type Submission struct {
	UserName      string
	UserDate      int64
	CookiesEarned int
}

type Outcome int

const (
	// OutcomeIncremented means the submitter was already on the board and
	// their existing row gets its count bumped.
	OutcomeIncremented Outcome = iota
	// OutcomeDisplaced means the submitter knocks the lowest ranked row off
	// the board.
	OutcomeDisplaced
	// OutcomeNotRanked means the answer counted but the board is unchanged.
	OutcomeNotRanked
	// OutcomeBootstrapped means the board was empty and the submitter seeds it.
	OutcomeBootstrapped
)

// Decision describes the board mutation to persist and the rank to report.
// Previous is the stored row to match when updating (the pre-increment row for
// OutcomeIncremented, the displaced row for OutcomeDisplaced).
type Decision struct {
	Outcome  Outcome
	TopRank  *int
	Entry    TopEarner
	Previous TopEarner
}

// Less reports whether a ranks strictly above b: higher cookie count first,
// earlier userDate winning ties.
func Less(a, b TopEarner) bool {
	if a.CookieCount != b.CookieCount {
		return a.CookieCount > b.CookieCount
	}
	return a.UserDate < b.UserDate
}

// SortEntries orders entries best rank first, in place.
func SortEntries(entries []TopEarner) {
	sort.Slice(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	})
}

// Rank decides what a correct answer does to the board. It is pure: the
// snapshot is never modified and the returned Decision names the single
// mutation the caller should persist. The snapshot is the board as stored,
// in any order.
func Rank(snapshot []TopEarner, sub Submission) (Decision, error) {
	if len(snapshot) == 0 {
		// First ever submission seeds the board at rank 1.
		entry := TopEarner{UserName: sub.UserName, UserDate: sub.UserDate, CookieCount: sub.CookiesEarned + 1}
		return Decision{Outcome: OutcomeBootstrapped, TopRank: rankPtr(1), Entry: entry}, nil
	}

	// The submitter's previously recorded row, if any: exact match on all
	// three fields, cookiesEarned being the pre-answer count.
	for _, e := range snapshot {
		if e.UserName == sub.UserName && e.UserDate == sub.UserDate && e.CookieCount == sub.CookiesEarned {
			updated := e
			updated.CookieCount++
			rank := rankOf(replacing(snapshot, e, updated), updated)
			return Decision{Outcome: OutcomeIncremented, TopRank: rankPtr(rank), Entry: updated, Previous: e}, nil
		}
	}

	last := lastEntry(snapshot)
	switch {
	case sub.CookiesEarned > last.CookieCount:
		// A count above the lowest qualifying score must have gone through
		// the increment path first, so the request is bogus.
		return Decision{}, ErrInconsistentSubmission
	case sub.CookiesEarned == last.CookieCount:
		return displace(snapshot, sub, last, sub.CookiesEarned+1), nil
	default:
		earned := sub.CookiesEarned + 1
		if earned == last.CookieCount && sub.UserDate < last.UserDate {
			return displace(snapshot, sub, last, earned), nil
		}
		return Decision{Outcome: OutcomeNotRanked}, nil
	}
}

func displace(snapshot []TopEarner, sub Submission, last TopEarner, count int) Decision {
	candidate := TopEarner{UserName: sub.UserName, UserDate: sub.UserDate, CookieCount: count}
	rank := rankOf(replacing(snapshot, last, candidate), candidate)
	return Decision{Outcome: OutcomeDisplaced, TopRank: rankPtr(rank), Entry: candidate, Previous: last}
}

// lastEntry finds the lowest ranked row; at equal cookie counts the later
// userDate is considered last.
func lastEntry(snapshot []TopEarner) TopEarner {
	last := snapshot[0]
	for _, e := range snapshot[1:] {
		if Less(last, e) {
			last = e
		}
	}
	return last
}

// replacing returns a copy of snapshot with the first row equal to old swapped
// for updated.
func replacing(snapshot []TopEarner, old, updated TopEarner) []TopEarner {
	out := make([]TopEarner, len(snapshot))
	copy(out, snapshot)
	for i, e := range out {
		if e == old {
			out[i] = updated
			break
		}
	}
	return out
}

// rankOf sorts entries and returns the 1-based position of target.
func rankOf(entries []TopEarner, target TopEarner) int {
	SortEntries(entries)
	for i, e := range entries {
		if e == target {
			return i + 1
		}
	}
	return len(entries)
}

func rankPtr(rank int) *int {
	return &rank
}
