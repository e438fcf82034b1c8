// Package ordering contains the pure position arithmetic for ordered todo
// lists. Functions here operate on in-memory snapshots and never touch the
// store; the sqlite adapter is responsible for writing results back inside a
// single transaction.
package ordering

import "sort"

// Ranked pairs an item ID with its current position in the owner's list.
type Ranked struct {
	ID       int64
	Position int
}

// BatchEntry is one requested retarget in a batch move. Desired is an
// untrusted positive integer; it need not be distinct from other entries nor
// form a valid permutation.
type BatchEntry struct {
	ID      int64
	Desired int
}

// Clamp bounds a 1-based target position to [1, n]. For n <= 0 it returns 1.
func Clamp(target, n int) int {
	if target < 1 {
		return 1
	}
	if n < 1 {
		return 1
	}
	if target > n {
		return n
	}
	return target
}

// SpliceMove computes the new ID order after moving the item at 1-based
// position from to 1-based position to. These are list-splice semantics
// (remove then re-insert), not a pairwise swap: every item between the two
// positions shifts by one. The input slice is not modified.
func SpliceMove(ids []int64, from, to int) []int64 {
	n := len(ids)
	from = Clamp(from, n)
	to = Clamp(to, n)

	out := make([]int64, 0, n)
	out = append(out, ids[:from-1]...)
	out = append(out, ids[from:]...)

	moved := ids[from-1]
	out = append(out, 0)
	copy(out[to:], out[to-1:])
	out[to-1] = moved
	return out
}

// Rank sorts a snapshot by (position, id) and returns the IDs in that order.
// The ID tie-break makes normalization deterministic even on snapshots whose
// positions carry duplicates, which can never be observed post-commit but can
// exist inside a repair pass.
func Rank(items []Ranked) []int64 {
	sorted := make([]Ranked, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Position != sorted[j].Position {
			return sorted[i].Position < sorted[j].Position
		}
		return sorted[i].ID < sorted[j].ID
	})

	ids := make([]int64, len(sorted))
	for i, it := range sorted {
		ids[i] = it.ID
	}
	return ids
}

// ResolveBatch computes the final ID order after applying a batch of
// retargets against the current snapshot. Collision policy is first-fit
// ascending: entries are processed in ascending order of desired position
// (stable, so tied requests keep their original relative order) and each walks
// upward from its desired slot until it finds one not already occupied by an
// untouched item or an earlier batch entry. The numerically smallest request
// therefore wins the earliest slot.
//
// The result is an order, not a position assignment: positions beyond N or
// gaps left by the walk are erased when the caller renumbers the returned
// order densely from 1.
func ResolveBatch(current []Ranked, entries []BatchEntry) []int64 {
	targeted := make(map[int64]bool, len(entries))
	for _, e := range entries {
		targeted[e.ID] = true
	}

	// Positions held by items the batch does not touch stay fixed and form
	// the initial occupied set.
	occupied := make(map[int]bool, len(current))
	var untouched []Ranked
	for _, it := range current {
		if targeted[it.ID] {
			continue
		}
		occupied[it.Position] = true
		untouched = append(untouched, it)
	}

	sorted := make([]BatchEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Desired < sorted[j].Desired
	})

	resolved := make([]Ranked, 0, len(sorted))
	for _, e := range sorted {
		p := e.Desired
		if p < 1 {
			p = 1
		}
		for occupied[p] {
			p++
		}
		occupied[p] = true
		resolved = append(resolved, Ranked{ID: e.ID, Position: p})
	}

	return Rank(append(untouched, resolved...))
}
