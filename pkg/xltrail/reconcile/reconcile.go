// Package reconcile aligns the artifacts of two workbook revisions by key.
//
// Revision A is the new side ("ours") and revision B the old side
// ("theirs"). Output order never depends on map iteration.
package reconcile

import "github.com/xltrail/xltrail-go/pkg/xltrail/models"

// Status classifies an artifact across both revisions.
type Status int

const (
	// Unchanged artifacts exist on both sides with equal bodies.
	Unchanged Status = iota
	// Added artifacts exist only in revision A.
	Added
	// Removed artifacts exist only in revision B.
	Removed
	// Modified artifacts exist on both sides with different bodies.
	Modified
)

func (s Status) String() string {
	switch s {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	default:
		return "unchanged"
	}
}

// Entry is one reconciled artifact key.
type Entry struct {
	Key    string
	InA    bool
	InB    bool
	Status Status
}

// Changed walks A's keys, then B-only keys, and returns only artifacts that
// were added, removed or modified.
func Changed[V any](a, b *models.Ordered[V], equal func(x, y V) bool) []Entry {
	var entries []Entry
	for _, key := range a.Keys() {
		va, _ := a.Get(key)
		vb, inB := b.Get(key)
		switch {
		case !inB:
			entries = append(entries, Entry{Key: key, InA: true, Status: Added})
		case !equal(va, vb):
			entries = append(entries, Entry{Key: key, InA: true, InB: true, Status: Modified})
		}
	}
	for _, key := range b.Keys() {
		if !a.Has(key) {
			entries = append(entries, Entry{Key: key, InB: true, Status: Removed})
		}
	}
	return entries
}

// Union returns every key of A followed by B-only keys, unchanged ones
// included.
func Union[V any](a, b *models.Ordered[V], equal func(x, y V) bool) []Entry {
	seen := make(map[string]bool, a.Len()+b.Len())
	var entries []Entry
	for _, key := range append(a.Keys(), b.Keys()...) {
		if seen[key] {
			continue
		}
		seen[key] = true

		va, inA := a.Get(key)
		vb, inB := b.Get(key)
		e := Entry{Key: key, InA: inA, InB: inB}
		switch {
		case !inB:
			e.Status = Added
		case !inA:
			e.Status = Removed
		case equal(va, vb):
			e.Status = Unchanged
		default:
			e.Status = Modified
		}
		entries = append(entries, e)
	}
	return entries
}

// Modules reconciles VBA modules. Identical modules are skipped.
func Modules(a, b *models.Ordered[models.Module]) []Entry {
	return Changed(a, b, func(x, y models.Module) bool {
		return x.Content == y.Content
	})
}

// Sheets reconciles sheets. Every sheet yields an entry so that the report
// always shows the full sheet structure of both revisions.
func Sheets(a, b *models.Ordered[models.Sheet]) []Entry {
	return Union(a, b, models.Sheet.Equal)
}
