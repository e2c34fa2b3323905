// Package inventory builds a corpus-wide catalog of field names, bucketed by
// role. The catalog is constructed once before per-record processing and is
// immutable afterwards; in pre-categorized mode extractors consult its
// buckets instead of re-scanning every field name of every record.
package inventory

import (
	"sort"

	"github.com/crimson-sun/sift/internal/engine/rules"
	"github.com/crimson-sun/sift/internal/input"
	"github.com/crimson-sun/sift/internal/model"
)

// Inventory is the immutable field catalog. Names and buckets keep
// first-appearance order across the corpus, which is what makes the
// pre-categorized identifier tie-break differ from the stateless scan: a
// record's own field order plays no part here.
type Inventory struct {
	names   []string
	buckets map[rules.Role][]string
}

// Builder accumulates field names record by record.
type Builder struct {
	set  rules.Set
	seen map[string]struct{}
	inv  *Inventory
}

// NewBuilder creates a Builder that buckets names with the given rule set.
func NewBuilder(set rules.Set) *Builder {
	return &Builder{
		set:  set,
		seen: make(map[string]struct{}),
		inv:  &Inventory{buckets: make(map[rules.Role][]string)},
	}
}

// Observe records every field name of one record, bucketing names not seen
// before. A name can land in several buckets.
func (b *Builder) Observe(rec *model.RawRecord) {
	for _, name := range rec.Keys() {
		if _, ok := b.seen[name]; ok {
			continue
		}
		b.seen[name] = struct{}{}
		b.inv.names = append(b.inv.names, name)
		for _, role := range []rules.Role{rules.RoleID, rules.RoleTimestamp, rules.RoleUser, rules.RoleEventType} {
			if b.set.Match(role, name) != rules.NoMatch {
				b.inv.buckets[role] = append(b.inv.buckets[role], name)
			}
		}
	}
}

// Build finalizes and returns the catalog. The Builder must not be used
// afterwards.
func (b *Builder) Build() *Inventory {
	inv := b.inv
	b.inv = nil
	return inv
}

// Build constructs an Inventory from raw input lines in one pass. Lines that
// fail to parse contribute nothing; they are rejected later by the pipeline.
func Build(lines []input.Line, set rules.Set) *Inventory {
	b := NewBuilder(set)
	for _, ln := range lines {
		rec, err := model.ParseRecord(ln.Text)
		if err != nil {
			continue
		}
		b.Observe(rec)
	}
	return b.Build()
}

// Names returns every distinct field name in first-appearance order.
func (inv *Inventory) Names() []string { return inv.names }

// SortedNames returns the distinct field names sorted, for reporting.
func (inv *Inventory) SortedNames() []string {
	out := make([]string, len(inv.names))
	copy(out, inv.names)
	sort.Strings(out)
	return out
}

// Bucket returns the names classified under a role, in first-appearance
// order.
func (inv *Inventory) Bucket(role rules.Role) []string {
	return inv.buckets[role]
}

// Candidates yields the role's bucketed names that are present in the given
// record, keeping bucket order. This implements the engine's FieldSource.
func (inv *Inventory) Candidates(role rules.Role, rec *model.RawRecord) []string {
	bucket := inv.buckets[role]
	var out []string
	for _, name := range bucket {
		if rec.Has(name) {
			out = append(out, name)
		}
	}
	return out
}
