// Package engine locates canonical roles inside arbitrary flat JSON records
// and assembles unified events. Field-name heuristics live in the rules
// table; this package runs the extractors and validates their results.
package engine

import (
	"fmt"

	"github.com/crimson-sun/sift/internal/engine/rules"
	"github.com/crimson-sun/sift/internal/engine/timestamp"
	"github.com/crimson-sun/sift/internal/model"
)

// Validation messages. Wording is part of the persisted contract; rejection
// files are diffed across runs.
const (
	ErrMissingTimestamp = "Missing timestamp"
	ErrMissingEventType = "Missing event type"
)

// FieldSource yields the candidate field names to consider for a role,
// restricted to fields present in the record. The stateless source walks the
// record's own field order; the inventory source walks corpus
// first-appearance order. The two differ only in tie-breaks when a record
// carries several equally ranked candidates.
type FieldSource interface {
	Candidates(role rules.Role, rec *model.RawRecord) []string
}

// statelessSource scans each record independently, in the record's own
// field order.
type statelessSource struct {
	set rules.Set
}

func (s statelessSource) Candidates(role rules.Role, rec *model.RawRecord) []string {
	var out []string
	for _, name := range rec.Keys() {
		if s.set.Match(role, name) != rules.NoMatch {
			out = append(out, name)
		}
	}
	return out
}

// Engine maps raw records to unified events.
type Engine struct {
	set    rules.Set
	fields FieldSource
}

// New creates an Engine. A nil FieldSource selects the stateless per-record
// scan.
func New(set rules.Set, fields FieldSource) *Engine {
	if fields == nil {
		fields = statelessSource{set: set}
	}
	return &Engine{set: set, fields: fields}
}

// Map runs every extractor against one record and either assembles the
// unified event or returns the ordered rejection reasons. The identifier
// can always be derived (it falls back to a generated value), so only a
// missing timestamp or event type rejects.
func (e *Engine) Map(rec *model.RawRecord, line int) (*model.UnifiedEvent, []string) {
	id := e.FindID(rec, line)
	ts, tsOK := e.FindTimestamp(rec)
	user, userOK := e.FindUser(rec)
	typ, typOK := e.FindEventType(rec)
	src := FindSource(rec)

	var errs []string
	if !tsOK {
		errs = append(errs, ErrMissingTimestamp)
	}
	if !typOK {
		errs = append(errs, ErrMissingEventType)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	ev := &model.UnifiedEvent{
		ID:        id,
		Timestamp: ts,
		Source:    src,
		EventType: typ,
		Payload:   rec,
	}
	if userOK {
		ev.UserID = user
	}
	return ev, nil
}

// FindID locates the record's identifier. Exact primary aliases win over
// mere id-substring names; among equals, candidate order decides. With no
// usable candidate at all it synthesizes generated_<line>, so identifier
// extraction never fails.
func (e *Engine) FindID(rec *model.RawRecord, line int) string {
	candidates := e.fields.Candidates(rules.RoleID, rec)
	for _, name := range candidates {
		if e.set.Match(rules.RoleID, name) == rules.AliasMatch && model.Truthy(rec.Value(name)) {
			return model.Stringify(rec.Value(name))
		}
	}
	for _, name := range candidates {
		if model.Truthy(rec.Value(name)) {
			return model.Stringify(rec.Value(name))
		}
	}
	return fmt.Sprintf("generated_%d", line)
}

// FindTimestamp returns the first candidate field that normalizes to an
// instant. Candidates that are falsy, carry the invalid-date sentinel, or
// fail to parse are skipped.
func (e *Engine) FindTimestamp(rec *model.RawRecord) (string, bool) {
	for _, name := range e.fields.Candidates(rules.RoleTimestamp, rec) {
		if v, skip := timestamp.Normalize(rec.Value(name)); skip == timestamp.SkipNone {
			return v, true
		}
	}
	return "", false
}

// FindUser returns the first truthy user-like value that is not the
// anonymous "guest" marker. Absence is not an error; the unified event just
// omits userId.
func (e *Engine) FindUser(rec *model.RawRecord) (string, bool) {
	for _, name := range e.fields.Candidates(rules.RoleUser, rec) {
		v := rec.Value(name)
		if model.Truthy(v) && model.Stringify(v) != "guest" {
			return model.Stringify(v), true
		}
	}
	return "", false
}

// FindEventType returns the first truthy type-like value. When no name
// matches, structural fallbacks apply in fixed order: a login_event field
// means "login", an error field means "error", and a transaction_type field
// contributes its own value (which still must be truthy).
func (e *Engine) FindEventType(rec *model.RawRecord) (string, bool) {
	for _, name := range e.fields.Candidates(rules.RoleEventType, rec) {
		v := rec.Value(name)
		if model.Truthy(v) {
			return model.Stringify(v), true
		}
	}

	switch {
	case rec.Has("login_event"):
		return "login", true
	case rec.Has("error"):
		return "error", true
	case rec.Has("transaction_type"):
		v := rec.Value("transaction_type")
		if model.Truthy(v) {
			return model.Stringify(v), true
		}
	}
	return "", false
}

// FindSource classifies the record's origin from structural field presence.
// Vendor markers are checked before device markers, and "internal" is the
// catch-all, so classification is total.
func FindSource(rec *model.RawRecord) string {
	if rec.Has("transaction_id") || rec.Has("payment_method") || rec.Has("order_details") {
		return model.SourceVendor
	}
	if rec.Has("error") && rec.Has("stack_trace") {
		return model.SourceDevice
	}
	return model.SourceInternal
}
