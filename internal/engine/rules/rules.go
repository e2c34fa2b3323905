// Package rules holds the declarative field-name heuristics: one rule per
// canonical role, listing the exact aliases and name substrings that mark a
// field as a candidate for that role. Extractors consult this table instead
// of hard-coding name checks, so the heuristic policy is auditable in one
// place.
package rules

import "strings"

// Role is a canonical concept the engine locates inside a record.
type Role string

const (
	RoleID        Role = "id"
	RoleTimestamp Role = "timestamp"
	RoleUser      Role = "user"
	RoleEventType Role = "eventType"
)

// Priority orders how strongly a field name matches a role. AliasMatch (the
// lowercased name is exactly a known alias) outranks SubstringMatch.
type Priority int

const (
	NoMatch Priority = iota
	SubstringMatch
	AliasMatch
)

// Rule is the name heuristic for one role. All entries are lowercase;
// matching lowercases the field name first. Excludes vetoes exact names
// before aliases and substrings are consulted: "transaction_id" contains
// "action", but a field already serving as the record's primary identifier
// never doubles as its event type.
type Rule struct {
	Role       Role
	Aliases    []string
	Substrings []string
	Excludes   []string
}

// Set is an immutable rule table, one rule per role.
type Set struct {
	rules map[Role]Rule
}

// NewSet builds a Set from explicit rules. Later rules for the same role
// replace earlier ones.
func NewSet(rules ...Rule) Set {
	m := make(map[Role]Rule, len(rules))
	for _, r := range rules {
		m[r.Role] = r
	}
	return Set{rules: m}
}

// DefaultSet returns the built-in heuristics.
func DefaultSet() Set {
	return NewSet(
		Rule{
			Role:       RoleID,
			Aliases:    []string{"id", "event_id", "eventid", "transaction_id"},
			Substrings: []string{"id"},
		},
		Rule{
			Role:       RoleTimestamp,
			Substrings: []string{"time", "date", "created", "occurred", "ts"},
		},
		Rule{
			Role:       RoleUser,
			Substrings: []string{"user", "customer"},
		},
		Rule{
			Role:       RoleEventType,
			Substrings: []string{"type", "event", "action"},
			Excludes:   []string{"id", "event_id", "eventid", "transaction_id"},
		},
	)
}

// Match reports how strongly a field name matches a role's rule.
func (s Set) Match(role Role, name string) Priority {
	r, ok := s.rules[role]
	if !ok {
		return NoMatch
	}
	lower := strings.ToLower(name)
	for _, x := range r.Excludes {
		if lower == x {
			return NoMatch
		}
	}
	for _, a := range r.Aliases {
		if lower == a {
			return AliasMatch
		}
	}
	for _, sub := range r.Substrings {
		if strings.Contains(lower, sub) {
			return SubstringMatch
		}
	}
	return NoMatch
}

// Roles returns the roles the set has rules for.
func (s Set) Roles() []Role {
	roles := make([]Role, 0, len(s.rules))
	for r := range s.rules {
		roles = append(roles, r)
	}
	return roles
}
