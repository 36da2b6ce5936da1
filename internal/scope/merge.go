package scope

import (
	"fmt"
	"strings"
)

// MergePolicy decides the candidate types of a name whose reaching
// bindings disagree.
type MergePolicy uint8

const (
	// MergeUnion keeps every candidate type.
	MergeUnion MergePolicy = iota
	// MergeCommonBase keeps the most specific class every candidate
	// inherits from, and nothing when there is none.
	MergeCommonBase
	// MergeUnresolved gives up on any disagreement.
	MergeUnresolved
)

var policyNames = map[MergePolicy]string{
	MergeUnion:      "union",
	MergeCommonBase: "common-base",
	MergeUnresolved: "unresolved",
}

func (p MergePolicy) String() string { return policyNames[p] }

// ParsePolicy maps a policy name to its value. The empty string selects
// MergeUnion.
func ParsePolicy(s string) (MergePolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MergeUnion, nil
	}
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return MergeUnion, fmt.Errorf("unknown merge policy %q", s)
}

// Merge combines the candidate types of bs. When every binding resolves
// to the same single type that type is the result; otherwise p decides.
func Merge(bs []*Binding, p MergePolicy) []Type {
	var types []Type
	unresolved := false
	for _, b := range bs {
		if len(b.Types) == 0 {
			unresolved = true
			continue
		}
		types = addTypes(types, b.Types...)
	}
	if len(types) == 0 {
		return nil
	}
	if len(types) == 1 && !unresolved {
		return types
	}
	switch p {
	case MergeUnion:
		return types
	case MergeCommonBase:
		if unresolved {
			return nil
		}
		if t, ok := commonBase(types); ok {
			return []Type{t}
		}
	}
	return nil
}

func addTypes(dst []Type, src ...Type) []Type {
	for _, t := range src {
		dup := false
		for _, d := range dst {
			if d == t {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, t)
		}
	}
	return dst
}

// commonBase finds the first class in the first type's ancestry that every
// other type also inherits from. Instances and class objects never mix.
func commonBase(types []Type) (Type, bool) {
	sets := make([]map[*Class]bool, len(types))
	for i, t := range types {
		if t.Instance != types[0].Instance {
			return Type{}, false
		}
		sets[i] = make(map[*Class]bool)
		for _, c := range t.Class.ancestors() {
			sets[i][c] = true
		}
	}
	for _, c := range types[0].Class.ancestors() {
		shared := true
		for _, set := range sets[1:] {
			if !set[c] {
				shared = false
				break
			}
		}
		if shared {
			return Type{Class: c, Instance: types[0].Instance}, true
		}
	}
	return Type{}, false
}
