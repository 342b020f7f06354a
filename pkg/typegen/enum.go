package typegen

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	identRe    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	nonIdentRe = regexp.MustCompile(`[^A-Za-z0-9]+`)
)

// placeholderMember is used when sanitizing a value leaves nothing usable.
const placeholderMember = "Value"

// SynthesizeEnum turns an enumeration value list into a named enum
// declaration registered with reg. memberNames optionally supplies
// caller-chosen member identifiers (e.g. from x-enum-varnames); it is
// accepted all-or-nothing: on any length mismatch, invalid identifier, or
// duplicate, every member falls back to a sanitized value-derived name.
//
// Structurally identical enums (same value set in any order) collapse to the
// first declaration created for that value set.
func SynthesizeEnum(reg *Registry, name string, values []any, memberNames []string) (Declaration, error) {
	lits := make([]string, len(values))
	for i, v := range values {
		if v == nil {
			return Declaration{}, &InvalidEnumValueError{Decl: name, Index: i}
		}
		lits[i] = renderEnumLiteral(v)
	}

	names := memberNames
	if !validMemberNames(names, len(values)) {
		names = nil
	}

	used := map[string]struct{}{}
	members := make([]string, len(values))
	for i, v := range values {
		var m string
		if names != nil {
			m = names[i]
		} else {
			m = sanitizeMember(fmt.Sprint(v))
		}
		m = disambiguate(m, used)
		used[m] = struct{}{}
		members[i] = m
	}

	// Value-signature dedup comes before any new declaration is created.
	sig := enumSignature(values)
	if existing, ok := reg.enumIndex[sig]; ok {
		d, _ := reg.Lookup(existing)
		return d, nil
	}
	if d, ok := reg.Lookup(name); ok {
		return d, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "export enum %s {\n", name)
	for i := range members {
		fmt.Fprintf(&b, "  %s = %s,\n", members[i], lits[i])
	}
	b.WriteString("}")

	d := Declaration{Name: name, Kind: DeclEnum, Body: b.String()}
	reg.MarkSeen(name)
	reg.enumIndex[sig] = name
	reg.Add(d)
	return d, nil
}

// validMemberNames accepts a caller-supplied name list only when it matches
// the value count, every entry is a valid identifier, and all entries are
// pairwise distinct.
func validMemberNames(names []string, count int) bool {
	if len(names) == 0 || len(names) != count {
		return false
	}
	seen := map[string]struct{}{}
	for _, n := range names {
		if !identRe.MatchString(n) {
			return false
		}
		if _, dup := seen[n]; dup {
			return false
		}
		seen[n] = struct{}{}
	}
	return true
}

// sanitizeMember derives a safe member identifier from a literal value.
func sanitizeMember(s string) string {
	s = nonIdentRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return placeholderMember
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}

func disambiguate(m string, used map[string]struct{}) string {
	if _, taken := used[m]; !taken {
		return m
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", m, i)
		if _, taken := used[candidate]; !taken {
			return candidate
		}
	}
}

// enumSignature computes the order-normalized dedup key for a value set.
// Parts are quoted before joining so a value containing the separator cannot
// encode to the same key as a split value set.
func enumSignature(values []any) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Quote(fmt.Sprint(v)))
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

func renderEnumLiteral(v any) string {
	switch t := v.(type) {
	case bool:
		return strconv.FormatBool(t)
	case string:
		return "'" + escapeString(t) + "'"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		// Integers and json.Number print as-is.
		return fmt.Sprint(t)
	}
}

func escapeString(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return r.Replace(s)
}
