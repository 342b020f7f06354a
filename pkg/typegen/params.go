package typegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/apiforge/tsgen/pkg/utils"
)

// ParameterSet maps a parameter name to its rendered type reference. Optional
// parameters carry a trailing "?" on the key.
type ParameterSet map[string]string

// Parameter categories used in reusable parameter type names.
const (
	CategoryPath  = "Path"
	CategoryQuery = "Query"
)

// maxJoinedParams caps how many parameter names are concatenated into a
// reusable type name before falling back to the operation-derived name.
const maxJoinedParams = 3

// ParamSignature computes the canonical dedup key for a parameter shape:
// sorted key:type pairs, independent of call site. Keys and types are quoted
// before joining so names containing the separators cannot alias another
// shape's key.
func ParamSignature(params ParameterSet) string {
	keys := sortedParamKeys(params)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, strconv.Quote(k)+":"+strconv.Quote(params[k]))
	}
	return strings.Join(parts, ";")
}

// ReusableParamType returns the declaration name for a parameter shape,
// materializing the backing declaration on first use. Identical shapes share
// one declaration across unrelated operations. Shapes with more than
// maxJoinedParams parameters take the caller-supplied fallback name instead
// of an unreadable concatenation.
func ReusableParamType(reg *Registry, params ParameterSet, category, fallbackName string) string {
	if len(params) == 0 {
		return ""
	}
	sig := ParamSignature(params)
	if name, ok := reg.paramIndex[sig]; ok {
		return name
	}

	keys := sortedParamKeys(params)
	var name string
	switch {
	case len(keys) == 1:
		name = utils.ToPascalCase(strings.TrimSuffix(keys[0], "?")) + category + "Params"
	case len(keys) <= maxJoinedParams:
		var b strings.Builder
		for _, k := range keys {
			b.WriteString(utils.ToPascalCase(strings.TrimSuffix(k, "?")))
		}
		name = b.String() + category + "Params"
	default:
		name = fallbackName
	}
	// A new shape must never reuse an already claimed name.
	name = uniqueName(reg, name)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		prop := strings.TrimSuffix(k, "?")
		opt := ""
		if strings.HasSuffix(k, "?") {
			opt = "?"
		}
		lines = append(lines, fmt.Sprintf("  %s%s: %s;", quotePropName(prop), opt, params[k]))
	}

	reg.MarkSeen(name)
	reg.paramIndex[sig] = name
	reg.Add(Declaration{
		Name: name,
		Kind: DeclInterface,
		Body: fmt.Sprintf("export interface %s {\n%s\n}", name, strings.Join(lines, "\n")),
	})
	return name
}

func sortedParamKeys(params ParameterSet) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func uniqueName(reg *Registry, name string) string {
	if !reg.Seen(name) {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", name, i)
		if !reg.Seen(candidate) {
			return candidate
		}
	}
}
