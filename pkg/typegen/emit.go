package typegen

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/apiforge/tsgen/pkg/utils"
)

// File is a named output unit produced by the emitter.
type File struct {
	Name    string
	Content string
}

// typeTokenRe matches candidate type-name tokens in property type positions
// and alias right-hand sides.
var typeTokenRe = regexp.MustCompile(`[:=]\s*([A-Za-z_][A-Za-z0-9_\[\]]*)`)

// Emitter assembles one file per declaration plus an index, inferring imports
// lexically from the rendered bodies. Inference is best effort: an ambiguous
// token is logged and skipped, never fatal.
type Emitter struct {
	log *zap.Logger
}

// NewEmitter creates an emitter. A nil logger falls back to a nop logger.
func NewEmitter(log *zap.Logger) *Emitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Emitter{log: log}
}

// Emit returns the per-declaration files in declaration order, followed by an
// index file re-exporting every declaration name in sorted order. The
// returned declarations carry the inferred DependsOn sets.
func (e *Emitter) Emit(decls []Declaration) ([]Declaration, []File) {
	known := make(map[string]struct{}, len(decls))
	for _, d := range decls {
		known[d.Name] = struct{}{}
	}

	out := make([]Declaration, len(decls))
	files := make([]File, 0, len(decls)+1)
	for i, d := range decls {
		d.DependsOn = e.dependencies(d, known)
		out[i] = d

		var b strings.Builder
		for _, dep := range d.DependsOn {
			fmt.Fprintf(&b, "import { %s } from './%s';\n", dep, utils.ToKebabCase(dep))
		}
		if len(d.DependsOn) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(d.Body)
		b.WriteString("\n")
		files = append(files, File{Name: utils.ToKebabCase(d.Name) + ".ts", Content: b.String()})
	}

	names := make([]string, 0, len(decls))
	for _, d := range decls {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	var idx strings.Builder
	for _, n := range names {
		fmt.Fprintf(&idx, "export { %s } from './%s';\n", n, utils.ToKebabCase(n))
	}
	files = append(files, File{Name: "index.ts", Content: idx.String()})

	return out, files
}

// dependencies scans a declaration body for type-name tokens that are known
// declaration names, excluding the declaration itself. Enum bodies hold only
// literal member values and reference nothing.
func (e *Emitter) dependencies(d Declaration, known map[string]struct{}) []string {
	if d.Kind == DeclEnum {
		return nil
	}
	deps := map[string]struct{}{}
	for _, m := range typeTokenRe.FindAllStringSubmatch(d.Body, -1) {
		tok := m[1]
		base := tok
		for strings.HasSuffix(base, "[]") {
			base = strings.TrimSuffix(base, "[]")
		}
		if strings.ContainsAny(base, "[]") {
			e.log.Warn("skipping ambiguous type token during import inference",
				zap.String("declaration", d.Name),
				zap.String("token", tok))
			continue
		}
		if base == d.Name {
			continue
		}
		if _, ok := known[base]; !ok {
			continue
		}
		deps[base] = struct{}{}
	}
	if len(deps) == 0 {
		return nil
	}
	result := make([]string, 0, len(deps))
	for dep := range deps {
		result = append(result, dep)
	}
	sort.Strings(result)
	return result
}
