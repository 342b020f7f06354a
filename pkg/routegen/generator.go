// Package routegen renders route and controller boilerplate for the
// synthesized operations, wiring in middleware chains chosen by the
// middleware-selection policy.
package routegen

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/cockroachdb/errors"

	"github.com/apiforge/tsgen/pkg/policy"
	"github.com/apiforge/tsgen/pkg/typegen"
	"github.com/apiforge/tsgen/pkg/utils"
)

//go:embed templates/*
var templatesFS embed.FS

// Operation is one routed operation with its resolved type names and
// middleware chain.
type Operation struct {
	Method          string
	Path            string
	Name            string
	PathParamsType  string
	QueryParamsType string
	RequestType     string
	ResponseType    string
	Middlewares     []string
}

// Group holds the operations of one tag, rendered into one controller.
type Group struct {
	Tag        string
	Operations []Operation
}

// Generator renders controllers and a route table.
type Generator struct {
	policy *policy.Policy
}

// New creates a generator. pol may be nil, in which case no middleware is
// attached.
func New(pol *policy.Policy) *Generator {
	return &Generator{policy: pol}
}

// GroupOperations buckets synthesized operations by tag in sorted tag order,
// attaching the middleware chain the policy selects for each operation.
func (g *Generator) GroupOperations(ops []typegen.OperationInfo) []Group {
	byTag := map[string][]Operation{}
	for _, op := range ops {
		byTag[op.Tag] = append(byTag[op.Tag], Operation{
			Method:          op.Method,
			Path:            op.Path,
			Name:            op.Name,
			PathParamsType:  op.PathParamsType,
			QueryParamsType: op.QueryParamsType,
			RequestType:     op.RequestType,
			ResponseType:    op.ResponseType,
			Middlewares:     g.policy.Select(op.Method, op.Path),
		})
	}
	tags := make([]string, 0, len(byTag))
	for t := range byTag {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	groups := make([]Group, 0, len(tags))
	for _, t := range tags {
		groups = append(groups, Group{Tag: t, Operations: byTag[t]})
	}
	return groups
}

// Generate renders one controller file per group plus the route table.
func (g *Generator) Generate(groups []Group) ([]typegen.File, error) {
	funcMap := template.FuncMap{
		"pascal":      utils.ToPascalCase,
		"camel":       utils.ToCamelCase,
		"kebab":       utils.ToKebabCase,
		"expressPath": expressPath,
		"reqGenerics": reqGenerics,
		"typeImports": typeImports,
	}
	for k, v := range sprig.FuncMap() {
		if _, ok := funcMap[k]; !ok {
			funcMap[k] = v
		}
	}

	files := make([]typegen.File, 0, len(groups)+1)
	for _, grp := range groups {
		content, err := render("controller.ts.gotmpl", funcMap, grp)
		if err != nil {
			return nil, errors.Wrapf(err, "controller for tag %s", grp.Tag)
		}
		files = append(files, typegen.File{
			Name:    utils.ToKebabCase(grp.Tag) + ".controller.ts",
			Content: content,
		})
	}

	content, err := render("routes.ts.gotmpl", funcMap, map[string]any{"Groups": groups})
	if err != nil {
		return nil, errors.Wrap(err, "route table")
	}
	files = append(files, typegen.File{Name: "routes.ts", Content: content})
	return files, nil
}

func render(name string, funcMap template.FuncMap, data any) (string, error) {
	raw, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", name, err)
	}
	tmpl, err := template.New(name).Funcs(funcMap).Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

// expressPath converts an OpenAPI path template to Express parameter syntax,
// e.g. /users/{id} -> /users/:id.
func expressPath(p string) string {
	var b strings.Builder
	for i := 0; i < len(p); i++ {
		if p[i] == '{' {
			j := i + 1
			for j < len(p) && p[j] != '}' {
				j++
			}
			if j < len(p) {
				b.WriteByte(':')
				b.WriteString(p[i+1 : j])
				i = j
				continue
			}
		}
		b.WriteByte(p[i])
	}
	return b.String()
}

// reqGenerics builds the Request<> generic argument list for an operation, or
// an empty string when nothing is typed.
func reqGenerics(op Operation) string {
	pathT := orUnknown(op.PathParamsType)
	reqT := orUnknown(op.RequestType)
	queryT := orUnknown(op.QueryParamsType)
	if pathT == "unknown" && reqT == "unknown" && queryT == "unknown" {
		return ""
	}
	return fmt.Sprintf("<%s, unknown, %s, %s>", pathT, reqT, queryT)
}

func orUnknown(t string) string {
	if t == "" {
		return "unknown"
	}
	return t
}

// typeImports collects the declaration names a controller references, for
// importing from the generated types index.
func typeImports(grp Group) []string {
	set := map[string]struct{}{}
	add := func(t string) {
		for strings.HasSuffix(t, "[]") {
			t = strings.TrimSuffix(t, "[]")
		}
		switch t {
		case "", "unknown", "string", "number", "boolean":
			return
		}
		if strings.ContainsAny(t, "<>{}, ") {
			return
		}
		set[t] = struct{}{}
	}
	for _, op := range grp.Operations {
		add(op.PathParamsType)
		add(op.QueryParamsType)
		add(op.RequestType)
		add(op.ResponseType)
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
