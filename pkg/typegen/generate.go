package typegen

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/apiforge/tsgen/pkg/utils"
)

// OperationInfo records, per operation, the declaration names assigned during
// synthesis. Route and controller generation consume it.
type OperationInfo struct {
	Method string
	Path   string
	Tag    string
	// Name is the PascalCase operation name derived from the operationId, or
	// from method and path when no operationId is present.
	Name            string
	PathParamsType  string
	QueryParamsType string
	RequestType     string
	ResponseType    string
}

// Result is the output of one generation run.
type Result struct {
	// Declarations in discovery order, with DependsOn filled in.
	Declarations []Declaration
	// Files holds one file per declaration plus the index file.
	Files []File
	// ParamTypes maps parameter-shape signatures to the reusable declaration
	// name assigned to each shape.
	ParamTypes map[string]string
	Operations []OperationInfo
}

// Options configures a generation run.
type Options struct {
	// Logger receives non-fatal import inference warnings. Defaults to a nop
	// logger.
	Logger *zap.Logger
}

var methodOrder = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD", "TRACE"}

// Generate performs one full synthesis pass over the document. Paths are
// visited in sorted order, methods in a fixed order, and within an operation
// path params, query params, request body, and response body are processed in
// that order, so repeated runs produce byte-identical output. Structural
// errors (unresolved references, invalid enum values) abort the pass.
func Generate(doc *openapi3.T, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	reg := NewRegistry()
	syn := NewSynthesizer(doc, reg)

	var ops []OperationInfo
	if doc.Paths != nil {
		pathMap := doc.Paths.Map()
		paths := make([]string, 0, len(pathMap))
		for p := range pathMap {
			paths = append(paths, p)
		}
		sort.Strings(paths)

		for _, p := range paths {
			item := pathMap[p]
			if item == nil {
				continue
			}
			for _, method := range methodOrder {
				op := item.GetOperation(method)
				if op == nil {
					continue
				}
				info, err := synthesizeOperation(syn, reg, op, method, p)
				if err != nil {
					return nil, errors.Wrapf(err, "%s %s", method, p)
				}
				ops = append(ops, info)
			}
		}
	}

	annotated, files := NewEmitter(log).Emit(reg.Declarations())
	return &Result{
		Declarations: annotated,
		Files:        files,
		ParamTypes:   reg.ParamTypes(),
		Operations:   ops,
	}, nil
}

func synthesizeOperation(syn *Synthesizer, reg *Registry, op *openapi3.Operation, method, path string) (OperationInfo, error) {
	name := operationName(op, method, path)
	tag := "misc"
	if len(op.Tags) > 0 {
		tag = op.Tags[0]
	}
	info := OperationInfo{Method: method, Path: path, Tag: tag, Name: name}

	pathParams, err := paramSet(syn, op, name, openapi3.ParameterInPath)
	if err != nil {
		return info, err
	}
	if len(pathParams) > 0 {
		info.PathParamsType = ReusableParamType(reg, pathParams, CategoryPath, name+"PathParams")
	}

	queryParams, err := paramSet(syn, op, name, openapi3.ParameterInQuery)
	if err != nil {
		return info, err
	}
	if len(queryParams) > 0 {
		info.QueryParamsType = ReusableParamType(reg, queryParams, CategoryQuery, name+"QueryParams")
	}

	if rb := op.RequestBody; rb != nil && rb.Value != nil {
		if media := rb.Value.Content.Get("application/json"); media != nil && media.Schema != nil {
			t, err := syn.TypeRef(media.Schema, name+"Request", false)
			if err != nil {
				return info, err
			}
			info.RequestType = t
		}
	}

	if schema := successResponseSchema(op); schema != nil {
		t, err := syn.TypeRef(schema, name+"Response", false)
		if err != nil {
			return info, err
		}
		info.ResponseType = t
	}

	return info, nil
}

// paramSet collects an operation's parameters of one location into a
// ParameterSet, marking optional query parameters with a "?" key suffix.
func paramSet(syn *Synthesizer, op *openapi3.Operation, opName, in string) (ParameterSet, error) {
	set := ParameterSet{}
	for _, pr := range op.Parameters {
		if pr == nil || pr.Value == nil || pr.Value.In != in {
			continue
		}
		p := pr.Value
		t, err := syn.TypeRef(p.Schema, opName+utils.ToPascalCase(p.Name), true)
		if err != nil {
			return nil, err
		}
		key := p.Name
		if !p.Required && in == openapi3.ParameterInQuery {
			key += "?"
		}
		set[key] = t
	}
	return set, nil
}

func operationName(op *openapi3.Operation, method, path string) string {
	if op.OperationID != "" {
		return utils.ToPascalCase(op.OperationID)
	}
	return utils.ToPascalCase(strings.ToLower(method) + " " + path)
}

// successResponseSchema picks the schema of the first success response: 200,
// then 201, then any other 2xx except 204, preferring application/json
// content.
func successResponseSchema(op *openapi3.Operation) *openapi3.SchemaRef {
	if op.Responses == nil {
		return nil
	}
	m := op.Responses.Map()
	for _, code := range []string{"200", "201"} {
		if rr, ok := m[code]; ok && rr != nil && rr.Value != nil {
			if s := responseContentSchema(rr.Value); s != nil {
				return s
			}
		}
	}
	codes := make([]string, 0, len(m))
	for c := range m {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	for _, c := range codes {
		if len(c) != 3 || c[0] != '2' || c == "204" {
			continue
		}
		if rr := m[c]; rr != nil && rr.Value != nil {
			if s := responseContentSchema(rr.Value); s != nil {
				return s
			}
		}
	}
	return nil
}

func responseContentSchema(r *openapi3.Response) *openapi3.SchemaRef {
	if media := r.Content.Get("application/json"); media != nil && media.Schema != nil {
		return media.Schema
	}
	cts := make([]string, 0, len(r.Content))
	for ct := range r.Content {
		cts = append(cts, ct)
	}
	sort.Strings(cts)
	for _, ct := range cts {
		if media := r.Content[ct]; media != nil && media.Schema != nil {
			return media.Schema
		}
	}
	return nil
}
