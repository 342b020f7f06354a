package typegen

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Resolve walks a local schema pointer (e.g. "#/components/schemas/User")
// segment by segment and returns the schema it designates. It is pure and
// safe to call repeatedly; a missing segment yields UnresolvedReferenceError.
func Resolve(pointer string, doc *openapi3.T) (*openapi3.SchemaRef, error) {
	segs := splitPointer(pointer)
	if len(segs) != 3 || segs[0] != "components" || segs[1] != "schemas" {
		return nil, &UnresolvedReferenceError{Pointer: pointer}
	}
	if doc == nil || doc.Components == nil || doc.Components.Schemas == nil {
		return nil, &UnresolvedReferenceError{Pointer: pointer}
	}
	sr, ok := doc.Components.Schemas[segs[2]]
	if !ok || sr == nil {
		return nil, &UnresolvedReferenceError{Pointer: pointer}
	}
	return sr, nil
}

// NameFromPointer extracts the terminal segment of a pointer as the canonical
// type name.
func NameFromPointer(pointer string) (string, error) {
	segs := splitPointer(pointer)
	if len(segs) == 0 {
		return "", &MalformedReferenceError{Pointer: pointer}
	}
	name := segs[len(segs)-1]
	if name == "" {
		return "", &MalformedReferenceError{Pointer: pointer}
	}
	return name, nil
}

func splitPointer(pointer string) []string {
	p := strings.TrimPrefix(pointer, "#")
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
