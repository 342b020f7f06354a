package typegen

import "fmt"

// UnresolvedReferenceError indicates a $ref pointer that does not resolve
// inside the loaded document. The run cannot continue without the target.
type UnresolvedReferenceError struct {
	Pointer string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved reference %q", e.Pointer)
}

// MalformedReferenceError indicates a $ref pointer with no extractable
// terminal type name.
type MalformedReferenceError struct {
	Pointer string
}

func (e *MalformedReferenceError) Error() string {
	return fmt.Sprintf("malformed reference %q: no terminal segment", e.Pointer)
}

// InvalidEnumValueError indicates an enumeration member that cannot be
// rendered (a null value). Decl and Index point at the offending member so
// the source schema can be fixed.
type InvalidEnumValueError struct {
	Decl  string
	Index int
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("enum %s: value at index %d is null", e.Decl, e.Index)
}
