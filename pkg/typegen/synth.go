package typegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/apiforge/tsgen/pkg/utils"
)

// openMapType renders object schemas with no declared properties.
const openMapType = "Record<string, unknown>"

// Synthesizer converts schema nodes into TypeScript type references,
// materializing a named declaration through the registry for every inline
// object, array item, and enum shape it encounters.
//
// Objects are deduplicated by derived name only, never by structural
// signature: two same-shaped objects at different paths are distinct
// request/response shapes. Enums additionally collapse by value signature.
type Synthesizer struct {
	doc *openapi3.T
	reg *Registry
}

// NewSynthesizer creates a synthesizer over one document and one run registry.
func NewSynthesizer(doc *openapi3.T, reg *Registry) *Synthesizer {
	return &Synthesizer{doc: doc, reg: reg}
}

// TypeRef returns the type reference for a schema node. pathName carries the
// synthetic name context for inline shapes; nested marks nodes reached
// through a property or array item rather than as a named top-level schema.
func (s *Synthesizer) TypeRef(sr *openapi3.SchemaRef, pathName string, nested bool) (string, error) {
	if sr == nil {
		return "unknown", nil
	}
	if sr.Ref != "" {
		return s.refType(sr.Ref)
	}
	if sr.Value == nil {
		return "unknown", nil
	}
	v := sr.Value

	if len(v.Enum) > 0 {
		d, err := SynthesizeEnum(s.reg, pathName, v.Enum, enumMemberNames(v))
		if err != nil {
			return "", err
		}
		return d.Name, nil
	}

	if v.Type != nil {
		switch {
		case v.Type.Is(openapi3.TypeArray):
			return s.arrayType(v, pathName)
		case v.Type.Is(openapi3.TypeObject):
			return s.objectType(v, pathName, nested)
		}
	}
	return primitiveType(v), nil
}

// refType resolves a pointer and materializes a declaration for its target
// under the canonical pointer name.
func (s *Synthesizer) refType(pointer string) (string, error) {
	name, err := NameFromPointer(pointer)
	if err != nil {
		return "", err
	}
	target, err := Resolve(pointer, s.doc)
	if err != nil {
		return "", err
	}

	// Referenced enums go through the value-signature index so identical
	// value sets share a declaration regardless of how they are reached.
	if target.Value != nil && len(target.Value.Enum) > 0 {
		d, err := SynthesizeEnum(s.reg, name, target.Value.Enum, enumMemberNames(target.Value))
		if err != nil {
			return "", err
		}
		return d.Name, nil
	}

	if s.reg.Seen(name) {
		return name, nil
	}
	// Claim the name before recursing into properties so a back-edge in a
	// reference cycle resolves to the name instead of re-entering synthesis.
	s.reg.MarkSeen(name)
	if err := s.declareNamed(name, target); err != nil {
		return "", err
	}
	return name, nil
}

// declareNamed materializes the declaration for a named top-level schema.
func (s *Synthesizer) declareNamed(name string, sr *openapi3.SchemaRef) error {
	if sr.Ref != "" {
		rhs, err := s.refType(sr.Ref)
		if err != nil {
			return err
		}
		s.addAlias(name, rhs)
		return nil
	}
	v := sr.Value
	if v == nil {
		s.addAlias(name, "unknown")
		return nil
	}
	switch {
	case v.Type != nil && v.Type.Is(openapi3.TypeObject) && len(v.Properties) > 0:
		return s.declareInterface(name, v)
	case v.Type != nil && v.Type.Is(openapi3.TypeArray):
		rhs, err := s.arrayType(v, name)
		if err != nil {
			return err
		}
		s.addAlias(name, rhs)
	case v.Type != nil && v.Type.Is(openapi3.TypeObject):
		s.addAlias(name, openMapType)
	default:
		s.addAlias(name, primitiveType(v))
	}
	return nil
}

func (s *Synthesizer) addAlias(name, rhs string) {
	s.reg.Add(Declaration{
		Name: name,
		Kind: DeclAlias,
		Body: fmt.Sprintf("export type %s = %s;", name, rhs),
	})
}

// arrayType renders an array schema, naming inline object items
// {pathName}Item and inline enum items {pathName}.
func (s *Synthesizer) arrayType(v *openapi3.Schema, pathName string) (string, error) {
	items := v.Items
	if items == nil {
		return "unknown[]", nil
	}
	if items.Ref != "" {
		elem, err := s.refType(items.Ref)
		if err != nil {
			return "", err
		}
		return elem + "[]", nil
	}
	iv := items.Value
	if iv == nil {
		return "unknown[]", nil
	}
	if len(iv.Enum) > 0 {
		d, err := SynthesizeEnum(s.reg, pathName, iv.Enum, enumMemberNames(iv))
		if err != nil {
			return "", err
		}
		return d.Name + "[]", nil
	}
	if iv.Type != nil {
		switch {
		case iv.Type.Is(openapi3.TypeObject) && len(iv.Properties) > 0:
			itemName := pathName + "Item"
			if !s.reg.Seen(itemName) {
				s.reg.MarkSeen(itemName)
				if err := s.declareInterface(itemName, iv); err != nil {
					return "", err
				}
			}
			return itemName + "[]", nil
		case iv.Type.Is(openapi3.TypeObject):
			return openMapType + "[]", nil
		case iv.Type.Is(openapi3.TypeArray):
			elem, err := s.arrayType(iv, pathName)
			if err != nil {
				return "", err
			}
			return elem + "[]", nil
		}
	}
	return primitiveType(iv) + "[]", nil
}

// objectType renders an inline object schema. Open shapes stay a generic map
// with no declaration; shapes with properties become a named interface.
func (s *Synthesizer) objectType(v *openapi3.Schema, pathName string, nested bool) (string, error) {
	if len(v.Properties) == 0 {
		return openMapType, nil
	}
	name := pathName
	if nested {
		name += "Item"
	}
	if !s.reg.Seen(name) {
		s.reg.MarkSeen(name)
		if err := s.declareInterface(name, v); err != nil {
			return "", err
		}
	}
	return name, nil
}

// declareInterface renders an object schema as an interface declaration,
// recursing into each property with the name context extended by the
// PascalCase property name.
func (s *Synthesizer) declareInterface(name string, v *openapi3.Schema) error {
	propNames := make([]string, 0, len(v.Properties))
	for pn := range v.Properties {
		propNames = append(propNames, pn)
	}
	sort.Strings(propNames)

	lines := make([]string, 0, len(propNames))
	for _, pn := range propNames {
		pt, err := s.TypeRef(v.Properties[pn], name+utils.ToPascalCase(pn), true)
		if err != nil {
			return err
		}
		opt := "?"
		if isRequired(v, pn) {
			opt = ""
		}
		lines = append(lines, fmt.Sprintf("  %s%s: %s;", quotePropName(pn), opt, pt))
	}

	s.reg.Add(Declaration{
		Name: name,
		Kind: DeclInterface,
		Body: fmt.Sprintf("export interface %s {\n%s\n}", name, strings.Join(lines, "\n")),
	})
	return nil
}

func isRequired(v *openapi3.Schema, prop string) bool {
	for _, r := range v.Required {
		if r == prop {
			return true
		}
	}
	return false
}

func primitiveType(v *openapi3.Schema) string {
	if v.Type != nil {
		switch {
		case v.Type.Is(openapi3.TypeString):
			return "string"
		case v.Type.Is(openapi3.TypeInteger), v.Type.Is(openapi3.TypeNumber):
			return "number"
		case v.Type.Is(openapi3.TypeBoolean):
			return "boolean"
		}
	}
	return "unknown"
}

// enumMemberNames extracts caller-supplied member identifiers from the
// x-enum-varnames / x-enumNames schema extensions.
func enumMemberNames(v *openapi3.Schema) []string {
	for _, key := range []string{"x-enum-varnames", "x-enumNames"} {
		raw, ok := v.Extensions[key]
		if !ok {
			continue
		}
		switch t := raw.(type) {
		case []string:
			return t
		case []any:
			out := make([]string, 0, len(t))
			for _, e := range t {
				str, ok := e.(string)
				if !ok {
					return nil
				}
				out = append(out, str)
			}
			return out
		}
	}
	return nil
}

// quotePropName quotes property names that are not plain identifiers.
func quotePropName(name string) string {
	needsQuoting := len(name) == 0 || (name[0] >= '0' && name[0] <= '9')
	for _, char := range name {
		if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '_' || char == '$') {
			needsQuoting = true
			break
		}
	}
	if needsQuoting {
		return `"` + name + `"`
	}
	return name
}
