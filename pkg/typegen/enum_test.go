package typegen

import (
	"errors"
	"strings"
	"testing"
)

func TestSynthesizeEnumBody(t *testing.T) {
	reg := NewRegistry()
	d, err := SynthesizeEnum(reg, "Color", []any{"RED", "GREEN"}, nil)
	if err != nil {
		t.Fatalf("SynthesizeEnum returned error: %v", err)
	}
	expected := "export enum Color {\n  RED = 'RED',\n  GREEN = 'GREEN',\n}"
	if d.Body != expected {
		t.Errorf("body = %q, expected %q", d.Body, expected)
	}
	if d.Kind != DeclEnum {
		t.Errorf("kind = %q, expected enum", d.Kind)
	}
}

func TestEnumValueSetDedup(t *testing.T) {
	reg := NewRegistry()
	d1, err := SynthesizeEnum(reg, "Color", []any{"RED", "GREEN"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Same value set in a different order must collapse to the first declaration.
	d2, err := SynthesizeEnum(reg, "PaintColor", []any{"GREEN", "RED"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d1.Name != d2.Name {
		t.Errorf("expected both enums to share a declaration, got %q and %q", d1.Name, d2.Name)
	}
	if n := len(reg.Declarations()); n != 1 {
		t.Errorf("expected 1 declaration, got %d", n)
	}
}

func TestEnumValueSetSeparatorNotAmbiguous(t *testing.T) {
	reg := NewRegistry()
	// A single value containing the signature separator must not collapse
	// with the split value set.
	d1, err := SynthesizeEnum(reg, "AB", []any{"a|b"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := SynthesizeEnum(reg, "Letters", []any{"a", "b"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d1.Name == d2.Name {
		t.Errorf("distinct value sets collapsed into %q", d1.Name)
	}
	if n := len(reg.Declarations()); n != 2 {
		t.Errorf("expected 2 declarations, got %d", n)
	}
}

func TestEnumNullValue(t *testing.T) {
	reg := NewRegistry()
	_, err := SynthesizeEnum(reg, "Bad", []any{"a", nil, "b"}, nil)
	var invalid *InvalidEnumValueError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidEnumValueError, got %v", err)
	}
	if invalid.Decl != "Bad" || invalid.Index != 1 {
		t.Errorf("error = %+v, expected Decl=Bad Index=1", invalid)
	}
	if n := len(reg.Declarations()); n != 0 {
		t.Errorf("expected no declarations after failure, got %d", n)
	}
}

func TestEnumMemberNames(t *testing.T) {
	reg := NewRegistry()
	d, err := SynthesizeEnum(reg, "Status", []any{"active", "inactive"}, []string{"Active", "Inactive"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(d.Body, "Active = 'active',") {
		t.Errorf("expected caller-supplied member names in body, got %q", d.Body)
	}
}

func TestEnumMemberNamesAllOrNothing(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{"duplicate entry", []string{"X", "X"}},
		{"length mismatch", []string{"X"}},
		{"invalid identifier", []string{"X", "not valid"}},
	}

	for _, test := range tests {
		reg := NewRegistry()
		d, err := SynthesizeEnum(reg, "Status", []any{"active", "inactive"}, test.names)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		// Every member falls back to a sanitized value-derived name.
		if !strings.Contains(d.Body, "active = 'active',") || !strings.Contains(d.Body, "inactive = 'inactive',") {
			t.Errorf("%s: expected full fallback to sanitized names, got %q", test.name, d.Body)
		}
	}
}

func TestSanitizeMember(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"RED", "RED"},
		{"foo-bar", "foo_bar"},
		{"foo.bar.baz", "foo_bar_baz"},
		{"123", "_123"},
		{"-a-", "a"},
		{"!!!", "Value"},
		{"", "Value"},
	}

	for _, test := range tests {
		result := sanitizeMember(test.input)
		if result != test.expected {
			t.Errorf("sanitizeMember(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestEnumMemberDisambiguation(t *testing.T) {
	reg := NewRegistry()
	// Both values sanitize to the same identifier.
	d, err := SynthesizeEnum(reg, "Weird", []any{"a-b", "a_b"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(d.Body, "a_b = 'a-b',") || !strings.Contains(d.Body, "a_b_1 = 'a_b',") {
		t.Errorf("expected disambiguated members, got %q", d.Body)
	}
}

func TestEnumLiteralRendering(t *testing.T) {
	reg := NewRegistry()
	d, err := SynthesizeEnum(reg, "Mixed", []any{float64(1), float64(2.5), true}, []string{"One", "TwoAndAHalf", "Yes"})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"One = 1,", "TwoAndAHalf = 2.5,", "Yes = true,"} {
		if !strings.Contains(d.Body, want) {
			t.Errorf("body missing %q: %q", want, d.Body)
		}
	}
}

func TestEnumStringEscaping(t *testing.T) {
	reg := NewRegistry()
	d, err := SynthesizeEnum(reg, "Tricky", []any{"it's\na\ttrap\\"}, []string{"Trap"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(d.Body, `Trap = 'it\'s\na\ttrap\\',`) {
		t.Errorf("expected escaped literal, got %q", d.Body)
	}
}
