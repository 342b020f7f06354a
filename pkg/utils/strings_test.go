package utils

import (
	"reflect"
	"testing"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"getUserById", []string{"get", "User", "By", "Id"}},
		{"user_name", []string{"user", "name"}},
		{"user-address-item", []string{"user", "address", "item"}},
		{"HTTPServer", []string{"HTTPServer"}},
		{"v2Endpoint", []string{"v2", "Endpoint"}},
		{"", nil},
		{"   ", nil},
	}

	for _, test := range tests {
		result := SplitWords(test.input)
		if !reflect.DeepEqual(result, test.expected) {
			t.Errorf("SplitWords(%q) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"get user", "GetUser"},
		{"getUserById", "GetUserById"},
		{"get /users/{id}", "GetUsersId"},
		{"café_menu", "CafeMenu"},
		{"", ""},
	}

	for _, test := range tests {
		result := ToPascalCase(test.input)
		if result != test.expected {
			t.Errorf("ToPascalCase(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestToCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"GetUser", "getUser"},
		{"user-address", "userAddress"},
		{"", ""},
	}

	for _, test := range tests {
		result := ToCamelCase(test.input)
		if result != test.expected {
			t.Errorf("ToCamelCase(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestToKebabCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"UserAddressItem", "user-address-item"},
		{"IdPathParams", "id-path-params"},
		{"Color", "color"},
	}

	for _, test := range tests {
		result := ToKebabCase(test.input)
		if result != test.expected {
			t.Errorf("ToKebabCase(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestRemoveAccents(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"café", "cafe"},
		{"über", "uber"},
		{"plain", "plain"},
	}

	for _, test := range tests {
		result := RemoveAccents(test.input)
		if result != test.expected {
			t.Errorf("RemoveAccents(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}
