package literal

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseStringList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "[]", []string{}},
		{"empty with spaces", "  [ ]  ", []string{}},
		{"single quoted", "['salt', 'pepper']", []string{"salt", "pepper"}},
		{"double quoted apostrophe", `["baker's yeast", 'flour']`, []string{"baker's yeast", "flour"}},
		{"escaped quote", `['baker\'s yeast']`, []string{"baker's yeast"}},
		{"escapes", `['a\\b', 'tab\there', 'line\nbreak', 'é']`, []string{`a\b`, "tab\there", "line\nbreak", "é"}},
		{"trailing comma", "['a', 'b',]", []string{"a", "b"}},
		{"multiline", "[\n  'a',\n  'b'\n]", []string{"a", "b"}},
		{"brackets inside string", "['[x]', 'a, b']", []string{"[x]", "a, b"}},
		{"unicode", "['jalapeño', 'crème fraîche']", []string{"jalapeño", "crème fraîche"}},
		{"hex escape", `['a\xa0b']`, []string{"a\u00a0b"}},
		{"hex escape in list", `['jalape\xf1o', 'salt']`, []string{"jalapeño", "salt"}},
		{"hex escape uppercase", `['\x4A']`, []string{"J"}},
		{"short unicode escape", `['caf\u00e9']`, []string{"café"}},
		{"long unicode escape", `['x\U0001f600']`, []string{"x\U0001F600"}},
		{"control escapes", `['\a\b\f\v']`, []string{"\a\b\f\v"}},
		{"octal escapes", `['\0', '\101', '\1012', '\08']`, []string{"\x00", "A", "A2", "\x008"}},
		{"line continuation", "['a\\\nb']", []string{"ab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringList(tt.in)
			if err != nil {
				t.Fatalf("ParseStringList(%q): %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseStringList(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseStringList_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty input", ""},
		{"not a list", "'salt'"},
		{"code", "__import__('os').system('rm -rf /')"},
		{"call in list", "[open('x')]"},
		{"number", "[1, 2]"},
		{"nested", "[['a']]"},
		{"unterminated list", "['a', 'b'"},
		{"unterminated string", "['a]"},
		{"missing comma", "['a' 'b']"},
		{"double comma", "['a',, 'b']"},
		{"leading comma", "[, 'a']"},
		{"trailing input", "['a'] + ['b']"},
		{"unknown escape", `['\q']`},
		{"named escape", `['\N{BULLET}']`},
		{"short hex escape", `['\x4']`},
		{"non-hex digits", `['\xg1']`},
		{"signed hex", `['\u+0e9']`},
		{"truncated long escape", `['\U0001f6']`},
		{"code point out of range", `['\U00110000']`},
		{"surrogate", `['\ud83d']`},
		{"long surrogate", `['\U0000dc00']`},
		{"escape at end", `['a\`},
		{"concatenation", "['a' + 'b']"},
		{"newline in string", "['a\nb']"},
		{"invalid utf8", "['\xff']"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStringList(tt.in)
			if err == nil {
				t.Fatalf("ParseStringList(%q) should fail", tt.in)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("error should wrap ErrSyntax: %v", err)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Errorf("error should be a *SyntaxError: %T", err)
			}
		})
	}
}
