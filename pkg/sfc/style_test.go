package sfc

import (
	"strings"
	"testing"

	"github.com/hellenic-development/figma-vuegen/pkg/codefile"
)

func TestIsObjectLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"single line object", "{ color: 'red' }", true},
		{"multi line object", "{\n  color: 'red',\n}", true},
		{"empty object", "{}", true},
		{"plain statement", "const a = 1", false},
		{"object assigned to variable", "const s = { color: 'red' }", false},
		{"open brace only", "{ color: 'red'", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsObjectLiteral(tt.in); got != tt.want {
				t.Errorf("IsObjectLiteral(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsDeclarationBlock(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{
			name: "bare declarations",
			code: "background-color: #FFFFFF;\npadding: 8px 16px;\n",
			want: true,
		},
		{
			name: "declarations without semicolons",
			code: "color: red\nfont-size: 14px\n",
			want: true,
		},
		{
			name: "blank lines between declarations",
			code: "color: red;\n\npadding: 4px;\n",
			want: true,
		},
		{
			name: "vendor prefixed property",
			code: "-webkit-box-shadow: none;\n",
			want: true,
		},
		{
			name: "selector block",
			code: ".card {\n  color: red;\n}\n",
			want: false,
		},
		{
			name: "mixed declaration and comment",
			code: "color: red;\n/* note */\n",
			want: false,
		},
		{
			name: "custom property",
			code: "--brand: #123456;\n",
			want: false,
		},
		{
			name: "empty",
			code: "",
			want: false,
		},
		{
			name: "only blank lines",
			code: "\n  \n",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDeclarationBlock(tt.code); got != tt.want {
				t.Errorf("isDeclarationBlock(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestDeclarationsToObject(t *testing.T) {
	sections := []codefile.Section{
		{Lang: "css", Code: "background-color: #FFFFFF;\nborder-radius: 8px;\n"},
		{Lang: "css", Code: "-webkit-line-clamp: 2;\nfont-family: 'Inter', sans-serif;\n"},
	}

	got := declarationsToObject(sections)

	wantEntries := []string{
		"backgroundColor: '#FFFFFF',",
		"borderRadius: '8px',",
		"WebkitLineClamp: '2',",
		`fontFamily: '\'Inter\', sans-serif',`,
	}
	for _, entry := range wantEntries {
		if !strings.Contains(got, entry) {
			t.Errorf("object missing entry %q:\n%s", entry, got)
		}
	}
	if !strings.HasPrefix(got, "{\n") || !strings.HasSuffix(got, "}") {
		t.Errorf("object not brace wrapped:\n%s", got)
	}
}

func TestCamelCaseProperty(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"color", "color"},
		{"background-color", "backgroundColor"},
		{"border-top-left-radius", "borderTopLeftRadius"},
		{"-webkit-box", "WebkitBox"},
		{"-moz-user-select", "MozUserSelect"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := camelCaseProperty(tt.in); got != tt.want {
				t.Errorf("camelCaseProperty(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
