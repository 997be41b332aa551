package c

import (
	"strings"
	"testing"

	"github.com/pontaoski/idkc/errors"
	"github.com/pontaoski/idkc/parser"
)

func generate(t *testing.T, src string) (string, error) {
	t.Helper()
	prog, err := parser.ParseSource(src, "test", parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return Generate(prog)
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Function",
			input: "fn name(): int { int a = 12; }",
			want:  "int name() {\n\tint a = 12;\n}\n",
		},
		{
			name:  "Void function with parameters",
			input: "fn f(int a, string s) { float x = 8 / 4 / 2; }",
			want:  "void f(int a, char *s) {\n\tfloat x = 1;\n}\n",
		},
		{
			name:  "Globals",
			input: `int x = 7 / 2; string s = "hi"; bool b = true; float f = 2.5;`,
			want:  "int x = 3;\n\nchar *s = \"hi\";\n\nbool b = true;\n\nfloat f = 2.5;\n",
		},
		{
			name:  "String escapes",
			input: "string s = \"say \ttwo\nlines\\\"; string u = \"\u00e9\";",
			want:  "char *s = \"say \\ttwo\\nlines\\\\\";\n\nchar *u = \"\\303\\251\";\n",
		},
		{
			name:  "Char escapes",
			input: "int b = '\\'; int t = '\t'; int e = '\u00e9'; int a = 'a';",
			want:  "int b = '\\\\';\n\nint t = '\\t';\n\nint e = 233;\n\nint a = 'a';\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := generate(t, tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(out, "#include <stdio.h>\n#include <stdlib.h>\n#include <stdbool.h>\n") {
				t.Errorf("missing prelude:\n%s", out)
			}
			if !strings.HasSuffix(out, tt.want) {
				t.Errorf("got:\n%s\nwant suffix:\n%s", out, tt.want)
			}
		})
	}
}

func TestGenerateRejectsUnfoldable(t *testing.T) {
	_, err := generate(t, `fn f() { string s = "a" + 1; }`)
	if err == nil {
		t.Fatal("expected an error")
	}
	if e, ok := errors.KindOf(err); !ok || e.Kind() != errors.Unsupported {
		t.Errorf("unexpected error %v", err)
	}
}
