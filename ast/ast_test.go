package ast

import (
	"reflect"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/idkc/types"
)

func TestSymbolTable(t *testing.T) {
	s := NewSymbolTable()

	if _, ok := s.Lookup("a"); ok {
		t.Fatal("empty table found a name")
	}

	a := Assignment{Type: Int, Name: "a", Value: IntLit{1}}
	b := Assignment{Type: Float, Name: "b", Value: FloatLit{2.5}}
	if s.Insert("a", a) {
		t.Error("first insert reported a replacement")
	}
	s.Insert("b", b)

	got, ok := s.Lookup("a")
	if !ok || !reflect.DeepEqual(got, a) {
		t.Errorf("lookup a = %s, %v", repr.String(got), ok)
	}

	a2 := Assignment{Type: Int, Name: "a", Value: IntLit{3}}
	if !s.Insert("a", a2) {
		t.Error("second insert of a was not reported as a replacement")
	}
	got, _ = s.Lookup("a")
	if !reflect.DeepEqual(got, a2) {
		t.Errorf("last write should win, got %s", repr.String(got))
	}

	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}
	if names := s.Names(); !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Errorf("names = %v", names)
	}
}

func TestNilSymbolTable(t *testing.T) {
	var s *SymbolTable
	if _, ok := s.Lookup("x"); ok {
		t.Error("nil table found a name")
	}
	if s.Len() != 0 || s.Names() != nil {
		t.Error("nil table is not empty")
	}
}

func TestClone(t *testing.T) {
	orig := BinaryExpr{
		Left: IntLit{1},
		Op:   types.PLUS,
		Right: BinaryExpr{
			Left:  FloatLit{2},
			Op:    types.STAR,
			Right: IntLit{3},
		},
	}
	c := Clone(orig)
	if !reflect.DeepEqual(c, orig) {
		t.Errorf("clone differs: %s", repr.String(c))
	}
}

func TestString(t *testing.T) {
	ret := Int
	tests := []struct {
		in   interface{ String() string }
		want string
	}{
		{BinaryExpr{IntLit{1}, types.PLUS, BinaryExpr{IntLit{2}, types.STAR, IntLit{3}}}, "(1 + (2 * 3))"},
		{Assignment{Type: Float, Name: "x", Value: FloatLit{2.5}}, "float x = 2.5;"},
		{Assignment{Type: String, Name: "s", Value: StringLit{"hi"}}, `string s = "hi";`},
		{Function{Name: "f", Parameters: []Parameter{{Int, "a"}, {Bool, "b"}}, Returns: &ret}, "fn f(int a, bool b): int"},
		{Function{Name: "g"}, "fn g()"},
	}

	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}
