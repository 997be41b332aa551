package main

import (
	"strings"
	"testing"

	"github.com/alecthomas/participle"
)

func TestGenerateDecls(t *testing.T) {
	parser := participle.MustBuild(&TypeDecls{})

	decls := TypeDecls{}
	src := "type Node =\n\t| Assignment\n\t| Function\n\t;\n"
	if err := parser.ParseString(src, &decls); err != nil {
		t.Fatal(err)
	}
	if len(decls.Declarations) != 1 || len(decls.Declarations[0].Variants) != 2 {
		t.Fatalf("unexpected parse %#v", decls)
	}

	out := GenerateDecls("ast", &decls)
	for _, want := range []string{
		"// Code generated by adtgen. DO NOT EDIT.",
		"package ast",
		"type Node interface {\n\tisNode()\n}",
		"func (v Assignment) isNode() {}",
		"func (v Function) isNode() {}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestValidate(t *testing.T) {
	decls := TypeDecls{Declarations: []*Declaration{
		{Name: "Node", Variants: []string{"A", "A"}},
	}}
	if err := decls.validate(); err == nil {
		t.Error("expected duplicate variant to be rejected")
	}
}
