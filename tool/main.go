// Command adtgen writes the marker interfaces and methods that close the
// sum types declared in an .adt file.
//
//	type Expression = | IntLit | FloatLit ;
//
// becomes an Expression interface with an unexported isExpression method,
// implemented by IntLit and FloatLit.
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type TypeDecls struct {
	Declarations []*Declaration `@@*`
}

type Declaration struct {
	Name     string   `"type" @Ident "="`
	Variants []string `("|" @Ident)+ ";"`
}

func (t *TypeDecls) validate() error {
	owner := map[string]string{}
	for _, decl := range t.Declarations {
		for _, v := range decl.Variants {
			if prev, ok := owner[v]; ok && prev == decl.Name {
				return fmt.Errorf("%s listed twice in %s", v, decl.Name)
			}
			owner[v] = decl.Name
		}
	}
	return nil
}

func GenerateDecls(pkgname string, t *TypeDecls) string {
	f := NewFile(pkgname)
	f.HeaderComment("Code generated by adtgen. DO NOT EDIT.")

	for _, decl := range t.Declarations {
		marker := "is" + decl.Name

		f.Type().Id(decl.Name).Interface(
			Id(marker).Params(),
		)

		for _, variant := range decl.Variants {
			f.Func().Params(Id("v").Id(variant)).Id(marker).Params().Block()
		}
	}

	return fmt.Sprintf("%#v", f)
}

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "usage: adtgen <input.adt> <output.go> <package>")
		os.Exit(2)
	}

	parser := participle.MustBuild(&TypeDecls{})

	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	ast := TypeDecls{}
	err = parser.ParseBytes(inData, &ast)
	if err != nil {
		panic(err)
	}
	if err := ast.validate(); err != nil {
		panic(err)
	}

	err = ioutil.WriteFile(out, []byte(GenerateDecls(pkgname, &ast)), 0o644)
	if err != nil {
		panic(err)
	}
}
