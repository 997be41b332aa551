package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/fatih/color"
	"github.com/pontaoski/idkc/ast"
	cgen "github.com/pontaoski/idkc/codegen/c"
	"github.com/pontaoski/idkc/codegen/llvm"
	"github.com/pontaoski/idkc/eval"
	"github.com/pontaoski/idkc/lexer"
	"github.com/pontaoski/idkc/parser"
	"github.com/pontaoski/idkc/types"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

var (
	errorLabel = color.New(color.FgRed, color.Bold)
	okLabel    = color.New(color.FgGreen)
	kindLabel  = color.New(color.FgCyan)
)

func parserOptions(c *cli.Context, strict bool) parser.Options {
	opts := parser.Options{StrictRedeclaration: strict}
	if c.Bool("verbose") {
		opts.Trace = log.New(os.Stderr, "idkc: ", 0)
	}
	return opts
}

func parseFile(name string, opts parser.Options) (ast.Program, error) {
	data, err := ioutil.ReadFile(name)
	if err != nil {
		return ast.Program{}, err
	}
	return parser.ParseSource(string(data), name, opts)
}

// parseFiles parses every file on its own and concatenates their top levels.
func parseFiles(names []string, opts parser.Options) (ast.Program, error) {
	prog := ast.Program{Symbols: ast.NewSymbolTable()}

	for _, name := range names {
		p, err := parseFile(name, opts)
		if err != nil {
			return ast.Program{}, err
		}
		prog.Toplevels = append(prog.Toplevels, p.Toplevels...)
		for _, sym := range p.Symbols.Names() {
			n, _ := p.Symbols.Lookup(sym)
			prog.Symbols.Insert(sym, n)
		}
	}

	return prog, nil
}

func generate(prog ast.Program, target, source string) (string, string, error) {
	switch target {
	case "c":
		out, err := cgen.Generate(prog)
		return out, ".c", err
	case "llvm":
		m, err := llvm.Generate(prog, source)
		if err != nil {
			return "", "", err
		}
		return m.String(), ".ll", nil
	}
	return "", "", fmt.Errorf("unknown target language %q", target)
}

// compileLibrary hands generated code to clang and writes a shared object
// to out.
func compileLibrary(code, ext, out string) error {
	fi, err := ioutil.TempFile("", "idkc-*"+ext)
	if err != nil {
		return err
	}
	defer os.Remove(fi.Name())

	if _, err := fi.WriteString(code); err != nil {
		fi.Close()
		return err
	}
	if err := fi.Close(); err != nil {
		return err
	}

	cmd := exec.Command("clang", "-shared", "-fPIC", "-o", out, fi.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clang: %w", err)
	}
	return nil
}

func reportError(c *cli.Context, err error) {
	if err == nil {
		return
	}
	if c.Bool("trace") {
		tracerr.PrintSourceColor(err)
	} else {
		errorLabel.Fprint(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, tracerr.Unwrap(err))
	}
	os.Exit(1)
}

func main() {
	app := &cli.App{
		Name:           "idkc",
		Usage:          "idk compiler",
		ExitErrHandler: reportError,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log every statement and expression as it is parsed",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "Print a stack trace with errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "write a default " + moduleFile,
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return fmt.Errorf("no module name provided")
					}
					if exists(moduleFile) {
						return fmt.Errorf("%s already exists", moduleFile)
					}
					if err := defaultModule(name).save(moduleFile); err != nil {
						return fmt.Errorf("error creating %s: %w", moduleFile, err)
					}
					okLabel.Printf("created %s\n", moduleFile)
					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "print the tokens of a file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					data, err := ioutil.ReadFile(c.Args().First())
					if err != nil {
						return err
					}
					toks, err := lexer.Tokenize(string(data), c.Args().First())
					if err != nil {
						return err
					}
					for _, tok := range toks {
						fmt.Printf("%s %q %s\n", kindLabel.Sprintf("%-11s", tok.Kind), tok.Lexeme, tok.Location.From)
					}
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "dump the syntax tree of a file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "strict", Usage: "Reject names declared twice in one block"},
				},
				Action: func(c *cli.Context) error {
					prog, err := parseFile(c.Args().First(), parserOptions(c, c.Bool("strict")))
					if err != nil {
						return err
					}
					repr.Println(prog.Toplevels)
					return nil
				},
			},
			{
				Name:      "eval",
				Usage:     "evaluate an arithmetic expression",
				ArgsUsage: "<expression>",
				Action: func(c *cli.Context) error {
					src := strings.Join(c.Args().Slice(), " ")
					toks, err := lexer.Tokenize(src, "<eval>")
					if err != nil {
						return err
					}
					p := parser.NewParser(toks, parserOptions(c, false))
					expr, err := p.ParseExpression(ast.NewSymbolTable())
					if err != nil {
						return err
					}
					if p.PeekIs(types.SEMICOLON) {
						p.LexExpecting(types.SEMICOLON)
					}
					if !p.PeekIs(types.EOF) {
						return fmt.Errorf("unexpected input after the expression")
					}
					v, err := eval.Evaluate(expr)
					if err != nil {
						return err
					}
					fmt.Printf("%s = %g\n", expr, v)
					return nil
				},
			},
			{
				Name:      "build",
				Usage:     "compile files, or the sources listed in " + moduleFile,
				ArgsUsage: "[files...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
					},
					&cli.StringFlag{
						Name:    "target",
						Aliases: []string{"t"},
						Usage:   "Language to generate (c, llvm)",
					},
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "Print the generated code instead of writing it",
					},
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "Reject names declared twice in one block",
					},
					&cli.BoolFlag{
						Name:  "library",
						Usage: "Compile the generated LLVM IR to a shared object with clang",
					},
				},
				Action: func(c *cli.Context) error {
					mod := defaultModule("out")
					if exists(moduleFile) {
						var err error
						if mod, err = loadModule(moduleFile); err != nil {
							return err
						}
					}
					if c.IsSet("target") {
						mod.Target = c.String("target")
					}
					if c.IsSet("strict") {
						mod.Strict = c.Bool("strict")
					}
					if c.Bool("library") && mod.Target != "llvm" {
						return fmt.Errorf("--library needs the llvm target, not %q", mod.Target)
					}

					files := c.Args().Slice()
					if len(files) == 0 {
						var err error
						if files, err = mod.sourceFiles("."); err != nil {
							return err
						}
					}

					prog, err := parseFiles(files, parserOptions(c, mod.Strict))
					if err != nil {
						return err
					}

					code, ext, err := generate(prog, mod.Target, filepath.Base(files[0]))
					if err != nil {
						return err
					}

					if c.Bool("dump") {
						fmt.Print(code)
						return nil
					}

					out := c.String("output")
					if c.Bool("library") {
						if out == "" {
							out = mod.Package + ".so"
						}
						if err := compileLibrary(code, ext, out); err != nil {
							return err
						}
						okLabel.Printf("wrote %s\n", out)
						return nil
					}

					if out == "" {
						out = mod.Package + ext
					}
					if err := ioutil.WriteFile(out, []byte(code), 0o644); err != nil {
						return err
					}
					okLabel.Printf("wrote %s\n", out)
					return nil
				},
			},
			{
				Name:      "symbols",
				Usage:     "dump the symbols embedded in a compiled library",
				ArgsUsage: "<shared object>",
				Action: func(c *cli.Context) error {
					data, err := getSymbolInfoFromFile(c.Args().First())
					if err != nil {
						return err
					}
					repr.Println(data)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
