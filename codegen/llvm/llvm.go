// Package llvm lowers a parsed program to an LLVM IR module.
package llvm

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/pontaoski/idkc/ast"
	"github.com/pontaoski/idkc/errors"
	"github.com/pontaoski/idkc/eval"
)

// SymbolsGlobal names the global holding the JSON encoded SymbolInfo.
const SymbolsGlobal = "__idk_symbols"

// SymbolInfo is embedded in every module so the signatures of a compiled
// library can be read back without its source.
type SymbolInfo struct {
	Functions map[string]string `json:"functions"`
	Globals   map[string]string `json:"globals"`
}

type ctx struct {
	module          *ir.Module
	stringConstants map[string]*ir.Global
	globals         map[string]*ir.Global
	symbols         SymbolInfo
}

func hash(s string) string {
	h := fnv.New32a()
	h.Write([]byte(s))
	return strconv.FormatUint(uint64(h.Sum32()), 10)
}

func llType(t ast.Type) types.Type {
	switch t {
	case ast.Int:
		return types.I64
	case ast.Float:
		return types.Double
	case ast.Bool:
		return types.I1
	case ast.String:
		return types.I8Ptr
	}
	return types.Void
}

func zero(t ast.Type) constant.Constant {
	switch t {
	case ast.Int:
		return constant.NewInt(types.I64, 0)
	case ast.Float:
		return constant.NewFloat(types.Double, 0)
	case ast.Bool:
		return constant.False
	case ast.String:
		return constant.NewNull(types.I8Ptr)
	}
	return nil
}

// str interns a NUL terminated string and returns an i8* to it.
func (c *ctx) str(s string) constant.Constant {
	g, ok := c.stringConstants[s]
	if !ok {
		g = c.module.NewGlobalDef("_str_"+hash(s), constant.NewCharArray(append([]byte(s), 0)))
		g.Immutable = true
		c.stringConstants[s] = g
	}
	return constant.NewBitCast(g, types.I8Ptr)
}

// lower turns an assignment's value into a constant of the declared type.
// Arithmetic is folded; bools and chars are treated as numbers.
func (c *ctx) lower(t ast.Type, e ast.Expression) (constant.Constant, error) {
	if s, ok := e.(ast.StringLit); ok {
		if t != ast.String {
			return nil, errors.UnsupportedExpression{What: "string assigned to " + t.String()}
		}
		return c.str(s.Value), nil
	}

	var n float64
	switch v := e.(type) {
	case ast.BoolLit:
		if v.Value {
			n = 1
		}
	case ast.CharLit:
		n = float64(v.Value)
	default:
		var err error
		n, err = eval.Evaluate(e)
		if err != nil {
			return nil, err
		}
	}

	switch t {
	case ast.Int:
		return constant.NewInt(types.I64, int64(n)), nil
	case ast.Float:
		return constant.NewFloat(types.Double, n), nil
	case ast.Bool:
		if n != 0 {
			return constant.True, nil
		}
		return constant.False, nil
	}
	return nil, errors.UnsupportedExpression{What: "number assigned to " + t.String()}
}

func (c *ctx) global(a ast.Assignment) error {
	val, err := c.lower(a.Type, a.Value)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Name, err)
	}
	// a redeclared name keeps only the global holding the last value
	if old, ok := c.globals[a.Name]; ok {
		kept := c.module.Globals[:0]
		for _, g := range c.module.Globals {
			if g != old {
				kept = append(kept, g)
			}
		}
		c.module.Globals = kept
	}
	c.globals[a.Name] = c.module.NewGlobalDef(a.Name, val)
	c.symbols.Globals[a.Name] = a.Type.String()
	return nil
}

func (c *ctx) function(f ast.Function) error {
	ret := ast.Void
	if f.Returns != nil {
		ret = *f.Returns
	}

	var params []*ir.Param
	used := map[string]bool{}
	for _, param := range f.Parameters {
		params = append(params, ir.NewParam(param.Name, llType(param.Type)))
		used[param.Name] = true
	}

	fn := c.module.NewFunc(f.Name, llType(ret), params...)
	entry := fn.NewBlock(localName("entry", used))

	// one slot per name and type; a redeclaration only stores into it again
	slots := map[string]*ir.InstAlloca{}
	for _, statement := range f.Body.Statements {
		a, ok := statement.(ast.Assignment)
		if !ok {
			return errors.UnsupportedExpression{What: fmt.Sprintf("statement %T", statement)}
		}
		val, err := c.lower(a.Type, a.Value)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", f.Name, a.Name, err)
		}
		slot, ok := slots[a.Name]
		if !ok || !slot.ElemType.Equal(llType(a.Type)) {
			slot = entry.NewAlloca(llType(a.Type))
			slot.SetName(localName(a.Name, used))
			slots[a.Name] = slot
		}
		entry.NewStore(val, slot)
	}

	if ret == ast.Void {
		entry.NewRet(nil)
	} else {
		entry.NewRet(zero(ret))
	}

	c.symbols.Functions[f.Name] = f.String()
	return nil
}

// localName picks a name for a new slot that is not in used, and marks it
// as used.
func localName(name string, used map[string]bool) string {
	candidate := name
	for i := 1; used[candidate]; i++ {
		candidate = name + "." + strconv.Itoa(i)
	}
	used[candidate] = true
	return candidate
}

func (c *ctx) registerSymbols() error {
	data, err := json.Marshal(c.symbols)
	if err != nil {
		return err
	}

	g := c.module.NewGlobalDef(SymbolsGlobal, constant.NewCharArray(append(data, 0)))
	g.Immutable = true
	return nil
}

// Generate builds a module named after source. Functions return the zero
// value of their return type.
func Generate(prog ast.Program, source string) (*ir.Module, error) {
	c := &ctx{
		module:          ir.NewModule(),
		stringConstants: map[string]*ir.Global{},
		globals:         map[string]*ir.Global{},
		symbols: SymbolInfo{
			Functions: map[string]string{},
			Globals:   map[string]string{},
		},
	}
	c.module.SourceFilename = source

	for _, node := range prog.Toplevels {
		var err error
		switch n := node.(type) {
		case ast.Assignment:
			err = c.global(n)
		case ast.Function:
			err = c.function(n)
		default:
			err = errors.UnsupportedExpression{What: fmt.Sprintf("top level %T", node)}
		}
		if err != nil {
			return nil, err
		}
	}

	if err := c.registerSymbols(); err != nil {
		return nil, err
	}

	return c.module, nil
}
