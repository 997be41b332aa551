package ast

// SymbolTable maps the names declared in one block to the node that declared
// them. Tables have no parent: a block only sees its own names.
type SymbolTable struct {
	names   []string
	entries map[string]Node
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		entries: make(map[string]Node),
	}
}

// Insert binds name to n. An existing binding is replaced and keeps its
// original place in declaration order; replaced reports whether that happened.
func (s *SymbolTable) Insert(name string, n Node) (replaced bool) {
	if _, ok := s.entries[name]; ok {
		replaced = true
	} else {
		s.names = append(s.names, name)
	}
	s.entries[name] = n
	return
}

func (s *SymbolTable) Lookup(name string) (Node, bool) {
	if s == nil {
		return nil, false
	}
	n, ok := s.entries[name]
	return n, ok
}

func (s *SymbolTable) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns the bound names in declaration order.
func (s *SymbolTable) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}
