package symtab

import (
	"cmp"
	"slices"
)

// BaseDepth is the depth at which the outermost procedure is registered.
const BaseDepth = 1

// Table maps names to their visible declarations, innermost last.
//
// Each name keeps its declarations ordered by depth so shadowed outer
// symbols survive when an inner scope closes. Each depth keeps its own
// declaration order, which makes DeleteDepth proportional to the scope's
// size rather than the table's.
type Table struct {
	depth  int
	names  map[string][]*Symbol
	scopes map[int][]*Symbol
}

// NewTable returns an empty table positioned at BaseDepth.
func NewTable() *Table {
	return &Table{
		depth:  BaseDepth,
		names:  make(map[string][]*Symbol),
		scopes: make(map[int][]*Symbol),
	}
}

// Depth returns the current scope depth.
func (t *Table) Depth() int {
	return t.depth
}

// Enter opens a nested scope and returns its depth.
func (t *Table) Enter() int {
	t.depth++
	return t.depth
}

// Leave deletes every symbol at the current depth and returns to the
// enclosing scope.
func (t *Table) Leave() {
	t.DeleteDepth(t.depth)
	t.depth--
}

// Insert creates a kind-unset symbol named name at depth. The caller is
// responsible for the duplicate check (see LookupAt).
func (t *Table) Insert(name string, depth int) *Symbol {
	sym := &Symbol{Name: name, Depth: depth}

	decls := t.names[name]
	i := len(decls)
	for i > 0 && decls[i-1].Depth > depth {
		i--
	}
	t.names[name] = slices.Insert(decls, i, sym)
	t.scopes[depth] = append(t.scopes[depth], sym)
	return sym
}

// Lookup returns the innermost visible symbol named name, or nil.
func (t *Table) Lookup(name string) *Symbol {
	decls := t.names[name]
	if len(decls) == 0 {
		return nil
	}
	return decls[len(decls)-1]
}

// LookupKind returns the innermost visible symbol named name whose kind
// is kind, or nil.
func (t *Table) LookupKind(name string, kind Kind) *Symbol {
	decls := t.names[name]
	for i := len(decls) - 1; i >= 0; i-- {
		if decls[i].kind == kind {
			return decls[i]
		}
	}
	return nil
}

// LookupAt returns the symbol named name declared exactly at depth, or nil.
func (t *Table) LookupAt(name string, depth int) *Symbol {
	decls := t.names[name]
	for i := len(decls) - 1; i >= 0; i-- {
		if decls[i].Depth == depth {
			return decls[i]
		}
		if decls[i].Depth < depth {
			break
		}
	}
	return nil
}

// DeleteDepth removes every symbol declared at depth. Declarations of the
// same names at other depths are untouched.
func (t *Table) DeleteDepth(depth int) {
	for _, sym := range t.scopes[depth] {
		decls := t.names[sym.Name]
		decls = slices.DeleteFunc(decls, func(s *Symbol) bool { return s == sym })
		if len(decls) == 0 {
			delete(t.names, sym.Name)
		} else {
			t.names[sym.Name] = decls
		}
	}
	delete(t.scopes, depth)
}

// SymbolsAt returns the symbols declared at depth in declaration order.
func (t *Table) SymbolsAt(depth int) []*Symbol {
	return slices.Clone(t.scopes[depth])
}

// All returns every live symbol ordered by depth, then declaration order.
func (t *Table) All() []*Symbol {
	depths := make([]int, 0, len(t.scopes))
	for d := range t.scopes {
		depths = append(depths, d)
	}
	slices.SortFunc(depths, cmp.Compare[int])

	var out []*Symbol
	for _, d := range depths {
		out = append(out, t.scopes[d]...)
	}
	return out
}

// Len returns the number of live symbols.
func (t *Table) Len() int {
	n := 0
	for _, syms := range t.scopes {
		n += len(syms)
	}
	return n
}
