// Package symtab holds the scope-structured symbol table built during
// analysis: one Symbol per declared procedure, variable, constant or
// parameter, plus the activation-record layout a code generator needs.
package symtab

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies what a symbol names.
type Kind int

const (
	// KindUnset is a freshly inserted symbol whose declaration has not
	// been attributed yet.
	KindUnset Kind = iota
	KindVariable
	KindConstant
	KindFunction
)

var kindNames = [...]string{"unset", "variable", "constant", "function"}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown symbol kind %q", text)
}

// VarType is the primitive type of a variable, constant or parameter.
type VarType int

const (
	TypeInteger VarType = iota
	TypeFloat
	TypeCharacter
)

var typeNames = [...]string{"integer", "float", "character"}

// String returns the lowercase type name.
func (t VarType) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Size returns the storage size in bytes.
func (t VarType) Size() int {
	switch t {
	case TypeInteger:
		return 2
	case TypeFloat:
		return 4
	case TypeCharacter:
		return 1
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t VarType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *VarType) UnmarshalText(text []byte) error {
	for i, name := range typeNames {
		if name == string(text) {
			*t = VarType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown type %q", text)
}

// Mode is a parameter-passing direction.
type Mode int

const (
	ModeIn Mode = iota
	ModeOut
	ModeInOut
)

var modeNames = [...]string{"in", "out", "inout"}

// String returns the lowercase mode keyword.
func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode maps a mode keyword to its Mode, ignoring case.
func ParseMode(s string) (Mode, bool) {
	for i, name := range modeNames {
		if strings.EqualFold(name, s) {
			return Mode(i), true
		}
	}
	return ModeIn, false
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, ok := ParseMode(string(text))
	if !ok {
		return fmt.Errorf("unknown mode %q", text)
	}
	*m = mode
	return nil
}

// VariableAttrs are the attributes of a variable or variable parameter.
type VariableAttrs struct {
	Type        VarType
	Size        int
	Offset      int
	IsParameter bool
}

// ConstantAttrs are the attributes of a named numeric constant.
// IntValue is meaningful for TypeInteger, FloatValue for TypeFloat.
type ConstantAttrs struct {
	Type        VarType
	IntValue    int64
	FloatValue  float64
	Size        int
	Offset      int
	IsParameter bool
}

// Value returns the constant's literal value as text.
func (c *ConstantAttrs) Value() string {
	if c.Type == TypeFloat {
		return strconv.FormatFloat(c.FloatValue, 'g', -1, 64)
	}
	return strconv.FormatInt(c.IntValue, 10)
}

// FunctionAttrs are the attributes of a procedure. ParamTypes and
// ParamModes are in declaration order.
type FunctionAttrs struct {
	ParamTypes []VarType
	ParamModes []Mode
	ParamCount int
	ParamSize  int
	LocalSize  int
}

// Symbol is one declared name. Exactly one attribute block matching Kind
// is reachable through the accessors; an unset symbol has none.
type Symbol struct {
	Name  string
	Depth int
	Line  int

	kind     Kind
	variable *VariableAttrs
	constant *ConstantAttrs
	function *FunctionAttrs
}

// Kind returns the symbol kind.
func (s *Symbol) Kind() Kind {
	return s.kind
}

// IsUnset reports whether the symbol still awaits attribution.
func (s *Symbol) IsUnset() bool {
	return s.kind == KindUnset
}

// Variable returns the variable attributes if s is a variable.
func (s *Symbol) Variable() (*VariableAttrs, bool) {
	return s.variable, s.kind == KindVariable
}

// Constant returns the constant attributes if s is a constant.
func (s *Symbol) Constant() (*ConstantAttrs, bool) {
	return s.constant, s.kind == KindConstant
}

// Function returns the procedure attributes if s is a procedure.
func (s *Symbol) Function() (*FunctionAttrs, bool) {
	return s.function, s.kind == KindFunction
}

// SetVariable makes s a variable of type t.
func (s *Symbol) SetVariable(t VarType) *VariableAttrs {
	s.reset(KindVariable)
	s.variable = &VariableAttrs{Type: t, Size: t.Size()}
	return s.variable
}

// SetConstant makes s a constant. The size follows the type.
func (s *Symbol) SetConstant(t VarType, intValue int64, floatValue float64) *ConstantAttrs {
	s.reset(KindConstant)
	s.constant = &ConstantAttrs{Type: t, IntValue: intValue, FloatValue: floatValue, Size: t.Size()}
	return s.constant
}

// SetFunction makes s a procedure with no parameters or locals yet.
func (s *Symbol) SetFunction() *FunctionAttrs {
	s.reset(KindFunction)
	s.function = &FunctionAttrs{}
	return s.function
}

func (s *Symbol) reset(kind Kind) {
	s.kind = kind
	s.variable = nil
	s.constant = nil
	s.function = nil
}

// Type returns the data type of a variable or constant.
func (s *Symbol) Type() (VarType, bool) {
	switch s.kind {
	case KindVariable:
		return s.variable.Type, true
	case KindConstant:
		return s.constant.Type, true
	default:
		return 0, false
	}
}

// Size returns the storage size of a variable or constant, 0 otherwise.
func (s *Symbol) Size() int {
	switch s.kind {
	case KindVariable:
		return s.variable.Size
	case KindConstant:
		return s.constant.Size
	default:
		return 0
	}
}

// Offset returns the activation-record offset of a variable or constant.
func (s *Symbol) Offset() int {
	switch s.kind {
	case KindVariable:
		return s.variable.Offset
	case KindConstant:
		return s.constant.Offset
	default:
		return 0
	}
}

// SetOffset assigns the activation-record offset. No-op for procedures
// and unset symbols.
func (s *Symbol) SetOffset(offset int) {
	switch s.kind {
	case KindVariable:
		s.variable.Offset = offset
	case KindConstant:
		s.constant.Offset = offset
	}
}

// IsParameter reports whether s is a procedure parameter.
func (s *Symbol) IsParameter() bool {
	switch s.kind {
	case KindVariable:
		return s.variable.IsParameter
	case KindConstant:
		return s.constant.IsParameter
	default:
		return false
	}
}

// MarkParameter flags a variable or constant as a parameter.
func (s *Symbol) MarkParameter() {
	switch s.kind {
	case KindVariable:
		s.variable.IsParameter = true
	case KindConstant:
		s.constant.IsParameter = true
	}
}

// String returns "kind name@depth" plus type information when known.
// Example: "variable x@2 integer offset=4 size=2"
func (s *Symbol) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s@%d", s.kind, s.Name, s.Depth)
	switch s.kind {
	case KindVariable:
		fmt.Fprintf(&b, " %s offset=%d size=%d", s.variable.Type, s.variable.Offset, s.variable.Size)
	case KindConstant:
		fmt.Fprintf(&b, " %s=%s offset=%d size=%d", s.constant.Type, s.constant.Value(),
			s.constant.Offset, s.constant.Size)
	case KindFunction:
		fmt.Fprintf(&b, " params=%d psize=%d lsize=%d", s.function.ParamCount,
			s.function.ParamSize, s.function.LocalSize)
	}
	return b.String()
}
