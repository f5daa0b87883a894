package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miniada/miniada"
	"github.com/miniada/miniada/symtab"
)

// SlotCase is the expected layout of one parameter or local.
type SlotCase struct {
	Name   string
	Type   miniada.VarType
	Offset int
	Mode   string // parameters only
	Value  string // constants only
}

// FrameTestCase defines the expected frame of one procedure.
type FrameTestCase struct {
	Program   string
	Procedure string
	Depth     int
	ParamSize int
	LocalSize int
	Params    []SlotCase
	Locals    []SlotCase
	Nested    []string
}

var frameTests = []FrameTestCase{
	{
		Program: "params", Procedure: "P", Depth: 1, ParamSize: 4, LocalSize: 2,
		Params: []SlotCase{
			{Name: "x", Type: symtab.TypeInteger, Offset: 6, Mode: "in"},
			{Name: "y", Type: symtab.TypeInteger, Offset: 4, Mode: "out"},
		},
		Locals: []SlotCase{{Name: "a", Type: symtab.TypeInteger, Offset: 2}},
	},
	{
		Program: "nested", Procedure: "Inner", Depth: 2, ParamSize: 4, LocalSize: 1,
		Params: []SlotCase{{Name: "x", Type: symtab.TypeFloat, Offset: 4, Mode: "inout"}},
		Locals: []SlotCase{{Name: "y", Type: symtab.TypeCharacter, Offset: 2}},
	},
	{
		// c (float, 4) sits on the header; b and a (integer, 2) above it.
		Program: "nested", Procedure: "Sibling", Depth: 2, ParamSize: 8, LocalSize: 4,
		Params: []SlotCase{
			{Name: "a", Type: symtab.TypeInteger, Offset: 10, Mode: "in"},
			{Name: "b", Type: symtab.TypeInteger, Offset: 8, Mode: "in"},
			{Name: "c", Type: symtab.TypeFloat, Offset: 4, Mode: "out"},
		},
		Locals: []SlotCase{{Name: "total", Type: symtab.TypeFloat, Offset: 2}},
	},
	{
		Program: "nested", Procedure: "Outer", Depth: 1, ParamSize: 0, LocalSize: 2,
		Locals: []SlotCase{{Name: "x", Type: symtab.TypeInteger, Offset: 2}},
		Nested: []string{"Inner", "Sibling"},
	},
	{
		Program: "constants", Procedure: "Circle", Depth: 1, ParamSize: 8, LocalSize: 8,
		Params: []SlotCase{
			{Name: "r", Type: symtab.TypeFloat, Offset: 8, Mode: "in"},
			{Name: "area", Type: symtab.TypeFloat, Offset: 4, Mode: "out"},
		},
		Locals: []SlotCase{
			{Name: "pi", Type: symtab.TypeFloat, Offset: 2, Value: "3.14"},
			{Name: "two", Type: symtab.TypeInteger, Offset: 6, Value: "2"},
			{Name: "scale", Type: symtab.TypeInteger, Offset: 8},
		},
	},
	{
		Program: "expressions", Procedure: "Exprs", Depth: 1, ParamSize: 0, LocalSize: 8,
		Locals: []SlotCase{
			{Name: "a", Type: symtab.TypeInteger, Offset: 2},
			{Name: "b", Type: symtab.TypeInteger, Offset: 4},
			{Name: "f", Type: symtab.TypeFloat, Offset: 6},
		},
	},
}

func checkSlots(t *testing.T, kind string, want []SlotCase, got []miniada.Slot) {
	t.Helper()
	require.Len(t, got, len(want), "%s count", kind)
	for i, w := range want {
		g := got[i]
		assert.Equal(t, w.Name, g.Name, "%s %d name", kind, i)
		assert.Equal(t, w.Type, g.Type, "%s %s type", kind, w.Name)
		assert.Equal(t, w.Type.Size(), g.Size, "%s %s size", kind, w.Name)
		assert.Equal(t, w.Offset, g.Offset, "%s %s offset", kind, w.Name)
		assert.Equal(t, w.Value, g.Value, "%s %s value", kind, w.Name)
		if w.Mode != "" {
			require.NotNil(t, g.Mode, "%s %s mode", kind, w.Name)
			assert.Equal(t, w.Mode, g.Mode.String(), "%s %s mode", kind, w.Name)
		}
	}
}

func TestFrames(t *testing.T) {
	for _, tc := range frameTests {
		t.Run(tc.Program+"/"+tc.Procedure, func(t *testing.T) {
			f := getFrame(t, tc.Program, tc.Procedure)
			assert.Equal(t, tc.Depth, f.Depth, "depth")
			assert.Equal(t, tc.ParamSize, f.ParamSize, "param size")
			assert.Equal(t, tc.LocalSize, f.LocalSize, "local size")
			checkSlots(t, "param", tc.Params, f.Params)
			checkSlots(t, "local", tc.Locals, f.Locals)
			assert.Equal(t, tc.Nested, f.Nested, "nested")
		})
	}
}

// TestFramesInnermostFirst verifies frames come out in scope-closing order.
func TestFramesInnermostFirst(t *testing.T) {
	r := getResult(t, "nested")
	var order []string
	for _, f := range r.Frames {
		order = append(order, f.Procedure)
	}
	assert.Equal(t, []string{"Inner", "Sibling", "Outer"}, order)
}

// TestProgramSymbolSurvives verifies only the outermost procedure remains
// in the table after analysis.
func TestProgramSymbolSurvives(t *testing.T) {
	for _, name := range []string{"params", "nested", "constants", "expressions"} {
		r := getResult(t, name)
		require.True(t, r.Successful())
		assert.Equal(t, 1, r.Table.Len(), name)
		assert.Equal(t, symtab.BaseDepth, r.Program.Depth, name)
		fn, ok := r.Program.Function()
		require.True(t, ok, name)
		assert.Equal(t, len(fn.ParamModes), fn.ParamCount, name)
	}
}
