package symtab

// Layout constants for activation records.
const (
	// HeaderSize is the fixed frame header; the last-declared parameter
	// sits immediately above it.
	HeaderSize = 4
	// LocalBase is the offset of the first local variable.
	LocalBase = 2
)

// Slot is one parameter or local in a Frame.
type Slot struct {
	Name   string  `json:"name" yaml:"name"`
	Kind   Kind    `json:"kind" yaml:"kind"`
	Type   VarType `json:"type" yaml:"type"`
	Mode   *Mode   `json:"mode,omitempty" yaml:"mode,omitempty"`
	Offset int     `json:"offset" yaml:"offset"`
	Size   int     `json:"size" yaml:"size"`
	Value  string  `json:"value,omitempty" yaml:"value,omitempty"`
}

// Frame is the activation-record layout of one procedure, captured when
// its scope closes.
type Frame struct {
	Procedure string   `json:"procedure" yaml:"procedure"`
	Depth     int      `json:"depth" yaml:"depth"`
	Line      int      `json:"line" yaml:"line"`
	Params    []Slot   `json:"params,omitempty" yaml:"params,omitempty"`
	Locals    []Slot   `json:"locals,omitempty" yaml:"locals,omitempty"`
	Nested    []string `json:"nested,omitempty" yaml:"nested,omitempty"`
	ParamSize int      `json:"paramSize" yaml:"paramSize"`
	LocalSize int      `json:"localSize" yaml:"localSize"`
}

// Snapshot builds the frame of procedure fn from the symbols declared in
// its body scope. Params keep declaration order; their modes come from
// fn's parameter mode list.
func Snapshot(fn *Symbol, scope []*Symbol) Frame {
	frame := Frame{
		Procedure: fn.Name,
		Depth:     fn.Depth,
		Line:      fn.Line,
	}
	attrs, ok := fn.Function()
	if ok {
		frame.ParamSize = attrs.ParamSize
		frame.LocalSize = attrs.LocalSize
	}

	for _, sym := range scope {
		switch sym.Kind() {
		case KindFunction:
			frame.Nested = append(frame.Nested, sym.Name)
			continue
		case KindUnset:
			continue
		}

		slot := Slot{
			Name:   sym.Name,
			Kind:   sym.Kind(),
			Offset: sym.Offset(),
			Size:   sym.Size(),
		}
		slot.Type, _ = sym.Type()
		if c, ok := sym.Constant(); ok {
			slot.Value = c.Value()
		}

		if sym.IsParameter() {
			if ok && len(frame.Params) < len(attrs.ParamModes) {
				mode := attrs.ParamModes[len(frame.Params)]
				slot.Mode = &mode
			}
			frame.Params = append(frame.Params, slot)
		} else {
			frame.Locals = append(frame.Locals, slot)
		}
	}
	return frame
}
