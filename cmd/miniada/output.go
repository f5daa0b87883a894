package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/miniada/miniada"
	"github.com/miniada/miniada/symtab"
)

// ProgramJSON is the serializable form of one analysis result.
type ProgramJSON struct {
	Name        string           `json:"name" yaml:"name"`
	File        string           `json:"file" yaml:"file"`
	Successful  bool             `json:"successful" yaml:"successful"`
	Tokens      int              `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Frames      []symtab.Frame   `json:"frames,omitempty" yaml:"frames,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// DiagnosticJSON is the serializable form of a diagnostic.
type DiagnosticJSON struct {
	Severity string `json:"severity" yaml:"severity"`
	Code     string `json:"code" yaml:"code"`
	Message  string `json:"message" yaml:"message"`
	File     string `json:"file,omitempty" yaml:"file,omitempty"`
	Line     int    `json:"line,omitempty" yaml:"line,omitempty"`
}

func programJSON(r *miniada.Result, withFrames bool) ProgramJSON {
	p := ProgramJSON{
		Name:       r.Name,
		File:       r.File,
		Successful: r.Successful(),
		Tokens:     r.Tokens,
	}
	if withFrames {
		p.Frames = r.Frames
	}
	for _, d := range r.Diagnostics {
		p.Diagnostics = append(p.Diagnostics, DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code,
			Message:  d.Message,
			File:     d.File,
			Line:     d.Line,
		})
	}
	if !r.Successful() && len(r.Diagnostics) == 0 {
		p.Diagnostics = append(p.Diagnostics, DiagnosticJSON{
			Severity: "fatal",
			Code:     "io",
			Message:  r.Err.Error(),
			File:     r.File,
		})
	}
	return p
}

// encode writes v as JSON or YAML. It reports false for other formats.
func encode(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

type styles struct {
	ok     lipgloss.Style
	fail   lipgloss.Style
	header lipgloss.Style
	dim    lipgloss.Style
	border lipgloss.Style
}

func newStyles(color bool) styles {
	s := styles{
		ok:     lipgloss.NewStyle(),
		fail:   lipgloss.NewStyle(),
		header: lipgloss.NewStyle(),
		dim:    lipgloss.NewStyle(),
		border: lipgloss.NewStyle(),
	}
	if color {
		s.ok = s.ok.Foreground(lipgloss.Color("2"))
		s.fail = s.fail.Foreground(lipgloss.Color("1")).Bold(true)
		s.header = s.header.Foreground(lipgloss.Color("6")).Bold(true)
		s.dim = s.dim.Foreground(lipgloss.Color("8"))
		s.border = s.border.Foreground(lipgloss.Color("8"))
	}
	return s
}

func (s styles) table(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

func slotRows(f symtab.Frame) [][]string {
	var rows [][]string
	add := func(role string, slot symtab.Slot) {
		mode := ""
		if slot.Mode != nil {
			mode = slot.Mode.String()
		}
		rows = append(rows, []string{
			role,
			slot.Name,
			slot.Kind.String(),
			slot.Type.String(),
			mode,
			strconv.Itoa(slot.Offset),
			strconv.Itoa(slot.Size),
			slot.Value,
		})
	}
	for _, slot := range f.Params {
		add("param", slot)
	}
	for _, slot := range f.Locals {
		add("local", slot)
	}
	return rows
}

// writeFrameText prints one frame in the plain layout format.
func writeFrameText(w io.Writer, s styles, f symtab.Frame) {
	fmt.Fprintf(w, "%s %s (depth %d, line %d) params=%d locals=%d\n",
		s.header.Render("procedure"), f.Procedure, f.Depth, f.Line, f.ParamSize, f.LocalSize)
	for _, row := range slotRows(f) {
		line := fmt.Sprintf("  %-6s %-10s %-9s %-9s %-6s offset %-3s size %s",
			row[0], row[1], row[2], row[3], row[4], row[5], row[6])
		if row[7] != "" {
			line += " = " + row[7]
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	if len(f.Nested) > 0 {
		fmt.Fprintf(w, "  %s %s\n", s.dim.Render("nested"), strings.Join(f.Nested, ", "))
	}
}

func writeFrameTable(w io.Writer, s styles, f symtab.Frame) {
	fmt.Fprintf(w, "%s (depth %d) params=%d locals=%d\n",
		s.header.Render(f.Procedure), f.Depth, f.ParamSize, f.LocalSize)
	t := s.table("Role", "Name", "Kind", "Type", "Mode", "Offset", "Size", "Value").
		Rows(slotRows(f)...)
	fmt.Fprintln(w, t.String())
}

func writeDiagnostics(w io.Writer, s styles, r *miniada.Result) {
	if len(r.Diagnostics) == 0 && r.Err != nil {
		fmt.Fprintf(w, "%s %s: %v\n", s.fail.Render("FAIL"), r.Name, r.Err)
		return
	}
	for _, d := range r.Diagnostics {
		fmt.Fprintln(w, d.String())
	}
}
