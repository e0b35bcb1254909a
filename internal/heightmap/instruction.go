package heightmap

import (
	"strings"

	pcore "landmass/pkg/core"
)

// Tool identifies one recipe operation.
type Tool uint8

const (
	ToolHill Tool = iota + 1
	ToolPit
	ToolRange
	ToolTrough
	ToolStrait
	ToolMask
	ToolInvert
	ToolAdd
	ToolMultiply
	ToolSmooth
)

var toolNames = map[string]Tool{
	"hill":     ToolHill,
	"pit":      ToolPit,
	"range":    ToolRange,
	"trough":   ToolTrough,
	"strait":   ToolStrait,
	"mask":     ToolMask,
	"invert":   ToolInvert,
	"add":      ToolAdd,
	"multiply": ToolMultiply,
	"smooth":   ToolSmooth,
}

func (t Tool) String() string {
	for name, tool := range toolNames {
		if tool == t {
			return name
		}
	}
	return "unknown"
}

// Instruction is one parsed recipe line. Which fields are meaningful
// depends on Tool:
//
//	Hill, Pit, Range, Trough: Count, Height, RangeX, RangeY
//	Strait:                   Count (width), Target (direction)
//	Invert:                   Value (probability), Target (axes)
//	Add, Multiply:            Value, Target (height range)
//	Smooth, Mask:             Value
//
// Count and Height stay textual because ranges are sampled when the
// instruction runs, not when it is parsed.
type Instruction struct {
	Tool   Tool
	Count  string
	Height string
	RangeX string
	RangeY string
	Value  float64
	Target string
}

// Parse splits a recipe into instructions. Lines are separated by newlines
// or semicolons and tokens by whitespace. Unknown tools and blank lines are
// skipped.
func Parse(recipe string) []Instruction {
	lines := strings.FieldsFunc(recipe, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ';'
	})

	var out []Instruction
	for _, line := range lines {
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		tool, ok := toolNames[strings.ToLower(args[0])]
		if !ok {
			continue
		}
		out = append(out, newInstruction(tool, args[1:]))
	}
	return out
}

func newInstruction(tool Tool, args []string) Instruction {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}
	num := func(i int, def float64) float64 {
		if v, ok := pcore.ParseNumber(arg(i)); ok && arg(i) != "" {
			return v
		}
		return def
	}

	ins := Instruction{Tool: tool}
	switch tool {
	case ToolHill, ToolPit, ToolRange, ToolTrough:
		ins.Count = arg(0)
		ins.Height = arg(1)
		ins.RangeX = arg(2)
		ins.RangeY = arg(3)
	case ToolStrait:
		ins.Count = arg(0)
		ins.Target = arg(1)
		if ins.Target == "" || ins.Target == "0" {
			ins.Target = "vertical"
		}
	case ToolInvert:
		ins.Value = num(0, 0)
		ins.Target = arg(1)
		if ins.Target == "" || ins.Target == "0" {
			ins.Target = "both"
		}
	case ToolAdd:
		ins.Value = num(0, 0)
		ins.Target = targetOrAll(arg(1))
	case ToolMultiply:
		ins.Value = num(0, 1)
		ins.Target = targetOrAll(arg(1))
	case ToolSmooth:
		ins.Value = num(0, 2)
	case ToolMask:
		ins.Value = num(0, 1)
	}
	return ins
}

func targetOrAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}

// String renders the instruction back into recipe syntax.
func (ins Instruction) String() string {
	name := ins.Tool.String()
	name = strings.ToUpper(name[:1]) + name[1:]
	f := func(v float64) string { return formatNumber(v) }
	switch ins.Tool {
	case ToolHill, ToolPit, ToolRange, ToolTrough:
		return strings.Join([]string{name, ins.Count, ins.Height, ins.RangeX, ins.RangeY}, " ")
	case ToolStrait:
		return strings.Join([]string{name, ins.Count, ins.Target}, " ")
	case ToolInvert, ToolAdd, ToolMultiply:
		return strings.Join([]string{name, f(ins.Value), ins.Target}, " ")
	default:
		return name + " " + f(ins.Value)
	}
}
