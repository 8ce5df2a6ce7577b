// Package script replays pointer and keyboard gestures against a
// session without a window. A script is one command per line:
//
//	tool rectangle
//	drag 10 10 120 80
//	color blue
//	wait 50ms
//
// Coordinates are surface pixels. Blank lines and lines starting with #
// are skipped.
package script

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/annotator/internal/palette"
	"github.com/example/annotator/internal/shape"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("syntax error")

// DefaultDragSteps is the number of pointer moves a drag is split into.
const DefaultDragSteps = 4

// Verb names a script command.
type Verb string

const (
	Tool        Verb = "tool"
	Down        Verb = "down"
	Move        Verb = "move"
	Up          Verb = "up"
	Click       Verb = "click"
	Drag        Verb = "drag"
	DoubleClick Verb = "dblclick"
	Type        Verb = "type"
	Blur        Verb = "blur"
	Color       Verb = "color"
	Size        Verb = "size"
	Delete      Verb = "delete"
	Undo        Verb = "undo"
	Redo        Verb = "redo"
	Wait        Verb = "wait"
	Deselect    Verb = "deselect"
)

// Command is one parsed script line.
type Command struct {
	Line   int
	Verb   Verb
	Kind   shape.Kind
	Points []r2.Vec
	Steps  int
	Text   string
	Color  color.RGBA
	Size   float64
	Wait   time.Duration
}

type parseFunc func(c *Command, args []string, rest string) error

var parsers = map[Verb]parseFunc{
	Tool:        parseTool,
	Down:        points(1),
	Move:        points(1),
	Up:          points(1),
	Click:       points(1),
	DoubleClick: points(1),
	Drag:        parseDrag,
	Type:        parseType,
	Blur:        noArgs,
	Color:       parseColor,
	Size:        parseSize,
	Delete:      noArgs,
	Undo:        noArgs,
	Redo:        noArgs,
	Wait:        parseWait,
	Deselect:    noArgs,
}

// Parse reads a script.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		cmd.Line = n
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return cmds, nil
}

// ParseLine parses a single command.
func ParseLine(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty command", ErrSyntax)
	}
	verb := Verb(strings.ToLower(fields[0]))
	parse, ok := parsers[verb]
	if !ok {
		return Command{}, fmt.Errorf("%w: unknown command %q", ErrSyntax, fields[0])
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
	cmd := Command{Verb: verb}
	if err := parse(&cmd, fields[1:], rest); err != nil {
		return Command{}, fmt.Errorf("%w: %s: %v", ErrSyntax, verb, err)
	}
	return cmd, nil
}

func noArgs(c *Command, args []string, _ string) error {
	if len(args) != 0 {
		return fmt.Errorf("takes no arguments")
	}
	return nil
}

func parseTool(c *Command, args []string, _ string) error {
	if len(args) != 1 {
		return fmt.Errorf("requires a tool name")
	}
	kind, ok := shape.ParseKind(strings.ToLower(args[0]))
	if !ok {
		return fmt.Errorf("unknown tool %q", args[0])
	}
	c.Kind = kind
	return nil
}

func points(n int) parseFunc {
	return func(c *Command, args []string, _ string) error {
		pts, err := expectPoints(args, n)
		if err != nil {
			return err
		}
		c.Points = pts
		return nil
	}
}

func parseDrag(c *Command, args []string, _ string) error {
	c.Steps = DefaultDragSteps
	if len(args) == 5 {
		steps, err := strconv.Atoi(args[4])
		if err != nil || steps < 1 {
			return fmt.Errorf("invalid step count %q", args[4])
		}
		c.Steps = steps
		args = args[:4]
	}
	pts, err := expectPoints(args, 2)
	if err != nil {
		return err
	}
	c.Points = pts
	return nil
}

func expectPoints(args []string, n int) ([]r2.Vec, error) {
	if len(args) != 2*n {
		return nil, fmt.Errorf("requires %d coordinates", 2*n)
	}
	vals := make([]float64, len(args))
	for i, raw := range args {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", raw)
		}
		vals[i] = v
	}
	pts := make([]r2.Vec, n)
	for i := range pts {
		pts[i] = r2.Vec{X: vals[2*i], Y: vals[2*i+1]}
	}
	return pts, nil
}

// parseType takes the rest of the line verbatim, or a Go quoted string
// when the text needs escapes such as \n.
func parseType(c *Command, _ []string, rest string) error {
	if strings.HasPrefix(rest, `"`) {
		text, err := strconv.Unquote(rest)
		if err != nil {
			return fmt.Errorf("invalid quoted text %s", rest)
		}
		c.Text = text
		return nil
	}
	c.Text = rest
	return nil
}

func parseColor(c *Command, args []string, _ string) error {
	if len(args) != 1 {
		return fmt.Errorf("requires a colour")
	}
	col, err := palette.ParseColor(args[0])
	if err != nil {
		return err
	}
	c.Color = col
	return nil
}

func parseSize(c *Command, args []string, _ string) error {
	if len(args) != 1 {
		return fmt.Errorf("requires a size")
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid size %q", args[0])
	}
	if _, ok := palette.LookupTier(v); !ok {
		return fmt.Errorf("size %v is not one of 3, 6, 9", v)
	}
	c.Size = v
	return nil
}

func parseWait(c *Command, args []string, _ string) error {
	if len(args) != 1 {
		return fmt.Errorf("requires a duration")
	}
	d, err := time.ParseDuration(args[0])
	if err != nil || d < 0 {
		return fmt.Errorf("invalid duration %q", args[0])
	}
	c.Wait = d
	return nil
}
