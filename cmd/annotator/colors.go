package main

import (
	"flag"
	"fmt"

	"github.com/example/annotator/internal/palette"
	"github.com/example/annotator/internal/shape"
)

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	def := palette.Defaults(shape.Brush)
	fmt.Fprintln(c.stdout, "palette colors (* marks the brush, ellipse and text default):")
	for idx, entry := range palette.Colors {
		marker := " "
		if entry.Color == def.Color {
			marker = "*"
		}
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(c.stdout, "%s %d: %-9s %s %s\n", marker, idx+1, entry.Name, palette.Hex(entry.Color), block)
	}
	fmt.Fprintln(c.stdout, "sizes (* marks the default):")
	for idx, t := range palette.Tiers {
		marker := " "
		if idx == 0 {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %gpx stroke, %gpx text\n", marker, t.Value, t.Font)
	}
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *colorsCmd) Program() string {
	return c.subcommand("colors")
}

func (c *colorsCmd) Template() string {
	return "colors.txt"
}
