package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/example/annotator/internal/gesture"
	"github.com/example/annotator/internal/history"
	"github.com/example/annotator/internal/script"
)

// replayCmd runs a gesture script headlessly.
type replayCmd struct {
	src         source
	scriptPath  string
	size        string
	output      string
	toClipboard bool
	shadow      bool
	*root
	fs *flag.FlagSet
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *replayCmd) Program() string {
	return c.subcommand("replay")
}

func (c *replayCmd) Template() string {
	return "replay.txt"
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	c := &replayCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.scriptPath, "script", "", "gesture script to run, - for stdin")
	fs.StringVar(&c.src.file, "file", "", "image to annotate")
	fs.BoolVar(&c.src.fromClipboard, "from-clipboard", false, "annotate the image on the clipboard")
	fs.StringVar(&c.size, "size", "800x600", "size of the blank white canvas used without -file")
	fs.StringVar(&c.output, "output", "annotated.png", "write the result to this file")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the result to the clipboard instead of writing a file")
	fs.BoolVar(&c.shadow, "shadow", false, "add a drop shadow to the result")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.scriptPath == "" || fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if err := c.src.validate(); err != nil {
		return nil, err
	}
	if c.src.fromClipboard && !c.toClipboard && !flagSet(fs, "output") {
		return nil, fmt.Errorf("output file is required when reading from the clipboard")
	}
	if _, err := parseSize(c.size); err != nil {
		return nil, err
	}
	return c, nil
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func (c *replayCmd) readScript() ([]script.Command, error) {
	var in io.Reader = os.Stdin
	if c.scriptPath != "-" {
		f, err := os.Open(c.scriptPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}
	cmds, err := script.Parse(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.scriptPath, err)
	}
	return cmds, nil
}

func (c *replayCmd) base() (*image.RGBA, error) {
	img, ok, err := c.src.load(c.root)
	if err != nil || ok {
		return img, err
	}
	size, err := parseSize(c.size)
	if err != nil {
		return nil, err
	}
	return blankImage(size, color.White), nil
}

func (c *replayCmd) Run() error {
	cmds, err := c.readScript()
	if err != nil {
		return err
	}
	base, err := c.base()
	if err != nil {
		return err
	}
	opts, err := c.sessionOptions()
	if err != nil {
		return err
	}
	opts = append(opts, gesture.WithTester(c.tester()))

	stack := history.New(history.WithLogger(c.log))
	runner := script.NewRunner(stack, base.Bounds().Size(), c.log, opts...)
	defer runner.Session().Close()
	if err := runner.Run(c.ctx, cmds); err != nil {
		return fmt.Errorf("%s: %w", c.scriptPath, err)
	}
	c.log.Debug("replayed script", "commands", len(cmds), "shapes", len(stack.Records()), "history", stack.Len())
	out := exporter{r: c.root, output: c.output, toClipboard: c.toClipboard, shadow: c.shadow}
	return out.export(runner.Render(base))
}
