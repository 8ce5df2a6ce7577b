package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/example/annotator/internal/shape"
	"github.com/example/annotator/internal/ui"
)

// annotateCmd opens the annotation window.
type annotateCmd struct {
	src    source
	output string
	tool   string
	shadow bool
	*root
	fs *flag.FlagSet
}

func (a *annotateCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func (a *annotateCmd) Program() string {
	return a.subcommand("annotate")
}

func (a *annotateCmd) Template() string {
	return "annotate.txt"
}

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)
	a := &annotateCmd{root: r, fs: fs}
	fs.Usage = usageFunc(a)
	output := "annotated.png"
	if r != nil && r.config != nil && r.config.Output != "" {
		output = r.config.Output
	}
	fs.StringVar(&a.src.file, "file", "", "image file to annotate")
	fs.BoolVar(&a.src.fromClipboard, "from-clipboard", false, "annotate the image on the clipboard")
	fs.StringVar(&a.src.display, "display", "", "monitor to capture: index, name or primary")
	fs.BoolVar(&a.src.includeCursor, "include-cursor", false, "embed the cursor in captures when supported")
	fs.StringVar(&a.output, "output", output, "file written by ctrl+s")
	fs.StringVar(&a.tool, "tool", "arrow", "tool active when the window opens")
	fs.BoolVar(&a.shadow, "shadow", false, "add a drop shadow to saved and copied images")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	operands := fs.Args()
	if len(operands) > 0 {
		if !strings.EqualFold(operands[0], "capture") || len(operands) < 2 || len(operands) > 3 {
			return nil, &UsageError{of: a}
		}
		a.src.capture = strings.ToLower(operands[1])
		if len(operands) == 3 {
			a.src.region = operands[2]
		}
	}
	if err := a.src.validate(); err != nil {
		return nil, err
	}
	if a.src.file == "" && !a.src.fromClipboard && a.src.capture == "" {
		return nil, &UsageError{of: a}
	}
	if _, ok := shape.ParseKind(a.tool); !ok {
		return nil, fmt.Errorf("unknown tool %q", a.tool)
	}
	return a, nil
}

func (a *annotateCmd) Run() error {
	img, _, err := a.src.load(a.root)
	if err != nil {
		return err
	}
	opts, err := a.sessionOptions()
	if err != nil {
		return err
	}
	kind, _ := shape.ParseKind(a.tool)
	out := exporter{r: a.root, output: a.output, shadow: a.shadow}
	copier := out
	copier.toClipboard = true
	h := &ui.Host{
		Image:          img,
		Title:          "annotator: " + a.src.describe(),
		Theme:          a.theme,
		Logger:         a.log,
		InitialTool:    kind,
		Tolerance:      a.config.Hit.Tolerance,
		HandleRadius:   a.config.Hit.HandleRadius,
		SessionOptions: opts,
		Save:           out.export,
		Copy:           copier.export,
	}
	a.log.Debug("opening window", "source", a.src.describe(), "size", img.Bounds().Size())
	h.Run()
	return nil
}
