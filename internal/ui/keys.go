package ui

import (
	"golang.org/x/mobile/event/key"

	"github.com/example/annotator/internal/shape"
)

// Action is a named command bound to keyboard shortcuts.
type Action string

const (
	ActionNone      Action = ""
	ActionArrow     Action = "arrow"
	ActionRectangle Action = "rectangle"
	ActionEllipse   Action = "ellipse"
	ActionBrush     Action = "brush"
	ActionText      Action = "text"
	ActionDelete    Action = "delete"
	ActionUndo      Action = "undo"
	ActionRedo      Action = "redo"
	ActionSave      Action = "save"
	ActionCopy      Action = "copy"
	ActionSmaller   Action = "smaller"
	ActionLarger    Action = "larger"
	ActionDeselect  Action = "deselect"
	ActionQuit      Action = "quit"
	// ActionColor1 to ActionColor7 pick a palette colour.
	ActionColor1 Action = "color1"
	ActionColor2 Action = "color2"
	ActionColor3 Action = "color3"
	ActionColor4 Action = "color4"
	ActionColor5 Action = "color5"
	ActionColor6 Action = "color6"
	ActionColor7 Action = "color7"
)

var colorActions = []Action{ActionColor1, ActionColor2, ActionColor3, ActionColor4, ActionColor5, ActionColor6, ActionColor7}

var toolActions = map[Action]shape.Kind{
	ActionArrow:     shape.Arrow,
	ActionRectangle: shape.Rectangle,
	ActionEllipse:   shape.Ellipse,
	ActionBrush:     shape.Brush,
	ActionText:      shape.Text,
}

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Code      key.Code
	Modifiers key.Modifiers
}

const modMask = key.ModControl | key.ModShift

var keyboardAction = map[KeyShortcut]Action{
	{Code: key.CodeA}:           ActionArrow,
	{Code: key.CodeR}:           ActionRectangle,
	{Code: key.CodeE}:           ActionEllipse,
	{Code: key.CodeB}:           ActionBrush,
	{Code: key.CodeT}:           ActionText,
	{Code: key.Code1}:           ActionColor1,
	{Code: key.Code2}:           ActionColor2,
	{Code: key.Code3}:           ActionColor3,
	{Code: key.Code4}:           ActionColor4,
	{Code: key.Code5}:           ActionColor5,
	{Code: key.Code6}:           ActionColor6,
	{Code: key.Code7}:           ActionColor7,
	{Code: key.CodeHyphenMinus}: ActionSmaller,
	{Code: key.CodeEqualSign}:   ActionLarger,
	{Code: key.CodeEqualSign, Modifiers: key.ModShift}: ActionLarger,
	{Code: key.CodeDeleteForward}:                      ActionDelete,
	{Code: key.CodeDeleteBackspace}:                    ActionDelete,
	{Code: key.CodeZ, Modifiers: key.ModControl}:       ActionUndo,
	{Code: key.CodeY, Modifiers: key.ModControl}:       ActionRedo,
	{Code: key.CodeZ, Modifiers: modMask}:              ActionRedo,
	{Code: key.CodeS, Modifiers: key.ModControl}:       ActionSave,
	{Code: key.CodeC, Modifiers: key.ModControl}:       ActionCopy,
	{Code: key.CodeEscape}:                             ActionDeselect,
	{Code: key.CodeQ}:                                  ActionQuit,
	{Code: key.CodeW, Modifiers: key.ModControl}:       ActionQuit,
}

// Translate maps a key press to its action. Releases and unbound keys give
// ActionNone.
func Translate(e key.Event) Action {
	if e.Direction == key.DirRelease {
		return ActionNone
	}
	return keyboardAction[KeyShortcut{Code: e.Code, Modifiers: e.Modifiers & modMask}]
}

// colorIndex returns the palette index of a colour action.
func colorIndex(a Action) (int, bool) {
	for i, c := range colorActions {
		if c == a {
			return i, true
		}
	}
	return 0, false
}
