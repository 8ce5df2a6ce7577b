//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	initOnce sync.Once
	initErr  error
	owner    *selectionOwner
)

// errNoImage is reported when the selection owner refuses the PNG target.
var errNoImage = errors.New("clipboard does not contain image data")

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = ErrNoDisplay
			return
		}
		o, err := newSelectionOwner()
		if err != nil {
			initErr = fmt.Errorf("clipboard: %w", err)
			return
		}
		owner = o
	})
	return initErr
}

func writePNG(data []byte) error {
	return owner.publish(data)
}

func readPNG() ([]byte, error) {
	return fetchSelection(owner.names, owner.names.png)
}

// atomNames holds the interned atoms the clipboard protocol needs.
type atomNames struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	png       xproto.Atom
	transfer  xproto.Atom
}

func intern(conn *xgb.Conn) (atomNames, error) {
	var names atomNames
	for _, a := range []struct {
		dst  *xproto.Atom
		name string
	}{
		{&names.clipboard, "CLIPBOARD"},
		{&names.targets, "TARGETS"},
		{&names.png, "image/png"},
		{&names.transfer, "ANNOTATOR_CLIPBOARD"},
	} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(a.name)), a.name).Reply()
		if err != nil {
			return atomNames{}, fmt.Errorf("intern %s: %w", a.name, err)
		}
		*a.dst = reply.Atom
	}
	return names, nil
}

// hiddenWindow creates a 1x1 unmapped window listening for mask.
func hiddenWindow(conn *xgb.Conn, class uint16, mask uint32) (xproto.Window, error) {
	screen := xproto.Setup(conn).DefaultScreen(conn)
	win, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}
	depth, visual := screen.RootDepth, screen.RootVisual
	if class == xproto.WindowClassInputOnly {
		depth, visual = 0, 0
	}
	err = xproto.CreateWindowChecked(conn, depth, win, screen.Root, 0, 0, 1, 1, 0,
		class, visual, xproto.CwEventMask, []uint32{mask}).Check()
	if err != nil {
		return 0, err
	}
	return win, nil
}

// selectionOwner keeps the CLIPBOARD selection for the life of the process
// and serves the last published PNG to requestors.
type selectionOwner struct {
	conn  *xgb.Conn
	win   xproto.Window
	names atomNames

	mu  sync.RWMutex
	png []byte
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	win, err := hiddenWindow(conn, xproto.WindowClassInputOutput,
		xproto.EventMaskPropertyChange|xproto.EventMaskStructureNotify)
	if err != nil {
		conn.Close()
		return nil, err
	}
	names, err := intern(conn)
	if err != nil {
		xproto.DestroyWindow(conn, win)
		conn.Close()
		return nil, err
	}
	o := &selectionOwner{conn: conn, win: win, names: names}
	go o.serve()
	return o, nil
}

func (o *selectionOwner) publish(data []byte) error {
	o.mu.Lock()
	o.png = append(o.png[:0:0], data...)
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.win, o.names.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) current() []byte {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.png
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if ev == nil && err == nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.reply(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.png = nil
			o.mu.Unlock()
		}
	}
}

// reply writes the requested conversion onto the requestor's property and
// notifies it. Unsupported targets are refused with a None property.
func (o *selectionOwner) reply(req xproto.SelectionRequestEvent) {
	prop := req.Property
	if prop == xproto.AtomNone {
		prop = req.Target
	}
	typ, format, payload, ok := o.convert(req.Target, o.current())
	if ok {
		n := uint32(len(payload)) / uint32(format/8)
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, req.Requestor, prop, typ, format, n, payload)
	} else {
		prop = xproto.AtomNone
	}
	ev := xproto.SelectionNotifyEvent{
		Time:      req.Time,
		Requestor: req.Requestor,
		Selection: req.Selection,
		Target:    req.Target,
		Property:  prop,
	}
	xproto.SendEvent(o.conn, false, req.Requestor, 0, string(ev.Bytes()))
}

func (o *selectionOwner) convert(target xproto.Atom, data []byte) (xproto.Atom, byte, []byte, bool) {
	switch {
	case target == o.names.targets:
		offered := []xproto.Atom{o.names.targets}
		if len(data) > 0 {
			offered = append(offered, o.names.png)
		}
		buf := make([]byte, 4*len(offered))
		for i, a := range offered {
			xgb.Put32(buf[4*i:], uint32(a))
		}
		return xproto.AtomAtom, 32, buf, true
	case target == o.names.png && len(data) > 0:
		return o.names.png, 8, data, true
	}
	return 0, 0, nil, false
}

// fetchSelection asks the current CLIPBOARD owner to convert to target
// using a short lived connection and waits for the answer.
func fetchSelection(names atomNames, target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	win, err := hiddenWindow(conn, xproto.WindowClassInputOnly, xproto.EventMaskPropertyChange)
	if err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, win)

	err = xproto.ConvertSelectionChecked(conn, win, names.clipboard, target, names.transfer, xproto.TimeCurrentTime).Check()
	if err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		switch {
		case err != nil:
			return nil, err
		case ev == nil:
			return nil, errors.New("clipboard connection closed")
		}
		notify, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if notify.Property == xproto.AtomNone {
			return nil, errNoImage
		}
		prop, perr := xproto.GetProperty(conn, true, win, notify.Property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return append([]byte(nil), prop.Value...), nil
	}
}
