//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

// send uses the freedesktop.org notification service on the session bus.
func send(m message) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		"annotator", uint32(0), m.Icon, m.Title, m.Body, []string{}, map[string]dbus.Variant{}, int32(5000))
	return call.Err
}
