//go:build !linux && !darwin

package notify

func send(message) error {
	return nil
}
