package gesture

// Signal is a payload-free event channel. Handlers run synchronously in
// subscription order.
type Signal struct {
	handlers []signalHandler
	nextID   int
}

type signalHandler struct {
	id int
	fn func()
}

// Subscribe adds fn and returns a func that removes it.
func (s *Signal) Subscribe(fn func()) func() {
	id := s.nextID
	s.nextID++
	s.handlers = append(s.handlers, signalHandler{id: id, fn: fn})
	return func() {
		for i, h := range s.handlers {
			if h.id == id {
				s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish runs every subscribed handler. Handlers may unsubscribe while
// being dispatched.
func (s *Signal) Publish() {
	handlers := make([]signalHandler, len(s.handlers))
	copy(handlers, s.handlers)
	for _, h := range handlers {
		h.fn()
	}
}

// Len returns the number of subscribers.
func (s *Signal) Len() int {
	return len(s.handlers)
}
