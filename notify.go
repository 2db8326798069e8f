package goblib

// Observer receives synchronous notifications from a Subject.
type Observer[T any] interface {
	OnNotify(subject *T, arg any)
}

// Subject is a synchronous observer registry. Embed it in the type you want
// to notify from and call Notify with the embedding value:
//
//	type Counter struct {
//		goblib.Subject[Counter]
//		n int
//	}
//
//	func (c *Counter) Inc() { c.n++; c.Notify(c, c.n) }
//
// Notification is immediate and single-threaded; Notify does not return
// until every observer has run.
type Subject[T any] struct {
	observers []Observer[T]
}

// Attach registers an observer. Panics when o is already attached.
func (s *Subject[T]) Attach(o Observer[T]) {
	for _, e := range s.observers {
		if e == o {
			panic("goblib: observer already attached")
		}
	}
	s.observers = append(s.observers, o)
}

// Detach removes an observer. No-op when o is not attached.
func (s *Subject[T]) Detach(o Observer[T]) {
	for i, e := range s.observers {
		if e == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// ClearObservers removes every observer.
func (s *Subject[T]) ClearObservers() {
	s.observers = s.observers[:0]
}

// Notify calls OnNotify on every attached observer, in attachment order.
func (s *Subject[T]) Notify(subject *T, arg any) {
	for _, e := range s.observers {
		e.OnNotify(subject, arg)
	}
}
