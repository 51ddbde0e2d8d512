package pipeline

// Queue decouples a producer from a slow consumer. Items are delivered in
// arrival order and never dropped; the backlog grows as needed. The output is
// closed once the input is closed and every queued item has been delivered,
// or as soon as done is closed, discarding whatever is still queued.
func Queue[T any](inCh <-chan T, done <-chan struct{}, initialCap int) <-chan T {
	outCh := make(chan T)

	go func() {
		defer close(outCh)

		pending := make([]T, 0, initialCap)
		in := inCh

		for in != nil || len(pending) > 0 {
			var (
				out  chan<- T
				next T
			)
			if len(pending) > 0 {
				out = outCh
				next = pending[0]
			}

			select {
			case item, ok := <-in:
				if !ok {
					in = nil
					continue
				}
				pending = append(pending, item)

			case out <- next:
				var zero T
				pending[0] = zero
				pending = pending[1:]

			case <-done:
				return
			}
		}
	}()

	return outCh
}
