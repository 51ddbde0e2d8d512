package pipeline

import (
	"deployer/internal/model"
	"path/filepath"
)

// FilterPath forwards only the events concerning one of paths. Error events
// always pass so the consumer can report them. The stage gives up pending
// sends once done is closed.
func FilterPath(inCh <-chan model.ChangeEvent, done <-chan struct{}, paths ...string) <-chan model.ChangeEvent {
	outCh := make(chan model.ChangeEvent, cap(inCh))

	want := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		want[filepath.Clean(p)] = struct{}{}
	}

	go func() {
		defer close(outCh)

		for event := range inCh {
			if event.Type != model.EventError {
				if _, ok := want[filepath.Clean(event.Path)]; !ok {
					continue
				}
			}

			select {
			case outCh <- event:
			case <-done:
				return
			}
		}
	}()

	return outCh
}
