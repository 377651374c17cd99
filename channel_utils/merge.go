package channel_utils

import (
	"sync"

	"generate-narration-api/application/ports/outbound"
)

// MergeChannels fans several channels into one. The merged channel closes
// once every input closes. Workers come from the shared pool rather than
// fresh goroutines.
func MergeChannels[T any](workerPool outbound.TaskDispatcher, channels ...<-chan T) (<-chan T, error) {
	var wg sync.WaitGroup
	merged := make(chan T)

	drain := func(c <-chan T) {
		defer wg.Done()
		for val := range c {
			merged <- val
		}
	}

	wg.Add(len(channels))
	for _, c := range channels {
		ch := c
		if err := workerPool.Submit(func() {
			drain(ch)
		}); err != nil {
			return nil, err
		}
	}

	if err := workerPool.Submit(func() {
		wg.Wait()
		close(merged)
	}); err != nil {
		return nil, err
	}

	return merged, nil
}
