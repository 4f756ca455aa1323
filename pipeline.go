package feather2d

import "sync"

// task applies fn to every element, split in contiguous chunks over workersCount goroutines.
// It returns once every chunk is done. Elements must be independent of each other.
func task[T any](workersCount int, data []T, fn func(data T)) {
	dataSize := len(data)
	if workersCount <= 1 || dataSize <= 1 {
		for _, d := range data {
			fn(d)
		}
		return
	}

	workersCount = min(workersCount, dataSize)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	var wg sync.WaitGroup
	for start := 0; start < dataSize; start += chunkSize {
		wg.Add(1)
		go func(chunk []T) {
			defer wg.Done()
			for _, d := range chunk {
				fn(d)
			}
		}(data[start:min(start+chunkSize, dataSize)])
	}
	wg.Wait()
}
