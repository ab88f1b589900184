package export

import (
	"fmt"
	"image"
	"runtime"
	"sync"

	"github.com/san-kum/asciicanvas/internal/tileset"
)

// minChunk is the fewest frames handed to a single worker.
const minChunk = 8

// parallelFor runs fn over [0, n) split into contiguous chunks, one
// goroutine per chunk.
func parallelFor(n int, fn func(start, end int)) {
	workers := min(runtime.GOMAXPROCS(0), n/minChunk)
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// Bitmaps decodes every recorded frame. The first undecodable frame, in
// frame order, is reported.
func Bitmaps(frames [][]string, ts tileset.Tileset) ([]*image.Paletted, error) {
	images := make([]*image.Paletted, len(frames))
	errs := make([]error, len(frames))

	parallelFor(len(frames), func(start, end int) {
		for i := start; i < end; i++ {
			images[i], errs[i] = Bitmap(frames[i], ts)
		}
	})

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return images, nil
}
