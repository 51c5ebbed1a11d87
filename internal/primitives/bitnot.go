package primitives

import (
	"runtime"
	"sync"

	"github.com/hidenseek-go/imgcrypt/internal/imgbuf"
)

// bitNotPrimitive is a byte-wise bitwise complement; it is its own inverse
// and ignores the key entirely.
type bitNotPrimitive struct{}

func (bitNotPrimitive) Name() string { return NameBitNot }

// complementRows fans the byte-wise complement out over row ranges on a
// bounded worker pool. Each worker only ever touches its own row range, so
// the result is assembled without races and observable semantics stay
// sequential (§5 concurrency model).
func complementRows(in, out *imgbuf.Image) {
	rowBytes := in.Width * in.Channels
	workers := runtime.GOMAXPROCS(0)
	if workers > in.Height {
		workers = in.Height
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	rowsPerWorker := (in.Height + workers - 1) / workers
	for w := 0; w < workers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > in.Height {
			endRow = in.Height
		}
		if startRow >= endRow {
			continue
		}
		wg.Add(1)
		go func(startRow, endRow int) {
			defer wg.Done()
			lo := startRow * rowBytes
			hi := endRow * rowBytes
			for i := lo; i < hi; i++ {
				out.Pixels[i] = ^in.Pixels[i]
			}
		}(startRow, endRow)
	}
	wg.Wait()
}

func (p bitNotPrimitive) Encrypt(in *imgbuf.Image, key string) (*imgbuf.Image, error) {
	out := imgbuf.New(in.Width, in.Height, in.Channels)
	complementRows(in, out)
	return out, checkDimensions(in, out)
}

// Decrypt is identical to Encrypt: bitwise NOT is self-inverse.
func (p bitNotPrimitive) Decrypt(in *imgbuf.Image, key string) (*imgbuf.Image, error) {
	return p.Encrypt(in, key)
}
