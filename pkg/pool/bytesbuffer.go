// Package pool recycles the buffers assets are assembled into.
package pool

import (
	"bytes"
	"sync"
)

const (
	defaultBufferSize = 1024 * 64
	// buffers that grew beyond this are dropped instead of recycled
	maxBufferSize = 1024 * 1024 * 8
)

var (
	BytesBuffer = bytesBufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, defaultBufferSize))
			},
		},
	}
)

type bytesBufferPool struct {
	pool sync.Pool
}

func (b *bytesBufferPool) Get() *bytes.Buffer {
	buf := b.pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func (b *bytesBufferPool) Put(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxBufferSize {
		return
	}
	buf.Reset()
	b.pool.Put(buf)
}
