package util

import (
	"io"
	"sync"
)

// BufferPool hands out fixed-size byte buffers for streaming uploads.
// Buffers are zeroed before they go back.
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a pool of buffers of the given size.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				b := make([]byte, size)
				return &b
			},
		},
	}
}

// Get retrieves a buffer. Its contents are undefined.
func (p *BufferPool) Get() []byte {
	return *p.pool.Get().(*[]byte)
}

// Put zeroes b and returns it to the pool. Buffers of the wrong size are dropped.
func (p *BufferPool) Put(b []byte) {
	if len(b) != p.size {
		return
	}
	clear(b)
	p.pool.Put(&b)
}

// Copy behaves like io.Copy but borrows its buffer from the pool.
func (p *BufferPool) Copy(dst io.Writer, src io.Reader) (int64, error) {
	buf := p.Get()
	defer p.Put(buf)
	return io.CopyBuffer(dst, src, buf)
}

// UploadPool provides 64 KB buffers for multipart upload bodies.
var UploadPool = NewBufferPool(64 * KB)
