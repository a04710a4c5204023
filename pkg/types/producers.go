package types

import (
	"context"
	"io"
)

// BytesBody is a BodyProducer over an already-materialized payload. It
// yields the payload as a single chunk.
type BytesBody struct {
	data []byte
	done bool
}

// NewBytesBody creates a producer over b. A nil or empty slice yields no
// chunks.
func NewBytesBody(b []byte) *BytesBody {
	return &BytesBody{data: b, done: len(b) == 0}
}

// Next yields the payload once, then io.EOF.
func (p *BytesBody) Next(ctx context.Context) ([]byte, error) {
	if p.done {
		return nil, io.EOF
	}
	p.done = true
	return p.data, nil
}

// ChunkedBody is a BodyProducer over a fixed sequence of chunks.
type ChunkedBody struct {
	chunks [][]byte
	next   int
}

// NewChunkedBody creates a producer that yields each chunk in order.
func NewChunkedBody(chunks ...[]byte) *ChunkedBody {
	return &ChunkedBody{chunks: chunks}
}

// Next yields the next chunk, then io.EOF.
func (p *ChunkedBody) Next(ctx context.Context) ([]byte, error) {
	if p.next >= len(p.chunks) {
		return nil, io.EOF
	}
	chunk := p.chunks[p.next]
	p.next++
	return chunk, nil
}

// ReaderBody is a BodyProducer that drains an io.Reader in fixed-size
// chunks.
type ReaderBody struct {
	r   io.Reader
	buf []byte
}

const readerChunkSize = 32 * 1024

// NewReaderBody creates a producer that reads from r until EOF.
func NewReaderBody(r io.Reader) *ReaderBody {
	return &ReaderBody{r: r, buf: make([]byte, readerChunkSize)}
}

// Next yields the next chunk read from the underlying reader. The returned
// slice is only valid until the following call to Next.
func (p *ReaderBody) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, err := p.r.Read(p.buf)
	if n > 0 {
		return p.buf[:n], nil
	}
	if err == nil {
		err = io.EOF
	}
	return nil, err
}
