package body

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdabridge/lambdabridge/internal/bridge"
	bridgeerrors "github.com/lambdabridge/lambdabridge/pkg/errors"
	"github.com/lambdabridge/lambdabridge/pkg/types"
)

// failingProducer yields a few chunks and then a mid-stream error.
type failingProducer struct {
	chunks [][]byte
	err    error
}

func (p *failingProducer) Next(ctx context.Context) ([]byte, error) {
	if len(p.chunks) == 0 {
		return nil, p.err
	}
	chunk := p.chunks[0]
	p.chunks = p.chunks[1:]
	return chunk, nil
}

func TestMaterialize_FoldsChunks(t *testing.T) {
	b := bridge.New()
	defer b.Close()

	producer := types.NewChunkedBody([]byte("hello"), []byte(", "), []byte("world"))
	payload, err := Materialize(context.Background(), b, producer)
	require.NoError(t, err)
	assert.Equal(t, "hello, world", string(payload))
}

func TestMaterialize_BytesBody(t *testing.T) {
	b := bridge.New()
	defer b.Close()

	payload, err := Materialize(context.Background(), b, types.NewBytesBody([]byte("single shot")))
	require.NoError(t, err)
	assert.Equal(t, "single shot", string(payload))
}

func TestMaterialize_ReaderBody(t *testing.T) {
	b := bridge.New()
	defer b.Close()

	big := strings.Repeat("x", 100_000)
	payload, err := Materialize(context.Background(), b, types.NewReaderBody(strings.NewReader(big)))
	require.NoError(t, err)
	assert.True(t, bytes.Equal([]byte(big), payload))
}

func TestMaterialize_NilProducer(t *testing.T) {
	b := bridge.New()
	defer b.Close()

	payload, err := Materialize(context.Background(), b, nil)
	require.NoError(t, err)
	assert.Empty(t, payload)
}

func TestMaterialize_ErrorDiscardsPartialBytes(t *testing.T) {
	b := bridge.New()
	defer b.Close()

	streamErr := errors.New("stream broke")
	producer := &failingProducer{
		chunks: [][]byte{[]byte("partial"), []byte(" data")},
		err:    streamErr,
	}

	payload, err := Materialize(context.Background(), b, producer)
	require.Error(t, err)
	assert.Nil(t, payload)
	assert.ErrorIs(t, err, bridgeerrors.NewError(bridgeerrors.ErrCodeBodyRead, ""))
	assert.ErrorIs(t, err, streamErr)
}

func TestMaterialize_EOFIsNotAnError(t *testing.T) {
	b := bridge.New()
	defer b.Close()

	producer := &failingProducer{err: io.EOF}
	payload, err := Materialize(context.Background(), b, producer)
	require.NoError(t, err)
	assert.Empty(t, payload)
}
