// Package body folds chunked response body producers into contiguous
// buffers.
package body

import (
	"context"
	"errors"
	"io"

	"github.com/lambdabridge/lambdabridge/internal/bridge"
	bridgeerrors "github.com/lambdabridge/lambdabridge/pkg/errors"
	"github.com/lambdabridge/lambdabridge/pkg/types"
)

// Materialize drains producer into a single contiguous byte buffer on the
// adapter's run loop. The fold appends each yielded chunk to an accumulator
// until the producer reports io.EOF. On any other error the fold aborts and
// bytes already accumulated are discarded; no partial body is ever returned.
// A nil producer materializes to an empty body.
func Materialize(ctx context.Context, b *bridge.Bridge, producer types.BodyProducer) ([]byte, error) {
	if producer == nil {
		return nil, nil
	}
	buf, err := bridge.RunResult(b, func() ([]byte, error) {
		var acc []byte
		for {
			chunk, err := producer.Next(ctx)
			if errors.Is(err, io.EOF) {
				return acc, nil
			}
			if err != nil {
				return nil, err
			}
			acc = append(acc, chunk...)
		}
	})
	if err != nil {
		var bridgeErr *bridgeerrors.BridgeError
		if errors.As(err, &bridgeErr) {
			return nil, err
		}
		return nil, bridgeerrors.Wrap(bridgeerrors.ErrCodeBodyRead,
			"reading response body failed", err).WithComponent("body")
	}
	return buf, nil
}
