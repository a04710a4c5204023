// Package fallback synthesizes best-effort error responses when a wrapped
// service call fails.
package fallback

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lambdabridge/lambdabridge/internal/body"
	"github.com/lambdabridge/lambdabridge/internal/bridge"
	bridgeerrors "github.com/lambdabridge/lambdabridge/pkg/errors"
	"github.com/lambdabridge/lambdabridge/pkg/types"
)

// Synthesize renders an error response for a failed service call and
// materializes its body best-effort. Failures implementing types.Renderer
// render themselves; structured bridge errors render via their HTTP status
// mapping; anything else becomes a plain 500 with the error text.
//
// If draining the rendered body itself fails, that secondary failure is
// logged and swallowed: the response keeps its status and headers and gets
// an empty body. A failed service call therefore always yields a fully
// formed response, at the cost of lost error detail in double-failure
// cases.
func Synthesize(ctx context.Context, b *bridge.Bridge, callErr error, log *slog.Logger) (status int, header http.Header, payload []byte) {
	resp := render(callErr)

	payload, err := body.Materialize(ctx, b, resp.Body)
	if err != nil {
		log.Warn("failed to extract the body of the error response, ignoring",
			"error", err)
		payload = nil
	}
	return resp.StatusCode, resp.Header, payload
}

func render(callErr error) *types.Response {
	if r, ok := callErr.(types.Renderer); ok {
		return r.RenderResponse()
	}
	var bridgeErr *bridgeerrors.BridgeError
	if errors.As(callErr, &bridgeErr) {
		return bridgeErr.RenderResponse()
	}
	return bridgeerrors.Wrap(bridgeerrors.ErrCodeServiceCall, callErr.Error(), callErr).
		RenderResponse()
}
