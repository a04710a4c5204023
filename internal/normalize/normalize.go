// Package normalize converts inbound invocation events into the normalized
// request shape expected by the wrapped service, including URI
// reconstruction with canonical percent-encoding.
package normalize

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"

	bridgeerrors "github.com/lambdabridge/lambdabridge/pkg/errors"
	"github.com/lambdabridge/lambdabridge/pkg/types"
)

// Normalize builds a Request from an Event. The event is consumed in the
// process: its body and header map are moved into the request and left
// empty. Events with no scheme or authority have no valid origin and fail
// with a MISSING_ORIGIN error.
//
// Extension data carried by some invocation sources (path parameters, stage
// variables, request context) is not propagated.
func Normalize(ev *types.Event) (*types.Request, error) {
	if ev.Scheme == "" || ev.Authority == "" {
		return nil, bridgeerrors.NewError(bridgeerrors.ErrCodeMissingOrigin,
			"event has no scheme or authority").
			WithComponent("normalize").
			WithContext("path", ev.Path)
	}

	payload := ev.Body.Take()

	header := ev.Header
	if header == nil {
		header = http.Header{}
	}
	ev.Header = nil

	// The inbound path arrives in raw (encoded) form and must survive
	// serialization byte for byte. Storing it only in URL.Path would
	// re-escape any '%' already present, so the raw form is kept in RawPath
	// with the decoded form alongside it.
	decodedPath, err := url.PathUnescape(ev.Path)
	if err != nil {
		decodedPath = ev.Path
	}

	req := &types.Request{
		Method: ev.Method,
		URL: &url.URL{
			Scheme:   ev.Scheme,
			Host:     ev.Authority,
			Path:     decodedPath,
			RawPath:  ev.Path,
			RawQuery: EncodeQuery(ev.Query),
		},
		Header: header,
		Body:   bytes.NewReader(payload),
	}
	return req, nil
}

// EncodeQuery rebuilds a single encoded query string from an ordered
// parameter list. Each key and value is percent-encoded with a strict
// encode set that also escapes '%' itself, so previously-decoded percent
// signs are re-encoded rather than passed through. The output is canonical
// and always fully escaped, regardless of whether the input was already
// partially encoded. Zero parameters yield an empty string.
func EncodeQuery(params []types.QueryParam) string {
	if len(params) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(escape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(escape(p.Value))
	}
	return sb.String()
}

const upperhex = "0123456789ABCDEF"

// escape percent-encodes every byte outside the unreserved set of RFC 3986
// (ALPHA / DIGIT / "-" / "." / "_" / "~"). This is a superset of the
// baseline query encode set plus '%', which makes the encoding idempotent
// over decode/encode round trips.
func escape(s string) string {
	hexCount := 0
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			hexCount++
		}
	}
	if hexCount == 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2*hexCount)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldEscape(c) {
			sb.WriteByte('%')
			sb.WriteByte(upperhex[c>>4])
			sb.WriteByte(upperhex[c&0xf])
		} else {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func shouldEscape(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return false
	case c == '-' || c == '.' || c == '_' || c == '~':
		return false
	}
	return true
}
