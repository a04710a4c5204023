// Package encode decides whether a materialized response body is
// transmitted as text or as an opaque binary payload.
package encode

import (
	"net/http"
	"unicode/utf8"

	bridgeerrors "github.com/lambdabridge/lambdabridge/pkg/errors"
	"github.com/lambdabridge/lambdabridge/pkg/types"
)

// Classifier decides, given a content type (or an empty string when the
// content-type header is absent), whether a response body of that type is
// transmitted as a binary payload. A Classifier may capture mutable state;
// it is invoked exactly once per invocation and never concurrently.
type Classifier func(contentType string) bool

// DefaultClassifier transmits every response as text. Binary transmission is
// strictly opt-in per content type.
func DefaultClassifier(string) bool { return false }

// MediaTypes builds a Classifier from an explicit membership list of
// content-type strings.
func MediaTypes(mediaTypes ...string) Classifier {
	set := make([]string, len(mediaTypes))
	copy(set, mediaTypes)
	return func(contentType string) bool {
		for _, t := range set {
			if contentType == t {
				return true
			}
		}
		return false
	}
}

// Encode applies classify to the response's content type and produces the
// outbound body variant on res. Binary classification always succeeds and
// carries the raw bytes unmodified. Text classification requires the body
// to be valid UTF-8; anything else is a hard TEXT_ENCODING failure of the
// invocation, never a silent coercion to binary.
func Encode(payload []byte, header http.Header, classify Classifier, res *types.Result) error {
	contentType := ""
	if header != nil {
		contentType = header.Get("Content-Type")
	}
	if classify == nil {
		classify = DefaultClassifier
	}

	if classify(contentType) {
		res.Binary = true
		res.Data = payload
		return nil
	}

	if !utf8.Valid(payload) {
		return bridgeerrors.NewError(bridgeerrors.ErrCodeTextEncoding,
			"response body is not valid UTF-8").
			WithComponent("encode").
			WithContext("content_type", contentType)
	}
	res.Binary = false
	res.Text = string(payload)
	return nil
}
