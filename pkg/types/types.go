package types

import (
	"bytes"
	"net/http"
	"net/url"
)

// BodyKind identifies which variant an EventBody carries.
type BodyKind int

const (
	BodyEmpty BodyKind = iota
	BodyText
	BodyBinary
)

// String returns a human-readable name for the body kind.
func (k BodyKind) String() string {
	switch k {
	case BodyText:
		return "text"
	case BodyBinary:
		return "binary"
	default:
		return "empty"
	}
}

// EventBody is the body variant of an inbound invocation event.
// Exactly one of Text or Data is populated, selected by Kind.
type EventBody struct {
	Kind BodyKind
	Text string
	Data []byte
}

// TextBody returns an EventBody carrying UTF-8 text.
func TextBody(s string) EventBody {
	return EventBody{Kind: BodyText, Text: s}
}

// BinaryBody returns an EventBody carrying raw bytes.
func BinaryBody(b []byte) EventBody {
	return EventBody{Kind: BodyBinary, Data: b}
}

// Take moves the body payload out as a byte slice, leaving the EventBody
// empty. Text bodies are converted to their UTF-8 bytes; binary bodies are
// handed over without copying. An empty body yields nil.
func (b *EventBody) Take() []byte {
	var payload []byte
	switch b.Kind {
	case BodyText:
		payload = []byte(b.Text)
	case BodyBinary:
		payload = b.Data
	}
	*b = EventBody{}
	return payload
}

// Len reports the payload size in bytes.
func (b EventBody) Len() int {
	if b.Kind == BodyText {
		return len(b.Text)
	}
	return len(b.Data)
}

// QueryParam is one raw (already decoded) query string pair. Keys may repeat
// across a parameter list.
type QueryParam struct {
	Key   string
	Value string
}

// Event represents one inbound invocation delivered by the serverless host.
// The adapter owns the event exclusively for the duration of the invocation;
// normalization consumes the header map and body in place.
type Event struct {
	Method    string
	Scheme    string
	Authority string
	Path      string
	Query     []QueryParam
	Header    http.Header
	Body      EventBody
}

// Request is the normalized request handed to the wrapped service. The body
// payload is pull-based but seeded eagerly, since the full event body is
// already in memory when the request is built.
type Request struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   *bytes.Reader
}

// Response is what the wrapped service returns: a status code, headers, and
// a body producer that may be already materialized or lazily chunked.
// Ownership transfers to the adapter once the service call returns.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       BodyProducer
}

// Result is the terminal invocation response handed back to the invocation
// sink. When Binary is set the payload is in Data and is transmitted as an
// opaque binary payload; otherwise Text carries a valid UTF-8 string.
type Result struct {
	StatusCode int
	Header     http.Header
	Binary     bool
	Text       string
	Data       []byte
}

// ServiceConfig carries per-instance settings handed to the ServiceFactory
// at startup. It is used for one-time setup, not per-call.
type ServiceConfig struct {
	// LocalAddr is the nominal local address the wrapped service believes it
	// is serving on. The adapter never binds a socket; the value exists so
	// services that key behavior off their listen address keep working.
	LocalAddr string
}

// DefaultServiceConfig returns the default per-instance service settings.
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{LocalAddr: "127.0.0.1:8080"}
}
