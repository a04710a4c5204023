package types

import "context"

// Service defines the wrapped service abstraction: one call per invocation,
// returning a Response or an error. Implementations must tolerate sequential
// reinvocation but are never called concurrently by one adapter instance.
type Service interface {
	Call(ctx context.Context, req *Request) (*Response, error)
}

// ServiceFactory constructs the Service exactly once per adapter lifetime,
// bound to a per-instance configuration value. A factory error aborts
// adapter startup entirely.
type ServiceFactory func(ctx context.Context, cfg *ServiceConfig) (Service, error)

// BodyProducer yields a response body as a sequence of byte chunks. Next
// returns io.EOF after the final chunk; any other error aborts the body.
type BodyProducer interface {
	Next(ctx context.Context) ([]byte, error)
}

// Renderer is implemented by failure values that can render themselves into
// a best-effort error response. Failures that do not implement Renderer get
// a default rendering from the adapter.
type Renderer interface {
	RenderResponse() *Response
}

// ServiceFunc adapts a plain function to the Service interface.
type ServiceFunc func(ctx context.Context, req *Request) (*Response, error)

// Call invokes the function.
func (f ServiceFunc) Call(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}
