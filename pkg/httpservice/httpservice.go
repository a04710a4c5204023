// Package httpservice adapts a standard net/http handler to the
// types.Service interface so any http.Handler can run behind the adapter.
package httpservice

import (
	"bytes"
	"context"
	"net/http"

	"github.com/lambdabridge/lambdabridge/pkg/types"
)

// HandlerService wraps an http.Handler as a types.Service. Each Call runs
// the handler against an in-memory response writer; no socket is involved.
type HandlerService struct {
	handler http.Handler
}

// Wrap creates a HandlerService around h.
func Wrap(h http.Handler) *HandlerService {
	return &HandlerService{handler: h}
}

// Factory returns a types.ServiceFactory that builds the service exactly
// once from the handler produced by build.
func Factory(build func() http.Handler) types.ServiceFactory {
	return func(ctx context.Context, cfg *types.ServiceConfig) (types.Service, error) {
		return Wrap(build()), nil
	}
}

// Call serves one request through the wrapped handler and captures the
// response in memory.
func (s *HandlerService) Call(ctx context.Context, req *types.Request) (*types.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL.String(), req.Body)
	if err != nil {
		return nil, err
	}
	for name, values := range req.Header {
		httpReq.Header[name] = values
	}
	if host := req.Header.Get("Host"); host != "" {
		httpReq.Host = host
	}

	rec := newRecorder()
	s.handler.ServeHTTP(rec, httpReq)

	return &types.Response{
		StatusCode: rec.status,
		Header:     rec.header,
		Body:       types.NewBytesBody(rec.body.Bytes()),
	}, nil
}

// recorder is a minimal in-memory http.ResponseWriter.
type recorder struct {
	header      http.Header
	body        *bytes.Buffer
	status      int
	wroteHeader bool
}

func newRecorder() *recorder {
	return &recorder{
		header: http.Header{},
		body:   &bytes.Buffer{},
		status: http.StatusOK,
	}
}

func (r *recorder) Header() http.Header {
	return r.header
}

func (r *recorder) Write(p []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	return r.body.Write(p)
}

func (r *recorder) WriteHeader(status int) {
	if r.wroteHeader {
		return
	}
	r.wroteHeader = true
	r.status = status
}
