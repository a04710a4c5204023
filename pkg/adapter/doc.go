/*
Package adapter bridges a long-lived, in-process HTTP-style service to the
AWS Lambda invocation model.

Each API Gateway proxy invocation is converted into one service call, the
call is driven to completion synchronously on a single adapter-owned run
loop, and the streamed response body is materialized and encoded back into
one complete proxy response.

# Architecture Role

The adapter orchestrates the per-invocation pipeline:

	┌─────────────────────────────────────────────┐
	│            AWS Lambda Runtime               │
	└─────────────────────────────────────────────┘
	                      │ one proxy event per invocation
	┌─────────────────────────────────────────────┐
	│              ADAPTER LAYER                  │ ← This Package
	│  • Event Decoding & Normalization           │
	│  • Run Loop Scheduling                      │
	│  • Body Materialization & Encoding          │
	│  • Error Response Synthesis                 │
	└─────────────────────────────────────────────┘
	                      │ one Request/Response per invocation
	┌─────────────────────────────────────────────┐
	│           Wrapped HTTP Service              │
	└─────────────────────────────────────────────┘

# Usage Example

Running a standard http.Handler behind API Gateway:

	mux := http.NewServeMux()
	mux.HandleFunc("/items", listItems)

	err := adapter.New(httpservice.Factory(func() http.Handler { return mux })).
		BinaryMediaTypes("application/octet-stream", "image/png").
		Start(context.Background())
	if err != nil {
		log.Fatal(err)
	}

Start only returns on a startup failure; once event polling begins, the
Lambda runtime owns the process.

# Concurrency Model

One adapter instance handles invocations strictly sequentially: the service
call and every body-draining fold run on a single long-lived run loop
created at Init. No two invocations are ever in flight concurrently within
one instance. There is no internal timeout or cancellation; the function
timeout configured on the host is the only limit.

# Response Encoding

A configurable predicate classifies each response, by content type, as
binary (base64-encoded payload) or text (UTF-8 validated). Responses
default to text; a text-classified body that is not valid UTF-8 fails the
invocation rather than being silently relabeled.

# Known Limitations

Extension data on the inbound event (path parameters, stage variables, the
API Gateway request context) is not forwarded to the wrapped service.
Streaming response bodies back to the invoker is not supported; the full
body is materialized before replying.
*/
package adapter
