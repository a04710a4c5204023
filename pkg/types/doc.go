/*
Package types provides the core data structures and boundary interfaces for
LambdaBridge.

The package defines the contracts between the three layers of the system:

	┌─────────────────────────────────────────────┐
	│            AWS Lambda Runtime               │
	│        (API Gateway proxy events)           │
	└─────────────────────────────────────────────┘
	                      │
	┌─────────────────────────────────────────────┐
	│              Adapter Layer                  │
	│             (pkg/adapter)                   │
	└─────────────────────────────────────────────┘
	                      │
	┌─────────────────────────────────────────────┐
	│           Wrapped HTTP Service              │
	│     (types.Service / pkg/httpservice)       │
	└─────────────────────────────────────────────┘

# Core Types

Event:
One inbound invocation, already decoded from the wire format. Carries the
method, the URI split into scheme/authority/path, an ordered query parameter
list (duplicate keys permitted), headers, and a body variant that is empty,
text, or binary. The adapter owns the event exclusively for the duration of
the invocation.

Request:
The normalized form handed to the wrapped service: method, a reconstructed
URL, headers, and a pull-based payload seeded eagerly from the event body.

Response:
What the wrapped service returns: status code, headers, and a BodyProducer
that may yield the body in multiple chunks.

Result:
The terminal artifact handed back to the invocation sink: status code,
headers, and a body that is either UTF-8 text or raw binary payload.

# Interfaces

Service is the wrapped service abstraction: it accepts a Request and returns
a Response or an error. A ServiceFactory constructs the Service exactly once
per adapter lifetime, bound to a ServiceConfig.

BodyProducer abstracts a response body as a sequence of byte chunks
terminated by io.EOF or an error. Already-materialized bodies use BytesBody;
lazily produced bodies use ChunkedBody or ReaderBody.

Renderer is implemented by failure values that can render themselves into a
best-effort error Response.
*/
package types
