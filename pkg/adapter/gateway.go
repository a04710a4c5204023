package adapter

import (
	"encoding/base64"
	"net/http"
	"sort"

	"github.com/aws/aws-lambda-go/events"

	bridgeerrors "github.com/lambdabridge/lambdabridge/pkg/errors"
	"github.com/lambdabridge/lambdabridge/pkg/types"
)

// eventFromProxy decodes an API Gateway proxy request into the internal
// event shape. Binary bodies arrive base64-encoded and are decoded here;
// a bad encoding fails the invocation with EVENT_DECODE.
//
// API Gateway delivers query parameters as a map, so the original inter-key
// order is not observable. Keys are emitted in sorted order to keep the
// reconstructed URI deterministic; the per-key value order is preserved.
func eventFromProxy(req *events.APIGatewayProxyRequest) (*types.Event, error) {
	header := http.Header{}
	if len(req.MultiValueHeaders) > 0 {
		for name, values := range req.MultiValueHeaders {
			for _, v := range values {
				header.Add(name, v)
			}
		}
	} else {
		for name, v := range req.Headers {
			header.Add(name, v)
		}
	}

	ev := &types.Event{
		Method:    req.HTTPMethod,
		Scheme:    header.Get("X-Forwarded-Proto"),
		Authority: header.Get("Host"),
		Path:      req.Path,
		Query:     queryParams(req),
		Header:    header,
	}
	if ev.Authority == "" {
		ev.Authority = req.RequestContext.DomainName
	}

	switch {
	case req.Body == "":
		// empty body variant
	case req.IsBase64Encoded:
		data, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, bridgeerrors.Wrap(bridgeerrors.ErrCodeEventDecode,
				"request body is not valid base64", err).
				WithComponent("adapter")
		}
		ev.Body = types.BinaryBody(data)
	default:
		ev.Body = types.TextBody(req.Body)
	}

	return ev, nil
}

func queryParams(req *events.APIGatewayProxyRequest) []types.QueryParam {
	multi := req.MultiValueQueryStringParameters
	if len(multi) == 0 && len(req.QueryStringParameters) > 0 {
		multi = make(map[string][]string, len(req.QueryStringParameters))
		for k, v := range req.QueryStringParameters {
			multi[k] = []string{v}
		}
	}
	if len(multi) == 0 {
		return nil
	}

	keys := make([]string, 0, len(multi))
	for k := range multi {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var params []types.QueryParam
	for _, k := range keys {
		for _, v := range multi[k] {
			params = append(params, types.QueryParam{Key: k, Value: v})
		}
	}
	return params
}

// resultToProxy encodes the terminal invocation result into the API Gateway
// proxy response shape. Binary payloads are base64-encoded with the
// IsBase64Encoded flag set; text payloads pass through unmodified.
func resultToProxy(res *types.Result) events.APIGatewayProxyResponse {
	out := events.APIGatewayProxyResponse{
		StatusCode:        res.StatusCode,
		Headers:           map[string]string{},
		MultiValueHeaders: map[string][]string{},
	}
	for name, values := range res.Header {
		out.MultiValueHeaders[name] = values
		if len(values) > 0 {
			out.Headers[name] = values[0]
		}
	}

	if res.Binary {
		out.Body = base64.StdEncoding.EncodeToString(res.Data)
		out.IsBase64Encoded = true
	} else {
		out.Body = res.Text
	}
	return out
}
