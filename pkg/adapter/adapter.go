package adapter

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lambdabridge/lambdabridge/internal/body"
	"github.com/lambdabridge/lambdabridge/internal/bridge"
	"github.com/lambdabridge/lambdabridge/internal/config"
	"github.com/lambdabridge/lambdabridge/internal/encode"
	"github.com/lambdabridge/lambdabridge/internal/fallback"
	"github.com/lambdabridge/lambdabridge/internal/metrics"
	"github.com/lambdabridge/lambdabridge/internal/normalize"
	bridgeerrors "github.com/lambdabridge/lambdabridge/pkg/errors"
	"github.com/lambdabridge/lambdabridge/pkg/types"
)

// Adapter bridges a wrapped service to the AWS Lambda invocation model. One
// adapter instance handles invocations strictly sequentially on a single
// run loop; it holds no state across invocations beyond the one-time
// initialized service and that run loop.
type Adapter struct {
	factory    types.ServiceFactory
	classify   encode.Classifier
	classified bool
	logger     *slog.Logger
	loggerSet  bool
	svcCfg     *types.ServiceConfig
	svcCfgSet  bool
	configFile string

	bridge    *bridge.Bridge
	service   types.Service
	collector *metrics.Collector
}

// New constructs an Adapter around a service factory. The factory runs
// exactly once, during Init, bound to the per-instance service
// configuration.
func New(factory types.ServiceFactory) *Adapter {
	return &Adapter{
		factory:  factory,
		classify: encode.DefaultClassifier,
		logger:   slog.Default(),
		svcCfg:   types.DefaultServiceConfig(),
	}
}

// BinaryMediaTypeFunc sets the predicate that, given a content type (or an
// empty string if the content-type header is missing), decides whether the
// response of that content type is transmitted as a binary payload.
//
// If the predicate returns false and the response body is not valid UTF-8,
// the invocation fails with a TEXT_ENCODING error. The default predicate
// always returns false.
func (a *Adapter) BinaryMediaTypeFunc(fn func(contentType string) bool) *Adapter {
	a.classify = encode.Classifier(fn)
	a.classified = true
	return a
}

// BinaryMediaTypes sets the set of content types transmitted as binary
// response payloads. This method is a convenience wrapper for
// BinaryMediaTypeFunc.
func (a *Adapter) BinaryMediaTypes(mediaTypes ...string) *Adapter {
	a.classify = encode.MediaTypes(mediaTypes...)
	a.classified = true
	return a
}

// WithLogger sets the structured logger used by the adapter.
func (a *Adapter) WithLogger(logger *slog.Logger) *Adapter {
	a.logger = logger
	a.loggerSet = true
	return a
}

// WithServiceConfig overrides the per-instance configuration handed to the
// service factory.
func (a *Adapter) WithServiceConfig(cfg *types.ServiceConfig) *Adapter {
	a.svcCfg = cfg
	a.svcCfgSet = true
	return a
}

// WithConfigFile points the adapter at a YAML configuration file, loaded
// during Init. Environment variables override file values; explicit fluent
// options override both.
func (a *Adapter) WithConfigFile(path string) *Adapter {
	a.configFile = path
	return a
}

// MetricsRegistry returns the Prometheus registry holding invocation
// metrics, or nil before Init or when metrics are disabled.
func (a *Adapter) MetricsRegistry() *prometheus.Registry {
	return a.collector.Registry()
}

// Init performs one-time startup: configuration loading, metrics setup,
// run loop creation, and the single service factory call. Any failure here
// is fatal to the adapter, not to an individual invocation. Calling Init on
// an already-initialized adapter is an error; the existing run loop and
// service stay in place.
func (a *Adapter) Init(ctx context.Context) error {
	if a.service != nil {
		return bridgeerrors.NewError(bridgeerrors.ErrCodeInternalError,
			"adapter is already initialized").WithComponent("adapter")
	}

	cfg, err := config.Load(a.configFile)
	if err != nil {
		return bridgeerrors.Wrap(bridgeerrors.ErrCodeConfigLoad,
			"loading adapter configuration failed", err).
			WithComponent("adapter")
	}

	if !a.classified && len(cfg.Encoding.BinaryMediaTypes) > 0 {
		a.classify = encode.MediaTypes(cfg.Encoding.BinaryMediaTypes...)
	}
	if !a.loggerSet {
		a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLogLevel(cfg.Global.LogLevel),
		}))
	}
	if !a.svcCfgSet {
		a.svcCfg = &types.ServiceConfig{LocalAddr: cfg.Service.LocalAddr}
	}

	collector, err := metrics.NewCollector(&metrics.Config{
		Enabled:   cfg.Metrics.Enabled,
		Namespace: cfg.Metrics.Namespace,
	})
	if err != nil {
		return bridgeerrors.Wrap(bridgeerrors.ErrCodeInternalError,
			"metrics setup failed", err).WithComponent("adapter")
	}
	a.collector = collector

	a.bridge = bridge.New()

	service, err := bridge.RunResult(a.bridge, func() (types.Service, error) {
		return a.factory(ctx, a.svcCfg)
	})
	if err != nil {
		a.bridge.Close()
		a.bridge = nil
		return bridgeerrors.Wrap(bridgeerrors.ErrCodeServiceInit,
			"service factory failed", err).WithComponent("adapter")
	}
	a.service = service

	a.logger.Debug("adapter initialized", "local_addr", a.svcCfg.LocalAddr)
	return nil
}

// Start runs Init and then begins polling for API Gateway events. It only
// returns on a startup failure; once polling starts the Lambda runtime owns
// the process.
func (a *Adapter) Start(ctx context.Context) error {
	if err := a.Init(ctx); err != nil {
		return err
	}
	lambda.StartWithOptions(a.Handle, lambda.WithContext(ctx))
	return nil
}

// Close stops the adapter's run loop. Invocations submitted afterwards fail
// with a BRIDGE_CLOSED error.
func (a *Adapter) Close() {
	if a.bridge != nil {
		a.bridge.Close()
	}
}

// Handle processes one invocation: the proxy event is normalized into a
// request, the wrapped service is driven to completion on the run loop, and
// the response body is materialized and encoded into exactly one proxy
// response. A failed service call is recovered into a best-effort error
// response; event decoding, success-path body materialization, and text
// encoding failures are returned as handler errors and fail the invocation.
func (a *Adapter) Handle(ctx context.Context, proxyReq events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()

	if a.service == nil {
		return events.APIGatewayProxyResponse{}, bridgeerrors.NewError(
			bridgeerrors.ErrCodeInternalError, "adapter is not initialized").
			WithComponent("adapter")
	}

	ev, err := eventFromProxy(&proxyReq)
	if err != nil {
		return a.fail(start, err)
	}

	req, err := normalize.Normalize(ev)
	if err != nil {
		return a.fail(start, err)
	}
	a.logger.Debug("reconstructed URI", "uri", req.URL.String())

	outcome := metrics.OutcomeSuccess
	var (
		payload []byte
		res     types.Result
	)

	resp, callErr := bridge.RunResult(a.bridge, func() (*types.Response, error) {
		return a.service.Call(ctx, req)
	})
	if callErr == nil {
		payload, err = body.Materialize(ctx, a.bridge, resp.Body)
		if err != nil {
			a.logger.Debug("extracting the response body failed, treating it as a handler error",
				"error", err)
			return a.fail(start, err)
		}
		res.StatusCode = resp.StatusCode
		res.Header = resp.Header
	} else {
		a.logger.Debug("got a service error, generating an error response",
			"error", callErr)
		outcome = metrics.OutcomeFallback
		res.StatusCode, res.Header, payload = fallback.Synthesize(ctx, a.bridge, callErr, a.logger)
	}

	if err := encode.Encode(payload, res.Header, a.classify, &res); err != nil {
		return a.fail(start, err)
	}
	a.logger.Debug("encoded response body",
		"binary", res.Binary,
		"content_type", res.Header.Get("Content-Type"))

	a.collector.RecordInvocation(outcome, time.Since(start), len(payload))
	return resultToProxy(&res), nil
}

// fail records an unrecovered failure and surfaces it as a handler error,
// marking the invocation attempt as failed by the host.
func (a *Adapter) fail(start time.Time, err error) (events.APIGatewayProxyResponse, error) {
	var bridgeErr *bridgeerrors.BridgeError
	if errors.As(err, &bridgeErr) {
		a.collector.RecordError(string(bridgeErr.Code))
	}
	a.collector.RecordInvocation(metrics.OutcomeError, time.Since(start), 0)
	return events.APIGatewayProxyResponse{}, err
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
