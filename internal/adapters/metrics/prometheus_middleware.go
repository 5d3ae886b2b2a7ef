package metrics

import (
	"context"
	"strings"
	"time"

	"github.com/andrescamacho/domnus-go/internal/application/common"
	"github.com/andrescamacho/domnus-go/internal/application/mediator"
)

// PrometheusMiddleware creates a middleware that records request execution metrics
//
// Request names are the bare type name ("*commands.SettleCommand" becomes
// "SettleCommand"). A rejected order counts as success: the handler ran and
// answered; only errors count as failures.
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		commandName := common.RequestName(request)
		start := time.Now()

		response, err := next(ctx, request)

		collector.RecordCommandExecution(commandName, time.Since(start).Seconds(), err == nil)
		return response, err
	}
}

// isQuery reports whether a request name follows the query naming convention
func isQuery(name string) bool {
	return strings.HasSuffix(name, "Query")
}
