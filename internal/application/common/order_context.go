package common

import (
	"context"
	"reflect"
	"strings"

	"github.com/andrescamacho/domnus-go/internal/application/mediator"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// WithOrderContext attaches an order context to ctx
func WithOrderContext(ctx context.Context, oc *shared.OrderContext) context.Context {
	return context.WithValue(ctx, orderContextKey, oc)
}

// OrderContextFromContext returns the attached order context, or nil
func OrderContextFromContext(ctx context.Context) *shared.OrderContext {
	oc, _ := ctx.Value(orderContextKey).(*shared.OrderContext)
	return oc
}

// OrderContextMiddleware attaches an order context built from the request's
// RequestID field (when present) and logs every dispatched request.
// An order context already on ctx is kept.
func OrderContextMiddleware(source string) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		kingdomID, requestID := extractOrderIdentifiers(request)

		if OrderContextFromContext(ctx) == nil {
			ctx = WithOrderContext(ctx, shared.NewOrderContext(requestID, source))
		}

		logger := LoggerFromContext(ctx)
		metadata := map[string]interface{}{
			"request": RequestName(request),
			"source":  source,
		}
		if kingdomID != nil {
			metadata["kingdom_id"] = kingdomID.Value()
		}
		if requestID != "" {
			metadata["request_id"] = requestID
		}
		logger.Log(LevelDebug, "Dispatching request", metadata)

		response, err := next(ctx, request)
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log(LevelWarn, "Request failed", metadata)
		}
		return response, err
	}
}

// RequestName strips the pointer and package prefix from a request's type name
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// extractOrderIdentifiers uses reflection to read KingdomID and RequestID fields
func extractOrderIdentifiers(request mediator.Request) (*shared.KingdomID, string) {
	requestValue := reflect.ValueOf(request)
	if requestValue.Kind() == reflect.Ptr {
		requestValue = requestValue.Elem()
	}

	if requestValue.Kind() != reflect.Struct {
		return nil, ""
	}

	var kingdomID *shared.KingdomID
	if field := requestValue.FieldByName("KingdomID"); field.IsValid() {
		if id, ok := field.Interface().(shared.KingdomID); ok {
			kingdomID = &id
		}
	}

	var requestID string
	if field := requestValue.FieldByName("RequestID"); field.IsValid() && field.Kind() == reflect.String {
		requestID = field.String()
	}

	return kingdomID, requestID
}
