package mediator

import (
	"context"
)

// Request is an order command or an overview query
type Request interface{}

// Response is whatever the handler for a request returns
type Response interface{}

// RequestHandler serves one concrete request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc adapts a plain function to the handler signature
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware sees every request before its handler, e.g. order context or command metrics
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// chain wraps handler so that middlewares[0] runs outermost
func chain(middlewares []Middleware, handler HandlerFunc) HandlerFunc {
	next := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		mw, inner := middlewares[i], next
		next = func(ctx context.Context, request Request) (Response, error) {
			return mw(ctx, request, inner)
		}
	}
	return next
}
