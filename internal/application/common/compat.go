package common

// Re-exports of the mediator types so handlers only import common.

import (
	"github.com/andrescamacho/domnus-go/internal/application/mediator"
)

// Mediator types
type (
	Request        = mediator.Request
	Response       = mediator.Response
	RequestHandler = mediator.RequestHandler
	HandlerFunc    = mediator.HandlerFunc
	Middleware     = mediator.Middleware
	Mediator       = mediator.Mediator
)

// Mediator functions
var (
	NewMediator = mediator.NewMediator
)
