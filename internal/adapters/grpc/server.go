package grpc

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/andrescamacho/domnus-go/internal/application/common"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
)

// RequestIDHeader carries an idempotency key for PlaceOrder
const RequestIDHeader = "x-request-id"

// Server hosts the economy service until a shutdown signal arrives
type Server struct {
	grpcServer      *grpc.Server
	listener        net.Listener
	logger          common.Logger
	shutdownTimeout time.Duration

	// Shutdown coordination
	shutdownChan chan os.Signal
	done         chan struct{}
}

// NewServer listens on address (host:port) and registers the service
func NewServer(address string, service EconomyServiceServer, logger common.Logger, shutdownTimeout time.Duration) (*Server, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	return newServer(listener, service, logger, shutdownTimeout), nil
}

// NewServerWithListener registers the service on an existing listener
func NewServerWithListener(listener net.Listener, service EconomyServiceServer, logger common.Logger) *Server {
	return newServer(listener, service, logger, 0)
}

func newServer(listener net.Listener, service EconomyServiceServer, logger common.Logger, shutdownTimeout time.Duration) *Server {
	if logger == nil {
		logger = common.LoggerFromContext(context.Background())
	}
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		contextInterceptor(logger),
	))
	RegisterEconomyServiceServer(grpcServer, service)

	server := &Server{
		grpcServer:      grpcServer,
		listener:        listener,
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
		shutdownChan:    make(chan os.Signal, 1),
		done:            make(chan struct{}),
	}
	return server
}

// Addr returns the listening address
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Start serves until SIGINT/SIGTERM, then stops gracefully
func (s *Server) Start() error {
	signal.Notify(s.shutdownChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.shutdownChan)

	s.logger.Log(common.LevelInfo, "Economy service listening", map[string]interface{}{
		"address": s.listener.Addr().String(),
	})

	go s.handleShutdown()

	errChan := make(chan error, 1)
	go func() {
		if err := s.grpcServer.Serve(s.listener); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-s.done:
		s.gracefulStop()
		return nil
	}
}

// Serve serves without signal handling; Stop ends it
func (s *Server) Serve() error {
	return s.grpcServer.Serve(s.listener)
}

// Stop stops the server immediately
func (s *Server) Stop() {
	s.grpcServer.Stop()
}

// handleShutdown waits for a shutdown signal
func (s *Server) handleShutdown() {
	<-s.shutdownChan
	s.logger.Log(common.LevelInfo, "Shutdown signal received, stopping economy service", nil)
	close(s.done)
}

// gracefulStop drains in-flight requests, then forces a stop after the timeout
func (s *Server) gracefulStop() {
	if s.shutdownTimeout <= 0 {
		s.grpcServer.GracefulStop()
		return
	}
	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(s.shutdownTimeout):
		s.logger.Log(common.LevelWarn, "Graceful shutdown timed out, forcing stop", nil)
		s.grpcServer.Stop()
	}
}

// contextInterceptor attaches the logger and an order context to every call.
// The request ID comes from the x-request-id header when present.
func contextInterceptor(logger common.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		ctx = common.WithLogger(ctx, logger)
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if ids := md.Get(RequestIDHeader); len(ids) > 0 && ids[0] != "" {
				ctx = common.WithOrderContext(ctx, shared.NewOrderContext(ids[0], "grpc"))
			}
		}

		start := time.Now()
		resp, err := handler(ctx, req)
		fields := map[string]interface{}{
			"method":      info.FullMethod,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			fields["error"] = err.Error()
			logger.Log(common.LevelWarn, "RPC failed", fields)
		} else {
			logger.Log(common.LevelDebug, "RPC handled", fields)
		}
		return resp, err
	}
}
