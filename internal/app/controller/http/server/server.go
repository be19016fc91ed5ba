package http

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/orderline/go-order-system/internal/app/config"
	"github.com/orderline/go-order-system/internal/app/controller/http/middleware/logger"
	"github.com/orderline/go-order-system/internal/app/controller/http/middleware/requestid"
	"github.com/orderline/go-order-system/internal/app/controller/http/orders"
)

type HTTPServer struct {
	server *http.Server

	config config.Config
	orders orders.Order
}

func New(config config.Config, processor orders.OrderProcessor) *HTTPServer {
	order := orders.New(processor)

	mux := createMux(order)

	server := &http.Server{
		Addr:    config.NetAddr,
		Handler: mux,
	}

	return &HTTPServer{
		server: server,
		config: config,
		orders: order,
	}
}

func (s *HTTPServer) StartHTTPServer() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer cancel()

	go func() {
		err := s.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("fatal error while starting server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	zap.L().Info("Got interruption signal. Shutting down HTTP server gracefully...")
	err := s.server.Shutdown(context.Background())
	if err != nil {
		zap.L().Error("error while shutting down server", zap.Error(err))
	}
}

func createMux(order orders.Order) *chi.Mux {
	r := chi.NewRouter()

	r.Use(requestid.RequestIDMiddleware)
	r.Use(logger.LoggerMiddleware)

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", order.CreateOrder())
		r.Get("/", order.ListOrders())
		r.Get("/{id}", order.GetOrder())
		r.Patch("/{id}/cancel", order.CancelOrder())
		r.Put("/{id}/status", order.UpdateStatus())
	})

	return r
}
