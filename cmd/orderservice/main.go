package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/orderline/go-order-system/internal/app/config"
	server "github.com/orderline/go-order-system/internal/app/controller/http/server"
	"github.com/orderline/go-order-system/internal/app/logger"
	storage "github.com/orderline/go-order-system/internal/app/storage/api"
	"github.com/orderline/go-order-system/internal/app/usecase/order"
)

func main() {
	config := config.InitConfig()

	err := logger.Initialize(config)
	if err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	store, err := storage.InitStorage(context.Background(), config)
	if err != nil {
		zap.L().Fatal("error while initializing storage", zap.Error(err))
	}
	defer store.Close()

	service := order.New(store)

	promoter := order.CreateStatusPromoter(service, config)
	go promoter.Start()
	defer promoter.Stop()

	httpServer := server.New(config, service)
	httpServer.StartHTTPServer()
}
