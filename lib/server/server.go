package server

import (
	"fmt"

	"github.com/ether/etherdelta/lib"
	"github.com/ether/etherdelta/lib/api"
	"github.com/ether/etherdelta/lib/differ"
	"github.com/ether/etherdelta/lib/producer"
	settings2 "github.com/ether/etherdelta/lib/settings"
	"github.com/ether/etherdelta/lib/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// NewApp wires the producer and every route onto a fresh fiber app that reads
// from dataStore.
func NewApp(setupLogger *zap.SugaredLogger, settings *settings2.Settings, dataStore utils.ResourceStore) (*fiber.App, error) {
	registry := prometheus.NewRegistry()

	deltaProducer, err := producer.NewProducer(differ.NewCharDiffer(), dataStore, producer.Options{
		MemoSize:       settings.Delta.MemoSize,
		MaxContentSize: settings.Delta.MaxContentSize,
		Registerer:     registry,
	}, setupLogger)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	if settings.Compression {
		app.Use(compress.New(compress.Config{
			Level: compress.LevelBestSpeed,
		}))
	}

	api.InitAPI(&lib.InitStore{
		C:                 app,
		RetrievedSettings: settings,
		Store:             dataStore,
		Producer:          deltaProducer,
		Registry:          registry,
		Logger:            setupLogger,
	})

	return app, nil
}

func InitServer(setupLogger *zap.SugaredLogger, settings settings2.Settings) error {
	setupLogger.Info("Starting etherdelta...")
	setupLogger.Info("Your etherdelta version is " + settings.GitVersion)

	dataStore, closeStore, err := utils.GetResourceStore(settings, setupLogger)
	if err != nil {
		return fmt.Errorf("error opening resource store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			setupLogger.Warnf("Error closing resource store: %v", err)
		}
	}()

	app, err := NewApp(setupLogger, &settings, dataStore)
	if err != nil {
		return err
	}

	fiberString := fmt.Sprintf("%s:%s", settings.IP, settings.Port)
	setupLogger.Info("Listening on " + fiberString)
	if err := app.Listen(fiberString); err != nil {
		return fmt.Errorf("error starting server: %w", err)
	}
	return nil
}
