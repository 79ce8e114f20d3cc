package lib

import (
	"github.com/ether/etherdelta/lib/producer"
	"github.com/ether/etherdelta/lib/settings"
	"github.com/ether/etherdelta/lib/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type InitStore struct {
	C                 *fiber.App
	RetrievedSettings *settings.Settings
	Store             utils.ResourceStore
	Producer          *producer.Producer
	Registry          *prometheus.Registry
	Logger            *zap.SugaredLogger
}
