package stats

import (
	"time"

	"github.com/ether/etherdelta/lib/producer"
	"github.com/gofiber/fiber/v2"
)

type pinger interface {
	Ping() error
}

type StoreChecker struct {
	store pinger
}

func (d StoreChecker) Name() string {
	return "store"
}

func (d StoreChecker) Check() Check {
	err := d.store.Ping()

	if err != nil {
		return Check{
			Status:        StatusFail,
			ComponentType: "datastore",
			Output:        err.Error(),
		}
	}

	return Check{
		Status:        StatusPass,
		ComponentType: "datastore",
		Observed:      "ok",
		ObservedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

type ProducerChecker struct {
	producer *producer.Producer
}

func (p ProducerChecker) Name() string {
	return "producer"
}

func (p ProducerChecker) Check() Check {
	return Check{
		Status:       StatusPass,
		Component:    "memo",
		Observed:     p.producer.MemoLen(),
		ObservedUnit: "deltas",
		ObservedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}

// Handler godoc
// @Summary Health check endpoint
// @Description Returns the health status of the service (RFC Health Check Draft)
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "Service is healthy"
// @Failure 503 {object} HealthResponse "Service is unhealthy"
// @Router /health [get]
func Handler(
	version string,
	releaseID string,
	serviceID string,
	checkers []Checker,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := HealthResponse{
			Status:    StatusPass,
			Version:   version,
			ReleaseID: releaseID,
			ServiceID: serviceID,
			Checks:    map[string][]Check{},
		}

		httpStatus := fiber.StatusOK

		for _, checker := range checkers {
			check := checker.Check()
			resp.Checks[checker.Name()] = []Check{check}

			switch check.Status {
			case StatusFail:
				resp.Status = StatusFail
				httpStatus = fiber.StatusServiceUnavailable
			case StatusWarn:
				if resp.Status != StatusFail {
					resp.Status = StatusWarn
				}
			}
		}

		return c.Status(httpStatus).JSON(resp)
	}
}
