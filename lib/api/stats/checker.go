package stats

// HealthStatus follows the draft "Health Check Response Format for HTTP APIs".
type HealthStatus string

const (
	StatusPass HealthStatus = "pass"
	StatusWarn HealthStatus = "warn"
	StatusFail HealthStatus = "fail"
)

type Check struct {
	Status        HealthStatus `json:"status"`
	Component     string       `json:"componentId,omitempty"`
	ComponentType string       `json:"componentType,omitempty"`
	Observed      any          `json:"observedValue,omitempty"`
	ObservedUnit  string       `json:"observedUnit,omitempty"`
	ObservedAt    string       `json:"observedAt,omitempty"`
	Output        string       `json:"output,omitempty"`
}

type HealthResponse struct {
	Status    HealthStatus       `json:"status"`
	Version   string             `json:"version,omitempty"`
	ReleaseID string             `json:"releaseId,omitempty"`
	ServiceID string             `json:"serviceId,omitempty"`
	Checks    map[string][]Check `json:"checks,omitempty"`
}

// Checker reports one entry of the checks map, keyed by Name.
type Checker interface {
	Name() string
	Check() Check
}
