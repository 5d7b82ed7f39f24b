package request

// OperationalMetricsRequest carries the metric discriminator. The value is
// validated by the service so an unknown type maps to invalid-argument.
type OperationalMetricsRequest struct {
	Type string `json:"type"`
}
