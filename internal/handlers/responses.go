package handlers

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	Brand       string `json:"brand"`
	ActiveForms int    `json:"active_forms"`
}
