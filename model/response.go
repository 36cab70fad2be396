package model

// ErrorResponse is returned for rejected client requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UnavailableResponse is returned when no upstream could serve a search.
// Results is always an empty array, never null.
type UnavailableResponse struct {
	Error           string        `json:"error"`
	Query           string        `json:"query"`
	NumberOfResults int           `json:"number_of_results"`
	Results         []interface{} `json:"results"`
}

// NewUnavailableResponse builds the exhaustion payload for query.
func NewUnavailableResponse(query string) UnavailableResponse {
	return UnavailableResponse{
		Error:           "All search instances are unavailable. Please try again later.",
		Query:           query,
		NumberOfResults: 0,
		Results:         []interface{}{},
	}
}

// HealthStatus values.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthResponse reports upstream reachability.
type HealthResponse struct {
	Status                   string `json:"status"`
	LocalInstance            bool   `json:"local_instance"`
	PublicInstancesAvailable bool   `json:"public_instances_available"`
	SearxngURL               string `json:"searxng_url"`
}

// NewHealthResponse combines both probe outcomes.
func NewHealthResponse(local, public bool, searxngURL string) HealthResponse {
	status := StatusUnhealthy
	if local || public {
		status = StatusHealthy
	}
	return HealthResponse{
		Status:                   status,
		LocalInstance:            local,
		PublicInstancesAvailable: public,
		SearxngURL:               searxngURL,
	}
}

// IndexResponse describes the service on GET /.
type IndexResponse struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}
