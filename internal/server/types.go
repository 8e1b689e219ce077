package server

// ValuesResponse wraps a distinct-values listing.
type ValuesResponse struct {
	Values []any `json:"values"`
}

// ResultsResponse wraps the records matched by an ad-hoc query.
type ResultsResponse struct {
	Results []map[string]any `json:"results"`
}

// ErrorResponse represents a generic error payload used for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
