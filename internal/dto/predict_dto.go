package dto

// UpstreamErrorResponse is returned when the prediction service cannot be
// reached. Suggestion tells the operator how to bring it back.
type UpstreamErrorResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion"`
}
