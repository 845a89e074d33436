package httptransport

// ErrorResponse is the envelope returned for failed requests.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type TrainingPayload struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"projectId"`
	AuthorID  string   `json:"authorId"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Duration  int      `json:"duration"`
	Type      string   `json:"type"`
	Intensity *int     `json:"intensity,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

type CreateTrainingRequest struct {
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Duration  int      `json:"duration"`
	Type      string   `json:"type"`
	Intensity *int     `json:"intensity"`
	Notes     string   `json:"notes"`
	Tags      []string `json:"tags"`
}

type UpdateTrainingRequest struct {
	Title     *string  `json:"title"`
	Date      *string  `json:"date"`
	Duration  *int     `json:"duration"`
	Type      *string  `json:"type"`
	Intensity *int     `json:"intensity"`
	Notes     *string  `json:"notes"`
	Tags      []string `json:"tags"`
}

type TrainingResponse struct {
	Status string          `json:"status"`
	Data   TrainingPayload `json:"data"`
}

type TrainingListResponse struct {
	Status string            `json:"status"`
	Data   []TrainingPayload `json:"data"`
}
