package httptransport

// ErrorResponse is the envelope returned for failed requests.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type UserPayload struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type MeResponse struct {
	Status string      `json:"status"`
	Data   UserPayload `json:"data"`
}
