package httptransport

// ErrorResponse is the envelope returned for failed requests.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MotdPayload struct {
	ID         string `json:"id"`
	ProjectID  string `json:"projectId"`
	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`
	Message    string `json:"message"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

type SetMotdRequest struct {
	ToUserID string `json:"toUserId"`
	Message  string `json:"message"`
}

type UpdateMotdRequest struct {
	Message string `json:"message"`
}

type MotdResponse struct {
	Status string      `json:"status"`
	Data   MotdPayload `json:"data"`
}

type MotdListResponse struct {
	Status string        `json:"status"`
	Data   []MotdPayload `json:"data"`
}
