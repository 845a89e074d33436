package httptransport

// ErrorResponse is the envelope returned for failed requests.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type VisitedPayload struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"projectId"`
	AuthorID  string   `json:"authorId"`
	Name      string   `json:"name"`
	Date      string   `json:"date"`
	Notes     string   `json:"notes,omitempty"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

type WishlistPayload struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"projectId"`
	AuthorID  string   `json:"authorId"`
	Name      string   `json:"name"`
	Priority  int      `json:"priority"`
	Notes     string   `json:"notes,omitempty"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

type CreateVisitedRequest struct {
	Name  string   `json:"name"`
	Date  string   `json:"date"`
	Notes string   `json:"notes"`
	Tags  []string `json:"tags"`
}

type UpdateVisitedRequest struct {
	Name  *string  `json:"name"`
	Date  *string  `json:"date"`
	Notes *string  `json:"notes"`
	Tags  []string `json:"tags"`
}

type CreateWishlistRequest struct {
	Name     string   `json:"name"`
	Priority int      `json:"priority"`
	Notes    string   `json:"notes"`
	Tags     []string `json:"tags"`
}

type UpdateWishlistRequest struct {
	Name     *string  `json:"name"`
	Priority *int     `json:"priority"`
	Notes    *string  `json:"notes"`
	Tags     []string `json:"tags"`
}

type VisitedResponse struct {
	Status string         `json:"status"`
	Data   VisitedPayload `json:"data"`
}

type VisitedListResponse struct {
	Status string           `json:"status"`
	Data   []VisitedPayload `json:"data"`
}

type WishlistResponse struct {
	Status string          `json:"status"`
	Data   WishlistPayload `json:"data"`
}

type WishlistListResponse struct {
	Status string            `json:"status"`
	Data   []WishlistPayload `json:"data"`
}
