package httptransport

// ErrorResponse is the envelope returned for failed requests.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type NotePayload struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	AuthorID  string `json:"authorId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Pinned    bool   `json:"pinned"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type CreateNoteRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}

type UpdateNoteRequest struct {
	Title  *string `json:"title"`
	Body   *string `json:"body"`
	Pinned *bool   `json:"pinned"`
}

type NoteResponse struct {
	Status string      `json:"status"`
	Data   NotePayload `json:"data"`
}

type NoteListResponse struct {
	Status string        `json:"status"`
	Data   []NotePayload `json:"data"`
}
