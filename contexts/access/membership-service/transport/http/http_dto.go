package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ProjectPayload struct {
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	ArchivedAt  string `json:"archived_at,omitempty"`
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type ProjectResponse struct {
	Status string         `json:"status"`
	Data   ProjectPayload `json:"data"`
}

type ProjectListResponse struct {
	Status string           `json:"status"`
	Data   []ProjectPayload `json:"data"`
}

type MemberPayload struct {
	MembershipID string `json:"membership_id"`
	ProjectID    string `json:"project_id"`
	UserID       string `json:"user_id"`
	Role         string `json:"role"`
	Email        string `json:"email,omitempty"`
	DisplayName  string `json:"display_name,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type MemberListResponse struct {
	Status string          `json:"status"`
	Data   []MemberPayload `json:"data"`
}

type MemberResponse struct {
	Status string        `json:"status"`
	Data   MemberPayload `json:"data"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role"`
}

type CreateInviteRequest struct {
	Email string `json:"email,omitempty"`
}

type InvitePayload struct {
	InviteID       string `json:"invite_id"`
	ProjectID      string `json:"project_id"`
	Mode           string `json:"mode"`
	Code           string `json:"code,omitempty"`
	RecipientEmail string `json:"recipient_email,omitempty"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
	ResolvedAt     string `json:"resolved_at,omitempty"`
}

type InviteResponse struct {
	Status string        `json:"status"`
	Data   InvitePayload `json:"data"`
}

type RedeemCodeRequest struct {
	Code string `json:"code"`
}

type AuditEntryPayload struct {
	AuditID     string `json:"audit_id"`
	ActorUserID string `json:"actor_user_id"`
	Action      string `json:"action"`
	TargetID    string `json:"target_id,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type AuditLogResponse struct {
	Status string              `json:"status"`
	Data   []AuditEntryPayload `json:"data"`
}
