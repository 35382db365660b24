package dto

import "github.com/google/uuid"

// JobCreateRequest submits a detection job: one or more already-
// uploaded frames run through the named face/eye cascades.
type JobCreateRequest struct {
	FrameKeys   []string `json:"frame_keys" binding:"required,min=1"`
	FaceCascade string   `json:"face_cascade" binding:"required"`
	EyeCascade  string   `json:"eye_cascade" binding:"required"`
}

type JobResponse struct {
	ID           uuid.UUID `json:"id"`
	Status       string    `json:"status"`
	FaceCascade  string    `json:"face_cascade"`
	EyeCascade   string    `json:"eye_cascade"`
	FrameCount   int       `json:"frame_count"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
}

type JobListResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Total int           `json:"total"`
}

// JobQuery filters GET /v1/jobs.
type JobQuery struct {
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}
