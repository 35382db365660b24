package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusDone       JobStatus = "done"
	JobStatusError      JobStatus = "error"
)

// DetectionJob is one submitted detection request: a named face/eye
// cascade pair applied to every frame of a burst.
type DetectionJob struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Status       JobStatus `json:"status" db:"status"`
	FaceCascade  string    `json:"face_cascade" db:"face_cascade"`
	EyeCascade   string    `json:"eye_cascade" db:"eye_cascade"`
	FrameCount   int       `json:"frame_count" db:"frame_count"`
	ErrorMessage string    `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// DetectJobTask is the message a job submission fans out to the queue:
// one per frame in the burst.
type DetectJobTask struct {
	JobID       uuid.UUID `json:"job_id"`
	FrameIndex  int       `json:"frame_index"`
	FrameRef    string    `json:"frame_ref"` // MinIO object key
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	FaceCascade string    `json:"face_cascade"`
	EyeCascade  string    `json:"eye_cascade"`
}
