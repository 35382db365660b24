package models

import (
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeNormalized Outcome = "normalized"
	OutcomeNoFace     Outcome = "no-face"
	OutcomeNoEyes     Outcome = "no-eyes"
)

// FaceResult is one pipeline façade outcome for one frame of a job.
type FaceResult struct {
	ID          uuid.UUID `json:"id" db:"id"`
	JobID       uuid.UUID `json:"job_id" db:"job_id"`
	FrameIndex  int       `json:"frame_index" db:"frame_index"`
	Outcome     Outcome   `json:"outcome" db:"outcome"`
	RectX       int       `json:"rect_x" db:"rect_x"`
	RectY       int       `json:"rect_y" db:"rect_y"`
	RectW       int       `json:"rect_w" db:"rect_w"`
	RectH       int       `json:"rect_h" db:"rect_h"`
	EyeLeftX    float64   `json:"eye_left_x,omitempty" db:"eye_left_x"`
	EyeLeftY    float64   `json:"eye_left_y,omitempty" db:"eye_left_y"`
	EyeRightX   float64   `json:"eye_right_x,omitempty" db:"eye_right_x"`
	EyeRightY   float64   `json:"eye_right_y,omitempty" db:"eye_right_y"`
	Distance    float64   `json:"distance,omitempty" db:"distance"`
	Angle       float64   `json:"angle,omitempty" db:"angle"`
	Deduped     bool      `json:"deduped" db:"deduped"`
	CropKey     string    `json:"crop_key,omitempty" db:"crop_key"` // MinIO key of the normalized crop PNG
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// FaceResultEvent is published to the events stream for the API to
// persist and broadcast over WebSocket.
type FaceResultEvent struct {
	JobID      uuid.UUID `json:"job_id"`
	FrameIndex int       `json:"frame_index"`
	Outcome    Outcome   `json:"outcome"`
	RectX      int       `json:"rect_x"`
	RectY      int       `json:"rect_y"`
	RectW      int       `json:"rect_w"`
	RectH      int       `json:"rect_h"`
	EyeLeftX   float64   `json:"eye_left_x,omitempty"`
	EyeLeftY   float64   `json:"eye_left_y,omitempty"`
	EyeRightX  float64   `json:"eye_right_x,omitempty"`
	EyeRightY  float64   `json:"eye_right_y,omitempty"`
	Distance   float64   `json:"distance,omitempty"`
	Angle      float64   `json:"angle,omitempty"`
	Deduped    bool      `json:"deduped"`
	CropKey    string    `json:"crop_key,omitempty"`
}
