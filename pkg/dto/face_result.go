package dto

import "github.com/google/uuid"

type FaceResultResponse struct {
	ID         uuid.UUID `json:"id"`
	JobID      uuid.UUID `json:"job_id"`
	FrameIndex int       `json:"frame_index"`
	Outcome    string    `json:"outcome"`
	Rect       *Rect     `json:"rect,omitempty"`
	EyeLeft    *Point    `json:"eye_left,omitempty"`
	EyeRight   *Point    `json:"eye_right,omitempty"`
	Distance   float64   `json:"distance,omitempty"`
	Angle      float64   `json:"angle,omitempty"`
	Deduped    bool      `json:"deduped"`
	CropURL    string    `json:"crop_url,omitempty"`
	CreatedAt  string    `json:"created_at"`
}

type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type FaceResultListResponse struct {
	Results []FaceResultResponse `json:"results"`
	Total   int                  `json:"total"`
}

// WSEvent is a WebSocket message for real-time job progress delivery.
type WSEvent struct {
	Type   string             `json:"type"` // face_result, job_status
	JobID  uuid.UUID          `json:"job_id"`
	Data   FaceResultResponse `json:"data,omitempty"`
	Status string             `json:"status,omitempty"`
}
