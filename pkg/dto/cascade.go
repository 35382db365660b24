package dto

type CascadeResponse struct {
	Name      string `json:"name"`
	Hash      string `json:"hash"`
	WindowW   int    `json:"window_w"`
	WindowH   int    `json:"window_h"`
	UpdatedAt string `json:"updated_at"`
}

type CascadeListResponse struct {
	Cascades []CascadeResponse `json:"cascades"`
}
