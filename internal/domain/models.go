package domain

// Photo is the single persisted entity: one normalized square capture.
// A Photo is an immutable value; only store membership changes after
// creation.
type Photo struct {
	ID         string `json:"id"`
	ImageData  string `json:"imageData"`
	CapturedAt int64  `json:"capturedAt"`
}
