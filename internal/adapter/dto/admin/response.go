package admin

import "time"

// ContributorResponse represents a contributor
type ContributorResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecordingResponse represents a saved recording
type RecordingResponse struct {
	ID          uint      `json:"id"`
	Owner       string    `json:"owner"`
	Filename    string    `json:"filename"`
	SentenceID  uint      `json:"sentence_id"`
	Sentence    string    `json:"sentence"`
	StorageURL  string    `json:"storage_url"`
	ContentType string    `json:"content_type,omitempty"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProgressRowResponse is one line of the progress table
type ProgressRowResponse struct {
	Contributor string  `json:"contributor"`
	DisplayName string  `json:"display_name"`
	Recorded    int     `json:"recorded"`
	Total       int64   `json:"total"`
	Percent     float64 `json:"percent"`
}

// DashboardResponse holds recording counts per owner
type DashboardResponse struct {
	Total  int64                `json:"total"`
	Owners []OwnerShareResponse `json:"owners"`
}

// OwnerShareResponse is one owner's slice of the dataset
type OwnerShareResponse struct {
	Owner string  `json:"owner"`
	Count int64   `json:"count"`
	Share float64 `json:"share"`
}

// TrainResponse carries the log lines of a submitted training job
type TrainResponse struct {
	Contributor string   `json:"contributor"`
	Logs        []string `json:"logs"`
}
