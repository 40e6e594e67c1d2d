package session

// SessionResponse represents the state of a recording session
type SessionResponse struct {
	ID             string  `json:"id"`
	Contributor    string  `json:"contributor"`
	Ordinal        int     `json:"ordinal"`
	Total          int     `json:"total"`
	SentenceID     uint    `json:"sentence_id,omitempty"`
	SentenceText   string  `json:"sentence_text,omitempty"`
	State          string  `json:"state"`
	HasPending     bool    `json:"has_pending"`
	ElapsedSeconds int     `json:"elapsed_seconds"`
	ElapsedLabel   string  `json:"elapsed_label"`
	Recorded       bool    `json:"recorded"`
	CompletedCount int     `json:"completed_count"`
	Progress       float64 `json:"progress"`
	Notice         string  `json:"notice,omitempty"`
	NoticeMessage  string  `json:"notice_message,omitempty"`
}

// PlaybackResponse carries where the client should play a committed recording from
type PlaybackResponse struct {
	URL     string           `json:"url"`
	Session *SessionResponse `json:"session"`
}
