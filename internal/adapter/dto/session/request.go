package session

// CreateSessionRequest represents the request to open a recording session
type CreateSessionRequest struct {
	Contributor string `json:"contributor,omitempty" validate:"omitempty,contributor_id"`
}

// SelectContributorRequest represents the request to switch contributor
type SelectContributorRequest struct {
	Contributor    string `json:"contributor" validate:"required,contributor_id"`
	ConfirmDiscard bool   `json:"confirm_discard"`
}

// StartCaptureRequest is sent once the browser has asked for the microphone
type StartCaptureRequest struct {
	DeviceGranted bool `json:"device_granted"`
}

// DiscardRequest represents the request to drop the current take
type DiscardRequest struct {
	Confirm bool `json:"confirm"`
}

// SaveRequest represents the request to commit the pending take
type SaveRequest struct {
	ConfirmReplace bool `json:"confirm_replace"`
	Advance        bool `json:"advance"`
}

// AdvanceRequest represents a one-step move
type AdvanceRequest struct {
	Direction string `json:"direction" validate:"required,oneof=next prev"`
}

// JumpRequest represents a move to a 1-based sentence ordinal
type JumpRequest struct {
	Ordinal int `json:"ordinal"`
}
