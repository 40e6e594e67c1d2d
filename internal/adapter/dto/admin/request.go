package admin

// AddContributorRequest represents the request to register a contributor
type AddContributorRequest struct {
	Name        string `json:"name" validate:"required,contributor_id,max=64"`
	DisplayName string `json:"display_name" validate:"required,max=255"`
}

// ExportRequest selects recordings for the archive; empty selects all
type ExportRequest struct {
	IDs []uint `json:"ids"`
}

// TrainRequest represents the request to start training for a contributor
type TrainRequest struct {
	Contributor string `json:"contributor" validate:"required,contributor_id"`
}
