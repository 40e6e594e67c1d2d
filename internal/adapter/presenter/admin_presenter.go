package presenter

import (
	adminDTO "github.com/johnquangdev/voice-dataset/internal/adapter/dto/admin"
	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/usecase/admin"
)

// ToContributorResponse converts a Contributor entity to ContributorResponse DTO
func ToContributorResponse(c *entities.Contributor) *adminDTO.ContributorResponse {
	if c == nil {
		return nil
	}
	return &adminDTO.ContributorResponse{
		ID:          c.ID,
		Name:        c.Name,
		DisplayName: c.DisplayName,
		CreatedAt:   c.CreatedAt,
	}
}

// ToContributorListResponse converts a slice of Contributor entities
func ToContributorListResponse(list []*entities.Contributor) []*adminDTO.ContributorResponse {
	out := make([]*adminDTO.ContributorResponse, len(list))
	for i, c := range list {
		out[i] = ToContributorResponse(c)
	}
	return out
}

// ToRecordingListResponse converts a slice of Recording entities
func ToRecordingListResponse(list []*entities.Recording) []*adminDTO.RecordingResponse {
	out := make([]*adminDTO.RecordingResponse, len(list))
	for i, r := range list {
		out[i] = &adminDTO.RecordingResponse{
			ID:          r.ID,
			Owner:       r.Owner,
			Filename:    r.Filename,
			SentenceID:  r.SentenceID,
			Sentence:    r.Sentence,
			StorageURL:  r.StorageURL,
			ContentType: r.ContentType,
			SizeBytes:   r.SizeBytes,
			CreatedAt:   r.CreatedAt,
		}
	}
	return out
}

// ToProgressResponse converts the progress table
func ToProgressResponse(rows []admin.ProgressRow) []adminDTO.ProgressRowResponse {
	out := make([]adminDTO.ProgressRowResponse, len(rows))
	for i, r := range rows {
		out[i] = adminDTO.ProgressRowResponse(r)
	}
	return out
}

// ToDashboardResponse converts the per-owner counts
func ToDashboardResponse(d *admin.DashboardOutput) *adminDTO.DashboardResponse {
	resp := &adminDTO.DashboardResponse{
		Total:  d.Total,
		Owners: make([]adminDTO.OwnerShareResponse, len(d.Owners)),
	}
	for i, o := range d.Owners {
		resp.Owners[i] = adminDTO.OwnerShareResponse(o)
	}
	return resp
}
