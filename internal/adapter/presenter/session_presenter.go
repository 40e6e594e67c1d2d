package presenter

import (
	"fmt"

	sessionDTO "github.com/johnquangdev/voice-dataset/internal/adapter/dto/session"
	"github.com/johnquangdev/voice-dataset/internal/usecase/session"
)

// ToSessionResponse converts a session status to SessionResponse DTO
func ToSessionResponse(st session.Status) *sessionDTO.SessionResponse {
	return &sessionDTO.SessionResponse{
		ID:             st.SessionID,
		Contributor:    st.Contributor,
		Ordinal:        st.Ordinal,
		Total:          st.Total,
		SentenceID:     st.SentenceID,
		SentenceText:   st.SentenceText,
		State:          string(st.State),
		HasPending:     st.HasPending,
		ElapsedSeconds: st.ElapsedSeconds,
		ElapsedLabel:   FormatElapsed(st.ElapsedSeconds),
		Recorded:       st.Recorded,
		CompletedCount: st.CompletedCount,
		Progress:       st.Progress,
		Notice:         string(st.Notice),
		NoticeMessage:  st.NoticeMessage,
	}
}

// FormatElapsed renders seconds as MM:SS
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
