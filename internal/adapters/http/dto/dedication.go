package dto

import (
	"time"

	"github.com/jsamuelsen/dedication-wall/internal/domain"
)

// DedicationRequest is the body of POST /api/dedications. The ID is assigned
// by the store; a missing timestamp is set at insert.
type DedicationRequest struct {
	SenderName     string    `json:"senderName"`
	SenderClass    string    `json:"senderClass"`
	RecipientName  string    `json:"recipientName"`
	RecipientClass string    `json:"recipientClass"`
	Message        string    `json:"message"`
	SpotifyURL     string    `json:"spotifyUrl"`
	SongTitle      string    `json:"songTitle"`
	SongArtist     string    `json:"songArtist"`
	Timestamp      time.Time `json:"timestamp"`
}

// ToDomain trims every field. Song title and artist are dropped when no
// link was given.
func (r DedicationRequest) ToDomain() domain.Dedication {
	return domain.Dedication{
		SenderName:     r.SenderName,
		SenderClass:    r.SenderClass,
		RecipientName:  r.RecipientName,
		RecipientClass: r.RecipientClass,
		Message:        r.Message,
		SpotifyURL:     r.SpotifyURL,
		SongTitle:      r.SongTitle,
		SongArtist:     r.SongArtist,
		Timestamp:      r.Timestamp,
	}.Normalized()
}

// DeleteQuery is the query of DELETE /api/dedications/{ref}. By forces how
// ref is read; empty means integer refs are positions and anything else
// is an ID.
type DeleteQuery struct {
	By string `form:"by" validate:"omitempty,oneof=id position"`
}

// Delete reference kinds.
const (
	DeleteByID       = "id"
	DeleteByPosition = "position"
)

// SongQuery is the query of GET /api/song.
type SongQuery struct {
	URL string `form:"url" validate:"required,url"`
}

// SuccessResponse acknowledges a delete.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
