package presentation

import (
	"time"

	"github.com/jsamuelsen/dedication-wall/internal/domain"
)

// EmptyText is shown when there are no dedications.
const EmptyText = "No dedications yet. Be the first to share!"

// Board is the view model of the whole wall.
type Board struct {
	Empty     bool   `json:"empty"`
	EmptyText string `json:"emptyText,omitempty"`
	Cards     []Card `json:"cards"`
}

// Card is one dedication prepared for display. Text fields are raw; escaping
// is applied by whichever markup adapter renders them.
type Card struct {
	Position       int       `json:"position"`
	ID             string    `json:"id,omitempty"`
	SenderName     string    `json:"senderName"`
	SenderClass    string    `json:"senderClass"`
	RecipientName  string    `json:"recipientName"`
	RecipientClass string    `json:"recipientClass"`
	Message        string    `json:"message"`
	Song           *SongView `json:"song,omitempty"`
	Age            string    `json:"age"`
	Timestamp      time.Time `json:"timestamp"`
}

// SongView is the optional song section of a card.
type SongView struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// BuildBoard maps list to cards ordered newest first. Position is the index
// a delete request for that card must use.
func BuildBoard(list []domain.Dedication, now time.Time, loc *time.Location) Board {
	sorted := domain.SortNewestFirst(list)

	board := Board{Cards: make([]Card, 0, len(sorted))}
	if len(sorted) == 0 {
		board.Empty = true
		board.EmptyText = EmptyText

		return board
	}

	for i, d := range sorted {
		board.Cards = append(board.Cards, Card{
			Position:       i,
			ID:             d.ID,
			SenderName:     d.SenderName,
			SenderClass:    d.SenderClass,
			RecipientName:  d.RecipientName,
			RecipientClass: d.RecipientClass,
			Message:        d.Message,
			Song:           songView(d),
			Age:            FormatRelativeAge(d.Timestamp, now, loc),
			Timestamp:      d.Timestamp,
		})
	}

	return board
}

func songView(d domain.Dedication) *SongView {
	if !d.HasSong() {
		return nil
	}

	view := &SongView{URL: d.SpotifyURL, Title: d.SongTitle, Artist: d.SongArtist}
	if view.Title == "" {
		view.Title = domain.UnknownTitle
	}

	if view.Artist == "" {
		view.Artist = domain.UnknownArtist
	}

	return view
}
