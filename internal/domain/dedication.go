package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxMessageWords is the largest word count accepted for a dedication message.
const MaxMessageWords = 30

// EntityDedication is the entity name used in errors.
const EntityDedication = "dedication"

// Dedication is one message left on the wall.
// Timestamp is set once at insert and never changes.
type Dedication struct {
	ID             string    `json:"id,omitempty"`
	SenderName     string    `json:"senderName"`
	SenderClass    string    `json:"senderClass"`
	RecipientName  string    `json:"recipientName"`
	RecipientClass string    `json:"recipientClass"`
	Message        string    `json:"message"`
	SpotifyURL     string    `json:"spotifyUrl,omitempty"`
	SongTitle      string    `json:"songTitle,omitempty"`
	SongArtist     string    `json:"songArtist,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// HasSong reports whether a song link was attached.
func (d Dedication) HasSong() bool {
	return d.SpotifyURL != ""
}

// Normalized trims every text field and clears the song title and artist
// when no link is attached.
func (d Dedication) Normalized() Dedication {
	d.SenderName = strings.TrimSpace(d.SenderName)
	d.SenderClass = strings.TrimSpace(d.SenderClass)
	d.RecipientName = strings.TrimSpace(d.RecipientName)
	d.RecipientClass = strings.TrimSpace(d.RecipientClass)
	d.Message = strings.TrimSpace(d.Message)
	d.SpotifyURL = strings.TrimSpace(d.SpotifyURL)

	if d.HasSong() {
		d.SongTitle = strings.TrimSpace(d.SongTitle)
		d.SongArtist = strings.TrimSpace(d.SongArtist)
	} else {
		d.SongTitle, d.SongArtist = "", ""
	}

	return d
}

// WordCount returns the number of words in the message.
func (d Dedication) WordCount() int {
	return CountWords(d.Message)
}

// Stamped fills the fields a store owns: a fresh ID when none was supplied
// and the insert time when the timestamp is zero.
func (d Dedication) Stamped(now time.Time) Dedication {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	if d.Timestamp.IsZero() {
		d.Timestamp = now.UTC()
	}

	return d
}

// Same reports whether two records refer to the same dedication.
// Records with IDs compare by ID; legacy records without one compare by content.
func (d Dedication) Same(other Dedication) bool {
	if d.ID != "" || other.ID != "" {
		return d.ID == other.ID
	}

	return d.SenderName == other.SenderName &&
		d.SenderClass == other.SenderClass &&
		d.RecipientName == other.RecipientName &&
		d.RecipientClass == other.RecipientClass &&
		d.Message == other.Message &&
		d.SpotifyURL == other.SpotifyURL &&
		d.Timestamp.Equal(other.Timestamp)
}

// CountWords splits text on runs of whitespace and counts the non-empty tokens.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// SortNewestFirst returns a copy of list ordered by timestamp, most recent first.
// Records with equal timestamps keep their relative order.
func SortNewestFirst(list []Dedication) []Dedication {
	sorted := make([]Dedication, len(list))
	copy(sorted, list)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	return sorted
}

// IndexOf returns the position of target in list, or -1.
func IndexOf(list []Dedication, target Dedication) int {
	for i := range list {
		if list[i].Same(target) {
			return i
		}
	}

	return -1
}
