package domain

import (
	"regexp"
	"strings"
)

// Fallback labels shown when the metadata source gives nothing usable.
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
)

// providerName is what Spotify puts in author_name; it is never an artist.
const providerName = "Spotify"

var (
	trackIDPattern   = regexp.MustCompile(`track/([A-Za-z0-9]+)`)
	dashPattern      = regexp.MustCompile(`\s+[-\x{2013}\x{2014}]\s+`)
	htmlTitlePattern = regexp.MustCompile(`title=["']([^"']+)["']`)
)

// OEmbed is the subset of an oEmbed response the extractor reads.
type OEmbed struct {
	Title      string `json:"title"`
	ArtistName string `json:"artist_name"`
	AuthorName string `json:"author_name"`
	HTML       string `json:"html"`
}

// Song is the title and artist derived from an oEmbed response.
// ArtistResolved is false when Artist is the fallback label.
type Song struct {
	Title          string `json:"title"`
	Artist         string `json:"artist"`
	ArtistResolved bool   `json:"artistResolved"`
}

// SpotifyTrackID returns the track identifier in a Spotify link.
func SpotifyTrackID(link string) (string, bool) {
	m := trackIDPattern.FindStringSubmatch(link)
	if m == nil {
		return "", false
	}

	return m[1], true
}

// ExtractSong derives a song title and artist from an oEmbed response.
//
// Precedence: a " by " split of the title, then a spaced dash split, then
// artist_name, then author_name (unless it is the provider), then the title
// attribute of the embed html. Whatever stays unresolved falls back to the
// Unknown labels.
func ExtractSong(o OEmbed) Song {
	title := strings.TrimSpace(o.Title)
	artist := ""

	if left, right, ok := splitBy(title); ok {
		title, artist = left, right
	} else if loc := dashPattern.FindStringIndex(title); loc != nil {
		title, artist = strings.TrimSpace(title[:loc[0]]), strings.TrimSpace(title[loc[1]:])
	}

	if artist == "" {
		artist = strings.TrimSpace(o.ArtistName)
	}

	if artist == "" {
		if author := strings.TrimSpace(o.AuthorName); author != providerName {
			artist = author
		}
	}

	if artist == "" {
		if m := htmlTitlePattern.FindStringSubmatch(o.HTML); m != nil {
			attr := strings.TrimSuffix(strings.TrimSpace(m[1]), " on Spotify")
			if left, right, ok := splitBy(attr); ok {
				if right != providerName {
					artist = right
				}

				if title == "" {
					title = left
				}
			}
		}
	}

	song := Song{Title: title, Artist: artist, ArtistResolved: artist != ""}
	if song.Title == "" {
		song.Title = UnknownTitle
	}

	if song.Artist == "" {
		song.Artist = UnknownArtist
	}

	return song
}

// splitBy splits s at the first " by ". Both halves are trimmed; ok is false
// when there is no separator or the right side is empty.
func splitBy(s string) (left, right string, ok bool) {
	left, right, found := strings.Cut(s, " by ")
	if !found {
		return s, "", false
	}

	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if right == "" {
		return s, "", false
	}

	return left, right, true
}
