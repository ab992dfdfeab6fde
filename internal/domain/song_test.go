package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSong(t *testing.T) {
	tests := []struct {
		name     string
		input    OEmbed
		expected Song
	}{
		{
			name:     "title split on by",
			input:    OEmbed{Title: "Shape of You by Ed Sheeran"},
			expected: Song{Title: "Shape of You", Artist: "Ed Sheeran", ArtistResolved: true},
		},
		{
			name:     "provider author is not an artist",
			input:    OEmbed{Title: "Yesterday", AuthorName: "Spotify"},
			expected: Song{Title: "Yesterday", Artist: UnknownArtist},
		},
		{
			name:     "empty response",
			input:    OEmbed{},
			expected: Song{Title: UnknownTitle, Artist: UnknownArtist},
		},
		{
			name:     "split on first by only",
			input:    OEmbed{Title: "Stand by Me by Ben E. King"},
			expected: Song{Title: "Stand", Artist: "Me by Ben E. King", ArtistResolved: true},
		},
		{
			name:     "hyphen separator",
			input:    OEmbed{Title: "Bohemian Rhapsody - Queen"},
			expected: Song{Title: "Bohemian Rhapsody", Artist: "Queen", ArtistResolved: true},
		},
		{
			name:     "em dash separator",
			input:    OEmbed{Title: "Levitating — Dua Lipa"},
			expected: Song{Title: "Levitating", Artist: "Dua Lipa", ArtistResolved: true},
		},
		{
			name:     "title split wins over artist_name",
			input:    OEmbed{Title: "Hello by Adele", ArtistName: "Someone Else"},
			expected: Song{Title: "Hello", Artist: "Adele", ArtistResolved: true},
		},
		{
			name:     "artist_name used when title has no separator",
			input:    OEmbed{Title: "Hello", ArtistName: " Adele "},
			expected: Song{Title: "Hello", Artist: "Adele", ArtistResolved: true},
		},
		{
			name:     "artist_name beats author_name",
			input:    OEmbed{Title: "Hello", ArtistName: "Adele", AuthorName: "Label"},
			expected: Song{Title: "Hello", Artist: "Adele", ArtistResolved: true},
		},
		{
			name:     "author_name when not the provider",
			input:    OEmbed{Title: "Hello", AuthorName: "Adele"},
			expected: Song{Title: "Hello", Artist: "Adele", ArtistResolved: true},
		},
		{
			name: "html title attribute as last resort",
			input: OEmbed{
				Title:      "Blinding Lights",
				AuthorName: "Spotify",
				HTML:       `<iframe title="Blinding Lights by The Weeknd on Spotify" src="x"></iframe>`,
			},
			expected: Song{Title: "Blinding Lights", Artist: "The Weeknd", ArtistResolved: true},
		},
		{
			name:     "html attribute fills a missing title",
			input:    OEmbed{HTML: `<iframe title='Heroes by David Bowie'></iframe>`},
			expected: Song{Title: "Heroes", Artist: "David Bowie", ArtistResolved: true},
		},
		{
			name:     "html attribute without by leaves artist unknown",
			input:    OEmbed{Title: "Track", HTML: `<iframe title="Spotify Embed: Track"></iframe>`},
			expected: Song{Title: "Track", Artist: UnknownArtist},
		},
		{
			name:     "values trimmed",
			input:    OEmbed{Title: "  Creep   by   Radiohead  "},
			expected: Song{Title: "Creep", Artist: "Radiohead", ArtistResolved: true},
		},
		{
			name:     "unspaced hyphen is part of the title",
			input:    OEmbed{Title: "Jay-Z Song"},
			expected: Song{Title: "Jay-Z Song", Artist: UnknownArtist},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractSong(tt.input))
		})
	}
}

func TestSpotifyTrackID(t *testing.T) {
	id, ok := SpotifyTrackID("https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC?si=abc")
	assert.True(t, ok)
	assert.Equal(t, "4uLU6hMCjMI75M1A2tKUQC", id)

	_, ok = SpotifyTrackID("https://open.spotify.com/album/123")
	assert.False(t, ok)

	_, ok = SpotifyTrackID("")
	assert.False(t, ok)
}
