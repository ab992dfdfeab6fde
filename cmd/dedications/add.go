package main

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/dedication-wall/internal/app"
	"github.com/jsamuelsen/dedication-wall/internal/domain"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var d domain.Dedication

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Leave a dedication on the wall",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			d = d.Normalized()
			fmt.Fprintf(out, "Message: %d/%d words\n", domain.CountWords(d.Message), domain.MaxMessageWords)

			return ctx.withService(cmd.Context(), func(service *app.DedicationService) error {
				if d.SpotifyURL != "" && (d.SongTitle == "" || d.SongArtist == "") {
					song, err := service.LookupSong(cmd.Context(), d.SpotifyURL)
					if err != nil {
						return err
					}

					d.SongTitle = lo.CoalesceOrEmpty(d.SongTitle, song.Title)

					if d.SongArtist == "" {
						if song.ArtistResolved {
							d.SongArtist = song.Artist
						} else {
							fmt.Fprintln(out, song.Placeholder+"; pass --artist to set it")
						}
					}
				}

				stored, err := service.Submit(cmd.Context(), d)
				if err != nil {
					var fields domain.FieldErrors
					if errors.As(err, &fields) {
						printFieldErrors(out, fields)
						return errors.New("dedication not added")
					}

					return err
				}

				fmt.Fprintf(out, "Added dedication %s for %s\n", stored.ID, party(stored.RecipientName, stored.RecipientClass))

				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&d.SenderName, "from", "", "Sender name")
	flags.StringVar(&d.SenderClass, "from-class", "", "Sender class")
	flags.StringVar(&d.RecipientName, "to", "", "Recipient name")
	flags.StringVar(&d.RecipientClass, "to-class", "", "Recipient class")
	flags.StringVarP(&d.Message, "message", "m", "", "Message, at most 30 words")
	flags.StringVar(&d.SpotifyURL, "song", "", "Spotify track link")
	flags.StringVar(&d.SongTitle, "title", "", "Song title, looked up from --song when empty")
	flags.StringVar(&d.SongArtist, "artist", "", "Song artist, looked up from --song when empty")

	return cmd
}

var fieldFlags = map[string]string{
	"senderName":     "--from",
	"senderClass":    "--from-class",
	"recipientName":  "--to",
	"recipientClass": "--to-class",
	"message":        "--message",
}

func printFieldErrors(w io.Writer, fields domain.FieldErrors) {
	names := lo.Keys(fields)
	slices.Sort(names)

	for _, name := range names {
		fmt.Fprintf(w, "  %s: %s\n", lo.ValueOr(fieldFlags, name, name), fields[name])
	}
}
