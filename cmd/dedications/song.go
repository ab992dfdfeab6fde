package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/dedication-wall/internal/app"
)

func newSongCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "song <spotify track link>",
		Short: "Look up the title and artist of a Spotify track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd.Context(), func(service *app.DedicationService) error {
				song, err := service.LookupSong(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				artist := song.Artist
				if artist == "" {
					artist = "(" + song.Placeholder + ")"
				}

				_, err = fmt.Fprint(cmd.OutOrStdout(), renderTable(
					[]string{"Track", "Title", "Artist"},
					[][]string{{song.TrackID, song.Title, artist}},
					nil,
				))

				return err
			})
		},
	}
}
