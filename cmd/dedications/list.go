package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/dedication-wall/internal/app"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every dedication, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd.Context(), func(service *app.DedicationService) error {
				if asJSON {
					list, err := service.List(cmd.Context())
					if err != nil {
						return err
					}

					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")

					return enc.Encode(list)
				}

				board, err := service.Board(cmd.Context())
				if err != nil {
					return err
				}

				_, err = fmt.Fprint(cmd.OutOrStdout(), renderBoard(board))

				return err
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw list as JSON")

	return cmd
}
