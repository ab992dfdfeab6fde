package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/dedication-wall/internal/app"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "delete <position|id>",
		Short: "Remove a dedication",
		Long: "Remove a dedication by its position in the list (0 is the newest) or by its ID.\n" +
			"A numeric reference is a position unless --by id is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := args[0]

			position, convErr := strconv.Atoi(ref)

			switch by {
			case "", "position", "id":
			default:
				return fmt.Errorf("--by must be id or position, got %q", by)
			}

			if by == "position" && convErr != nil {
				return fmt.Errorf("position must be a number, got %q", ref)
			}

			return ctx.withService(cmd.Context(), func(service *app.DedicationService) error {
				var err error
				if by == "id" || (by == "" && convErr != nil) {
					err = service.DeleteByID(cmd.Context(), ref)
				} else {
					err = service.DeleteAt(cmd.Context(), position)
				}

				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Deleted dedication %s\n", ref)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&by, "by", "", "Interpret the reference as id or position")

	return cmd
}
