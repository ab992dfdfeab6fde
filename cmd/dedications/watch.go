package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/dedication-wall/internal/app"
	"github.com/jsamuelsen/dedication-wall/internal/app/poller"
	"github.com/jsamuelsen/dedication-wall/internal/domain"
	"github.com/jsamuelsen/dedication-wall/internal/presentation"
)

const clearScreen = "\033[H\033[2J"

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the wall on screen, refreshing as dedications arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd.Context(), func(service *app.DedicationService) error {
				view := &wallView{
					out:      cmd.OutOrStdout(),
					redraw:   isTerminal(cmd.OutOrStdout()),
					location: ctx.timeLocation(),
				}

				p := poller.New(poller.Config{
					Source:   service,
					Interval: interval,
					OnUpdate: view.update,
					Logger:   ctx.ensureLogger(),
				})

				if err := p.Start(cmd.Context()); err != nil {
					return err
				}

				<-cmd.Context().Done()
				p.Stop()

				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", poller.DefaultInterval, "How often to re-read the wall")

	return cmd
}

// wallView prints the board on every update. On a terminal it redraws in
// place; otherwise it prints only when the wall changed.
type wallView struct {
	out      io.Writer
	redraw   bool
	location *time.Location

	mu   sync.Mutex
	last string
}

func (v *wallView) update(list []domain.Dedication) {
	rendered := renderBoard(presentation.BuildBoard(list, time.Now(), v.location))

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.redraw {
		fmt.Fprint(v.out, clearScreen+rendered)
		return
	}

	if rendered == v.last {
		return
	}

	v.last = rendered
	fmt.Fprint(v.out, rendered)
}
