package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"skoll/internal/book"
	"skoll/internal/feed"
	"skoll/internal/render"
)

var (
	flagBackend    string
	flagMaxPrice   int
	flagLevels     int
	flagInstrument string
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := &cobra.Command{
		Use:   "skoll",
		Short: "Limit order book matching engine",
	}
	root.PersistentFlags().StringVar(&flagBackend, "backend", "tree", "price index backend: array, hash or tree")
	root.PersistentFlags().IntVar(&flagMaxPrice, "max-price", 10_000_000, "highest quotable price in ticks")
	root.PersistentFlags().IntVar(&flagLevels, "levels", 10, "book levels to display")
	root.PersistentFlags().StringVar(&flagInstrument, "instrument", "MSFT", "instrument name")

	root.AddCommand(replayCmd())

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func replayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <feed file>",
		Short: "Replay a tabular order-flow file into a fresh book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := book.ParseBackend(flagBackend)
			if err != nil {
				return err
			}
			b, err := book.New(flagInstrument, flagMaxPrice, backend)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			events, err := feed.Decode(f)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}

			stats := feed.Replay(b, events)
			log.Info().
				Str("backend", backend.String()).
				Int("submitted", stats.Submitted).
				Int("cancelled", stats.Cancelled).
				Int("skipped", stats.Skipped).
				Int("rejected", stats.Rejected).
				Msg("replay complete")

			render.Book(cmd.OutOrStdout(), b, flagLevels)
			return nil
		},
	}
}
