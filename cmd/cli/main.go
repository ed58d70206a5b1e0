package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/minaorangina/durak/config"
	"github.com/minaorangina/durak/engine"
	"github.com/minaorangina/durak/players"
	"github.com/minaorangina/durak/store"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err.Error())
	}

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatal(err.Error())
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdin, os.Stdout); err != nil {
		logger.Fatal("could not play", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger, stdin io.Reader, stdout io.Writer) error {
	in := players.NewInput(stdin)
	player1 := players.NewCLIPlayer(players.NewID(), cfg.Player1Name, in, stdout)
	player2 := players.NewCLIPlayer(players.NewID(), cfg.Player2Name, in, stdout)

	match, err := engine.NewMatch(engine.MatchOpts{
		Players:            players.NewPlayers(player1, player2),
		Rand:               cfg.Rand(),
		WinnerAttacksFirst: cfg.WinnerAttacksFirst,
		MaxRetries:         cfg.MaxRetries,
		Logger:             logger,
	})
	if err != nil {
		return err
	}

	results := store.NewInMemoryResultStore()
	for {
		result, err := match.Play(ctx)
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			players.SendText(stdout, "\nBye!\n")
			return nil
		}
		if err != nil {
			return err
		}

		if err := results.AddResult(result); err != nil {
			return err
		}

		switch {
		case result.Draw:
			players.SendText(stdout, "\nIt's a draw!\n")
		case result.Forfeit:
			players.SendText(stdout, "\n%s wins by forfeit.\n", result.Winner.Name())
		default:
			players.SendText(stdout, "\n%s wins!\n", result.Winner.Name())
		}

		tally := results.Tally()
		players.SendText(stdout, "Score: %s %d, %s %d, draws %d\n",
			player1.Name(), tally.Wins[player1.ID()],
			player2.Name(), tally.Wins[player2.ID()],
			tally.Draws,
		)

		again, err := playAgain(ctx, in, stdout)
		if errors.Is(err, context.Canceled) {
			players.SendText(stdout, "\nBye!\n")
			return nil
		}
		if err != nil || !again {
			return nil
		}
	}
}

func playAgain(ctx context.Context, in *players.Input, out io.Writer) (bool, error) {
	for {
		players.SendText(out, "Play again? [y/n]: ")
		answer, err := in.ReadLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(out, "Please answer y or n")
	}
}
