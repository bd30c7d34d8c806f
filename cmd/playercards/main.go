// Command playercards builds a deck of player cards from a player list, a
// price table and a club logo map, and serves or prints it.
//
// Usage:
//
//	playercards serve
//	playercards resolve "Spurs FC" PSG
//	playercards merge --prices data/prices.csv
//	playercards card 7
//	playercards card "Lionel Messi"
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
