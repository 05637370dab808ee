package main

import (
	"context"
	"os"
	"os/signal"

	"go.followtheprocess.codes/curly/internal/cmd"
	"go.followtheprocess.codes/msg"
)

func main() {
	if err := run(); err != nil {
		msg.Ferror(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root, err := cmd.Build()
	if err != nil {
		return err
	}

	return root.Execute(ctx)
}
