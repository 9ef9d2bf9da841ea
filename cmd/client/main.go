package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/giftbox/internal/client/cli"
	"github.com/dmitrijs2005/giftbox/internal/client/config"
)

func main() {
	cfg, err := config.Load(os.Args[1:], ".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(cfg, os.Stdin, os.Stdout, os.Stderr)
	if err := cli.Execute(ctx, root, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}
