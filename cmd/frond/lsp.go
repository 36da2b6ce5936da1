package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jward/frond/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Serve completions over the Language Server Protocol on stdio",
	Args:  cobra.NoArgs,
	RunE:  runLSP,
}

func runLSP(cmd *cobra.Command, args []string) error {
	engine, err := newEngine("")
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("lsp server starting", "version", version)
	srv := lsp.NewServer(engine, logger, version)
	if err := srv.Serve(ctx, lsp.StdioConn(os.Stdin, os.Stdout)); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
