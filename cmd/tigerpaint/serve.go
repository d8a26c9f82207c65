package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve a directory of results over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			port, _ := cmd.Flags().GetString("port")
			return a.serve(cmd.Context(), dir, port)
		},
	}
	cmd.Flags().String("port", ":8080", "Listen address")
	return cmd
}

// Serves dir until ctx is cancelled
func (a *app) serve(ctx context.Context, dir, port string) error {
	srv := &http.Server{Addr: port, Handler: http.FileServer(http.Dir(dir))}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			a.logger.Warn("shutdown", "error", err)
		}
	}()
	a.logger.Info("serving", "dir", dir, "addr", "http://0.0.0.0"+port+"/")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
