package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lunatask-go/lunatask/internal/fakeserver"
)

const (
	// DefaultMockAddr is the default listen address of the mock server.
	DefaultMockAddr = "localhost:7432"
	// DefaultMockToken is the token the mock server accepts by default.
	DefaultMockToken = "mock-token"
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run a local mock of the API",
	Long: `Run a local server that speaks the task API.

Point the CLI or SDK at it with --base-url http://<addr>/v1 and the mock token.
Tasks are kept in memory and lost when the server stops, unless --db names a
SQLite file to keep them in.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		token, _ := cmd.Flags().GetString("accept-token")
		dbPath, _ := cmd.Flags().GetString("db")

		logger := log.New(os.Stdout, "[luna-mock] ", log.LstdFlags)
		opts := []fakeserver.Option{fakeserver.WithLogger(logger)}
		if dbPath != "" {
			store, err := fakeserver.NewSQLiteStore(dbPath)
			if err != nil {
				return err
			}
			opts = append(opts, fakeserver.WithStore(store))
			logger.Printf("Using database %s", dbPath)
		}
		fs := fakeserver.New(token, opts...)
		defer fs.Close()

		server := &http.Server{
			Addr:         addr,
			Handler:      fs.Handler(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Printf("Serving mock API on http://%s/v1", addr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return err
			}
		case <-ctx.Done():
		}

		logger.Println("Shutting down mock server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(mockCmd)

	mockCmd.Flags().String("addr", DefaultMockAddr, "Listen address")
	mockCmd.Flags().String("accept-token", DefaultMockToken, "Access token the server accepts")
	mockCmd.Flags().String("db", "", "SQLite file to persist tasks in")
}
