// Package main provides the entry point for the cooking competition API server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/di"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/di/providers"
	"github.com/Yassin1-prog/cooking-competition-DBMS/internal/logger"
)

func main() {
	injector := di.NewContainer()

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	server := do.MustInvoke[*providers.HTTPServerHandle](injector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case <-quit:
		log.Info("Shutting down server gracefully...")
	case err := <-server.Err():
		log.Error("Server stopped unexpectedly", "error", err)
		exitCode = 1
	}

	// The container shuts services down in reverse dependency order: the
	// HTTP server drains first, the store and search index close last.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	log.Info("Kitchen closed")
	os.Exit(exitCode)
}
