package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"communityClient/internal/config"
	"communityClient/internal/devserver"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.DevServer.JWTSecretKey == "" {
		log.Fatal("DEV_JWT_SECRET_KEY is not set")
	}

	srv := devserver.NewServer(cfg.DevServer)
	if cfg.DevServer.Seed {
		if err := srv.Seed(); err != nil {
			log.Fatalf("failed to seed dev server: %v", err)
		}
		fmt.Printf("Seeded demo accounts (ada@, grace@, linus@example.com), password %q\n", devserver.SeedPassword)
	}

	addr := fmt.Sprintf(":%d", cfg.DevServer.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	// Starting the server
	fmt.Printf("Dev server listening on %s\n", addr)
	fmt.Printf("API: http://localhost%s/api\n", addr)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("dev server failed: %v", err)
	}
}
