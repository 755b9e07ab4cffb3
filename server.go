package amtrakboard

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theoremus-urban-solutions/amtrak-board/config"
	"github.com/theoremus-urban-solutions/amtrak-board/internal/logging"
)

var server *http.Server

// NewMux wires every route through the gate. The fixed auth and realtime
// endpoints are registered first; the catch-all handles pages, scripts and
// static assets.
func NewMux(g *Gate) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", g.handleLogin)
	mux.HandleFunc("/auth/logout", g.handleLogout)
	mux.HandleFunc("/auth/me", g.handleMe)
	mux.HandleFunc("/rt/ping", handlePing)
	mux.HandleFunc("/rt/", g.handleRealtime)
	mux.HandleFunc("/data/", g.handleData)
	mux.HandleFunc("/", g.handlePages)
	return mux
}

func StartServer(g *Gate, log logging.Logger) {
	addr := fmt.Sprintf(":%d", config.Config.Server.Port)
	server = &http.Server{
		Addr:              addr,
		Handler:           requestLogger(log, NewMux(g)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(context.Background(), "server error", "error", err)
			os.Exit(1)
		}
	}()
	log.Info(context.Background(), "server listening", "addr", addr)
}

func HandleGracefulShutdown(log logging.Logger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info(context.Background(), "shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			log.Error(context.Background(), "server shutdown error", "error", err)
		} else {
			log.Info(context.Background(), "server shut down successfully")
		}
	}
}
