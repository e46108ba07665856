package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"catalog/internal/config"
	"catalog/internal/db"
	"catalog/internal/httpapi"
	"catalog/internal/obs"
)

func main() {
	// load .env from the usual places: current dir, parent, repo root
	_ = godotenv.Overload(".env", "../.env", "../../.env")

	cfg, err := config.Load()
	if err != nil {
		obs.InitLogger("info")
		obs.Logger.Error("config", "error", err.Error())
		os.Exit(1)
	}
	obs.InitLogger(cfg.LogLevel)

	conn, err := db.Open(cfg.DBDSN)
	if err != nil {
		obs.Logger.Error("db_open", "error", err.Error())
		os.Exit(1)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		obs.Logger.Error("db_open", "error", err.Error())
		os.Exit(1)
	}
	defer sqlDB.Close()

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: httpapi.NewRouter(conn)}

	go func() {
		obs.Logger.Info("server_listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			obs.Logger.Error("server", "error", err.Error())
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		obs.Logger.Error("shutdown", "error", err.Error())
	}
	obs.Logger.Info("server_stopped")
}
