package main

import (
	"os"
	"os/signal"
	"shopeasy/internal/app"
	"shopeasy/internal/database/psql"
	"shopeasy/pkg/config"
	"shopeasy/pkg/lib/logger"
	"shopeasy/pkg/lib/logger/sl"
	"syscall"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.SetupLogger(cfg.HTTP.Env)
	if err != nil {
		panic(err)
	}

	storage := psql.New(log, cfg.ConnectionString())

	application := app.New(
		log,
		cfg.HTTP.Port,
		cfg.HTTP.AllowedOrigins,
		storage,
	)

	go func() {
		if err := application.Run(); err != nil {
			log.Error("Application failed to start", sl.Err(err))
			panic(err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGTERM, syscall.SIGINT)
	<-done

	log.Info("Closing database")
	storage.Close()
}
