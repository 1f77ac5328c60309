package main

import (
	"log/slog"
	"os"

	cfg "photoserv/src/configuration"
	server "photoserv/src/server"
)

func main() {
	config := cfg.ReadProperties()
	logger := newLogger(config.LogLevel)

	if err := server.RunServer(config, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}
