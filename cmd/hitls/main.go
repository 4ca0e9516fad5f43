package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/liwei62/openHiTLS/internal/config/cipherConfig"
)

func init() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Error loading .env file", "err", err)
		os.Exit(1)
	}
}

func main() {
	cfg, err := cipherConfig.LoadCipherConfig()
	if err != nil {
		slog.Error("cannot load config", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))

	if err := run(cfg, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
