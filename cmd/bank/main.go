package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"bankcore/internal/service"
	"bankcore/internal/storage/file"
)

func main() {
	dataDir := flag.String("data", defaultDataDir(), "directory holding the bank data files")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	files := file.NewAdapter(
		filepath.Join(*dataDir, "Bank_Record.csv"),
		filepath.Join(*dataDir, "Account_info.csv"),
		filepath.Join(*dataDir, "Employee_info.csv"),
	)

	ctx := context.Background()
	bank, err := service.Open(ctx, files, logger)
	if err != nil {
		logger.Error("failed to open bank data", "err", err)
		os.Exit(1)
	}

	ui := newConsole(bank, os.Stdin, os.Stdout)
	ui.run(ctx)

	if err := bank.Flush(ctx); err != nil {
		logger.Error("final flush failed", "err", err)
		os.Exit(1)
	}
}

func defaultDataDir() string {
	if dir := os.Getenv("BANK_DATA_DIR"); dir != "" {
		return dir
	}
	return "."
}
