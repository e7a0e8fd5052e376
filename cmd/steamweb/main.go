package main

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/leighmacdonald/steamweb/internal/cmd/steamweb"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
)

func main() {
	build := steamweb.BuildInfo{
		Version:   BuildVersion,
		Commit:    BuildCommit,
		Date:      BuildDate,
		GoVersion: BuildGoVersion,
	}

	if err := steamweb.Execute(context.Background(), build); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
