package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/image-halftone-mcp/internal/config"
	"github.com/ironsheep/image-halftone-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("%s %s\n", server.Name, Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Printf("%s - MCP server for color conversion, dithering and image hashing\n", server.Name)
			fmt.Println()
			fmt.Printf("Usage: %s [options]\n", server.Name)
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=debug       Log level: debug, info, warn, error (default: info)\n", config.EnvLogLevel)
			fmt.Printf("  %s=8           Default average hash size, 1-%d\n", config.EnvHashSize, config.MaxHashSize)
			fmt.Printf("  %s=lanczos     Default hash resampler\n", config.EnvResampler)
			fmt.Printf("  %s=floyd-steinberg  Default dither method\n", config.EnvDither)
			fmt.Printf("  %s=2              Default number of output levels\n", config.EnvLevels)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Logs go to stderr (stdout is for MCP protocol). slog.SetDefault below
	// also routes the log package through the configured handler.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)
	logger.Debug("starting server",
		"version", Version,
		"build_time", BuildTime,
		"commit", GitCommit,
		"hash_size", cfg.HashSize,
		"resampler", cfg.Resampler,
		"dither", cfg.Dither,
		"levels", cfg.Levels,
	)

	srv := server.NewWithConfig(cfg, logger)
	if err := srv.Run(); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
