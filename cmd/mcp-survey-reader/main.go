package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/formlens/mcp-survey-reader/internal/config"
	"github.com/formlens/mcp-survey-reader/internal/mcp"
	"github.com/formlens/mcp-survey-reader/internal/pdf"
	"github.com/formlens/mcp-survey-reader/internal/schema"
)

// Overridden at release time via -ldflags.
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// setupLogging routes the standard logger so nothing leaks onto stdout in
// stdio mode, where stdout carries the MCP protocol stream.
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			// Quiet by default; the parent process owns the session
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
		return
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// runServerMode blocks until the server exits or a termination signal
// arrives, whichever comes first.
func runServerMode(ctx context.Context, cancel context.CancelFunc, server *mcp.Server) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.Run(ctx)
	}()

	select {
	case sig := <-signalCh:
		log.Printf("Received signal: %s", sig)
		log.Println("Initiating graceful shutdown...")
		cancel()

		if err := <-serverErrCh; err != nil {
			log.Printf("Server shutdown with error: %v", err)
			os.Exit(1)
		}

	case err := <-serverErrCh:
		if err != nil {
			log.Printf("Server error: %v", err)
			os.Exit(1)
		}
	}

	log.Println("Server stopped successfully")
}

// runStdioMode blocks until stdin closes. Lifecycle belongs to the MCP
// client that spawned us, so there is no signal handling here.
func runStdioMode(ctx context.Context, _ context.CancelFunc, server *mcp.Server) {
	if err := server.Run(ctx); err != nil {
		// Stay silent unless asked; errors on stderr can confuse some clients
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

func main() {
	// Version flags short-circuit before pflag gets a chance to parse
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && cfg.IsServerMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	extractCfg := schema.DefaultExtractConfig()
	extractCfg.DedupPrefixLen = cfg.DedupPrefixLen
	surveyService, err := pdf.NewServiceWithExtractConfig(cfg.MaxFileSize, cfg.SurveyDirectory, extractCfg)
	if err != nil {
		log.Fatalf("Failed to create survey service: %v", err)
	}

	server, err := mcp.NewServer(cfg, surveyService)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsServerMode() {
		runServerMode(ctx, cancel, server)
	} else {
		runStdioMode(ctx, cancel, server)
	}
}

func printVersion() {
	fmt.Printf("MCP Survey Reader\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
