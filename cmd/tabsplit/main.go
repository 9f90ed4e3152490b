package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/tabsplit/tabsplit/internal/ocr"
	"github.com/tabsplit/tabsplit/internal/receipt"
	"github.com/tabsplit/tabsplit/pkg/logging"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	fs := ff.NewFlagSet("tabsplit")
	var (
		port         = fs.IntLong("port", 8080, "HTTP server port")
		detectorType = fs.StringLong("detector", "vision", "Text detector: 'vision', 'gemini', 'ollama' or 'none'")
		visionKey    = fs.StringLong("vision-key", "", "Google Cloud Vision API key (or set GOOGLE_VISION_API_KEY env var)")
		geminiKey    = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel  = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ollamaURL    = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel  = fs.StringLong("ollama-model", "llava", "Ollama vision model name")
		authUser     = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass     = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion  = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("TABSPLIT"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	logging.Setup()

	// Pick the primary detector. Whatever it is, it gets wrapped in the
	// sample-text fallback so a capture always yields an editable draft.
	var primary ocr.TextDetector
	var err error
	switch *detectorType {
	case "vision":
		apiKey := *visionKey
		if apiKey == "" {
			apiKey = os.Getenv("GOOGLE_VISION_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Cloud Vision API key is required. Set --vision-key flag or GOOGLE_VISION_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Cloud Vision detector...")
		primary, err = ocr.NewGoogleVision(apiKey, "")
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini detector...", "model", *geminiModel)
		primary, err = ocr.NewGemini(apiKey, *geminiModel)
	case "ollama":
		slog.Info("Initializing Ollama detector...", "url", *ollamaURL, "model", *ollamaModel)
		primary, err = ocr.NewOllama(*ollamaURL, *ollamaModel)
	case "none":
		slog.Info("No detector configured, every capture serves the sample receipt")
	default:
		slog.Error("Invalid detector type", "type", *detectorType, "valid", "vision, gemini, ollama or none")
		os.Exit(1)
	}
	if err != nil {
		slog.Error("Failed to initialize detector", "type", *detectorType, "error", err)
		os.Exit(1)
	}

	detector := ocr.NewFallback(primary)
	defer detector.Close()

	service := receipt.NewService(detector, receipt.NewSession())

	basicAuth := receipt.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := receipt.NewServer(service, basicAuth)

	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "version", version)
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
