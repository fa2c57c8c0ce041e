// Command studiochat is a terminal chat client for an authenticated LLM
// completion gateway.
//
// Usage:
//
//	studiochat [flags]
//
// Flags:
//
//	-bff string      BFF base URL (default: $STUDIOCHAT_BFF_URL)
//	-gateway string  Gateway base URL (default: $STUDIOCHAT_GATEWAY_URL)
//	-model string    Preselected model ID (default: first catalog entry)
//	-log string      Log file path (default: ~/.studiochat/studiochat.log)
//
// Authentication rides on the BFF session cookie: log in through the web app
// first so the cookie jar file the browser shares with this client is
// populated, or run against a BFF that accepts ambient credentials.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	studiochat "github.com/poly-workshop/studiochat"
	"github.com/poly-workshop/studiochat/bff"
	bt "github.com/poly-workshop/studiochat/bubbletea"
	"github.com/poly-workshop/studiochat/chat"
	"github.com/poly-workshop/studiochat/credential"
	"github.com/poly-workshop/studiochat/gateway"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "studiochat: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		bffURL     = flag.String("bff", os.Getenv("STUDIOCHAT_BFF_URL"), "BFF base URL")
		gatewayURL = flag.String("gateway", os.Getenv("STUDIOCHAT_GATEWAY_URL"), "Gateway base URL")
		modelFlag  = flag.String("model", "", "Preselected model ID")
		logPath    = flag.String("log", defaultLogPath(), "Log file path")
	)
	flag.Parse()

	if *bffURL == "" {
		return errors.New("no BFF URL: set -bff or STUDIOCHAT_BFF_URL")
	}
	if *gatewayURL == "" {
		return errors.New("no gateway URL: set -gateway or STUDIOCHAT_GATEWAY_URL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The TUI owns the terminal, so logs go to a file.
	logger := fileLogger(*logPath)
	defer logger.Sync() //nolint:errcheck

	// One jar for both clients: issuance sets the gateway credential cookie,
	// and the gateway trusts nothing else.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("cookie jar: %w", err)
	}
	httpClient := &http.Client{Jar: jar, Timeout: 0}

	bffClient := bff.NewClient(*bffURL, httpClient)
	store := credential.NewStore()
	session := bff.NewUserSession(bffClient, store)

	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	me, err := session.Refresh(startupCtx)
	if err != nil {
		if errors.Is(err, studiochat.ErrUnauthenticated) {
			return errors.New("not logged in: authenticate with the BFF first")
		}
		return err
	}
	logger.Info("session established", zap.String("nickname", me.Nickname))

	manager := credential.NewManager(store, bffClient)
	gw := gateway.NewClient(*gatewayURL, httpClient, manager)

	models, err := gw.ListModels(startupCtx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	models = preferModel(models, *modelFlag)

	// Proactive renewal keeps an idle session from hitting a mid-stream
	// auth failure; the gateway client's on-demand path is the fallback.
	renewer := credential.NewRenewer(store, bffClient, logger)
	go renewer.Run(ctx) //nolint:errcheck

	transcript := studiochat.NewTranscript()
	chatSession := chat.NewSession(gw, transcript)
	chatSession.SetCatalog(models)

	sendFn := func(ctx context.Context, userText, model string, onDelta func(string)) error {
		return chatSession.Send(ctx, userText, model, chat.WithDeltaHandler(onDelta))
	}

	m := bt.New(sendFn, transcript, models, studiochat.DefaultTheme(), bt.Config{
		Nickname: me.Nickname,
	})
	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// preferModel moves the requested model to the front of the catalog so the
// TUI preselects it. Unknown IDs leave the catalog order unchanged.
func preferModel(models []studiochat.Model, id string) []studiochat.Model {
	if id == "" {
		return models
	}
	for i, m := range models {
		if m.ID == id {
			reordered := make([]studiochat.Model, 0, len(models))
			reordered = append(reordered, models[i])
			reordered = append(reordered, models[:i]...)
			reordered = append(reordered, models[i+1:]...)
			return reordered
		}
	}
	return models
}

func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".studiochat", "studiochat.log")
}

// fileLogger builds a production logger writing to path. Falls back to a nop
// logger when the file cannot be created, since the TUI owns stdout/stderr.
func fileLogger(path string) *zap.Logger {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zap.NewNop()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
