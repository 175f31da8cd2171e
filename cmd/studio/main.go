// Command studio submits prompts to a running Veo Studio bridge from the
// terminal and shows every generation until it settles.
//
//	studio -server http://localhost:8080 -key $GOOGLE_AI_API_KEY "a koi pond at dusk"
//	echo "a koi pond at dusk" | studio -download ./videos
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"veo-studio/modules/common/config"
	"veo-studio/modules/common/logger"
	"veo-studio/modules/studio"
)

const clearScreen = "\033[H\033[2J"

func main() {
	_ = godotenv.Load()

	server := flag.String("server", envOr("VEO_STUDIO_SERVER", "http://localhost:8080"), "bridge base URL")
	key := flag.String("key", os.Getenv("GOOGLE_AI_API_KEY"), "Google AI API key (default $GOOGLE_AI_API_KEY)")
	downloadDir := flag.String("download", "", "save completed videos into this directory")
	timeout := flag.Duration("timeout", config.DefaultMaxDuration+30*time.Second, "per-request client timeout")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	zlog := zap.NewNop()
	if *verbose {
		zlog = logger.New("debug", "console")
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hc := &http.Client{Timeout: *timeout}
	s := studio.New(studio.NewClient(*server, hc), zlog)

	inputDone := make(chan struct{})
	go func() {
		defer close(inputDone)
		if flag.NArg() > 0 {
			for _, prompt := range flag.Args() {
				submit(ctx, s, prompt, *key)
			}
			return
		}
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				submit(ctx, s, line, *key)
			}
		}
	}()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	finished := false
	for !finished {
		select {
		case <-ctx.Done():
			finished = true
		case <-ticker.C:
			select {
			case <-inputDone:
				finished = s.Book().Pending() == 0
			default:
			}
		}
		fmt.Print(clearScreen)
		_ = studio.Render(os.Stdout, s.Records(), time.Now())
	}

	if *downloadDir == "" {
		return
	}
	for _, rec := range s.Records() {
		if rec.Status != studio.StatusCompleted {
			continue
		}
		path, err := studio.Download(ctx, hc, rec, *downloadDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  %s: %v\n", rec.ID, err)
			continue
		}
		fmt.Printf("💾 %s\n", path)
	}
}

func submit(ctx context.Context, s *studio.Studio, prompt, key string) {
	if _, _, err := s.Submit(ctx, prompt, key); err != nil {
		if errors.Is(err, studio.ErrBlankInput) {
			fmt.Fprintln(os.Stderr, "⚠️  Please enter both a prompt and API key")
			return
		}
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
