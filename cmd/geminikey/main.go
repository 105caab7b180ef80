package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"timelessme/internal/adapter/repo"
	"timelessme/internal/infra"
	"timelessme/internal/infra/credentials"
)

func main() {
	_ = godotenv.Load()

	var (
		keyFlag  string
		showFlag bool
	)
	flag.StringVar(&keyFlag, "key", "", "Gemini API key to store (fallbacks to GEMINI_API_KEY)")
	flag.BoolVar(&showFlag, "show", false, "Report whether a key is stored instead of writing one")
	flag.Parse()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if !cfg.HasDatabase() {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger := infra.NewLogger("cli", "").With().Str("cmd", "geminikey").Logger()
	runner := infra.NewSQLRunner(pool, logger)
	if err := repo.EnsureSchema(ctx, runner); err != nil {
		fmt.Fprintf(os.Stderr, "failed to prepare schema: %v\n", err)
		os.Exit(1)
	}
	store := credentials.NewStore(runner)

	if showFlag {
		key, err := store.GeminiAPIKey(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read key: %v\n", err)
			os.Exit(1)
		}
		if key == "" {
			fmt.Println("no Gemini API key stored")
			return
		}
		fmt.Printf("Gemini API key stored (ending in %s)\n", suffix(key))
		return
	}

	key := strings.TrimSpace(keyFlag)
	if key == "" {
		key = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "Gemini API key is required via -key or GEMINI_API_KEY")
		os.Exit(1)
	}

	if err := store.SetGeminiAPIKey(ctx, key); err != nil {
		fmt.Fprintf(os.Stderr, "failed to persist gemini api key: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Gemini API key stored successfully")
}

func suffix(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return key[len(key)-4:]
}
