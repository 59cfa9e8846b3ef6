package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/thirdlf03/world-holidays/internal/catalog"
	"github.com/thirdlf03/world-holidays/internal/cli"
	"github.com/thirdlf03/world-holidays/internal/config"
	"github.com/thirdlf03/world-holidays/internal/nager"
	"github.com/thirdlf03/world-holidays/internal/quiz"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"), ".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	mode := flag.String("mode", "true-false", "quiz mode: true-false or guess")
	questions := flag.Int("questions", 10, "number of questions")
	apiURL := flag.String("holiday-api", cfg.HolidayAPIURL, "nager.date API base URL")
	timeout := flag.Duration("http-timeout", cfg.HTTPTimeout, "timeout for upstream requests")
	flag.Parse()

	quizMode, err := quiz.ParseMode(*mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	upstream := nager.NewClient(&http.Client{Timeout: *timeout}, *apiURL)
	generator := quiz.NewGenerator(catalog.New(upstream, catalog.WithTTL(cfg.CacheTTL)), nil)

	err = cli.Run(context.Background(), os.Stdin, os.Stdout, generator, cli.Config{
		Mode:      quizMode,
		Questions: *questions,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
