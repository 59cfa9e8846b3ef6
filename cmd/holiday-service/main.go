package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/thirdlf03/world-holidays/internal/auth"
	"github.com/thirdlf03/world-holidays/internal/catalog"
	"github.com/thirdlf03/world-holidays/internal/config"
	"github.com/thirdlf03/world-holidays/internal/favorites"
	"github.com/thirdlf03/world-holidays/internal/httpapi"
	"github.com/thirdlf03/world-holidays/internal/nager"
	"github.com/thirdlf03/world-holidays/internal/quiz"
	"github.com/thirdlf03/world-holidays/internal/quiz/sqlite"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if err := runHashPassword(os.Args[2:]); err != nil {
			log.Fatalf("hash-password failed: %v", err)
		}
		return
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"), ".env")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	apiURL := flag.String("holiday-api", cfg.HolidayAPIURL, "nager.date API base URL")
	favoritesPath := flag.String("favorites", cfg.FavoritesPath, "favorites CSV path")
	sessionStore := flag.String("session-store", cfg.SessionStore, "quiz session store: memory or sqlite")
	sessionDB := flag.String("session-db", cfg.SessionDBPath, "SQLite path for quiz sessions")
	cacheTTL := flag.Duration("cache-ttl", cfg.CacheTTL, "holiday data cache lifetime")
	authFile := flag.String("auth-file", cfg.AuthFile, "credentials file guarding destructive favorites routes")
	timeout := flag.Duration("http-timeout", cfg.HTTPTimeout, "timeout for upstream requests")
	flag.Parse()

	cfg.Addr = *addr
	cfg.HolidayAPIURL = *apiURL
	cfg.FavoritesPath = *favoritesPath
	cfg.SessionStore = *sessionStore
	cfg.SessionDBPath = *sessionDB
	cfg.CacheTTL = *cacheTTL
	cfg.AuthFile = *authFile
	cfg.HTTPTimeout = *timeout
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := log.Default()

	upstream := nager.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.HolidayAPIURL)
	holidays := catalog.New(upstream, catalog.WithTTL(cfg.CacheTTL))

	favoriteStore := favorites.NewFileStore(cfg.FavoritesPath)
	favoriteService := favorites.NewService(favoriteStore)
	if err := favoriteService.Load(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}

	store, closeStore, err := openSessionStore(cfg)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}
	defer closeStore()

	creds, err := auth.LoadCredentials(cfg.AuthFile)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}
	if creds == nil {
		logger.Printf("warning: %s not found, favorites removal is unauthenticated", cfg.AuthFile)
	}

	handler := httpapi.NewRouter(httpapi.Dependencies{
		Catalog:   holidays,
		Favorites: favoriteService,
		Quiz:      quiz.NewService(store, quiz.NewGenerator(holidays, nil)),
		Guard:     auth.NewGuard(creds, "holiday-service", logger),
		Logger:    logger,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Printf("holiday-service listening on %s (sessions=%s, favorites=%s)", cfg.Addr, cfg.SessionStore, favoriteStore.Path())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}

func openSessionStore(cfg config.Config) (quiz.SessionStore, func(), error) {
	if cfg.SessionStore != config.SessionStoreSQLite {
		return quiz.NewMemoryStore(), func() {}, nil
	}

	store, err := sqlite.NewSQLiteStore(cfg.SessionDBPath)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			log.Printf("close session store: %v", err)
		}
	}, nil
}
