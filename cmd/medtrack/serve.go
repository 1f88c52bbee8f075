package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	adapthttp "medtrack/internal/adapter/http"
	"medtrack/internal/adapter/postgres"
	"medtrack/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server and checklist refresher",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := env("ADDR", ":8080")
	webDir := env("WEB_DIR", "web")

	db, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	stores := storesFor(db)
	authSvc := app.NewAuthService(db, postgres.NewSessionRepo(db))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	oidcConfig, err := loadOIDCConfig(ctx)
	if err != nil {
		return err
	}

	refresher := app.NewRefresher(app.NewChecklistService(stores), logChecklistChanges())
	go refresher.Run(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: adapthttp.New(stores, authSvc, oidcConfig, webDir).Handler(),
	}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	log.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// loadOIDCConfig builds the SSO wiring when OIDC_ISSUER is set.
func loadOIDCConfig(ctx context.Context) (adapthttp.OIDCConfig, error) {
	issuer := os.Getenv("OIDC_ISSUER")
	if issuer == "" {
		return adapthttp.OIDCConfig{}, nil
	}
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, err
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     os.Getenv("OIDC_CLIENT_ID"),
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// logChecklistChanges logs the open-item summary whenever it changes
// between refresher ticks.
func logChecklistChanges() func(app.TodayChecklist) {
	var last string
	return func(tc app.TodayChecklist) {
		pending, warn := 0, 0
		for _, it := range tc.Items {
			if it.Done {
				continue
			}
			pending++
			if it.WarnAfterCutoff {
				warn++
			}
		}
		summary := fmt.Sprintf("checklist %s: %d open, %d past cutoff", tc.DateKey, pending, warn)
		if summary == last {
			return
		}
		last = summary
		log.Print(summary)
	}
}
