package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	adapthttp "noteful/internal/adapter/http"
	"noteful/internal/adapter/postgres"
	"noteful/internal/app"
	"noteful/internal/config"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db open")
	}
	defer func() { _ = db.Close() }()

	folderRepo := postgres.NewFolderRepo(db)
	tagRepo := postgres.NewTagRepo(db)

	accountSvc := app.NewAccountService(db)
	tokenSvc := app.NewTokenService(app.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.JWTTTL,
	}, log)
	validator := app.NewOwnershipValidator(folderRepo, tagRepo)
	noteSvc := app.NewNoteService(db, validator)
	folderSvc := app.NewFolderService(folderRepo, db)
	tagSvc := app.NewTagService(tagRepo, db)

	srv := adapthttp.New(accountSvc, tokenSvc, noteSvc, folderSvc, tagSvc, log)
	if cfg.OIDC.Enabled() {
		sso, err := adapthttp.NewSSO(context.Background(), cfg.OIDC.IssuerURL, cfg.OIDC.ClientID, cfg.OIDC.ClientSecret, cfg.OIDC.RedirectURL)
		if err != nil {
			log.Fatal().Err(err).Msg("oidc setup")
		}
		srv = srv.WithSSO(sso)
	}

	log.Info().Str("addr", cfg.Addr).Msg("listening")
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server")
	}
}
