package main

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/hessennasser/codecache-manager-backend/internal/api"
	"github.com/hessennasser/codecache-manager-backend/internal/auth"
	"github.com/hessennasser/codecache-manager-backend/internal/config"
	"github.com/hessennasser/codecache-manager-backend/internal/db"
	"github.com/hessennasser/codecache-manager-backend/internal/snippets"
	"github.com/hessennasser/codecache-manager-backend/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			tokenService, err := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.Lifetime)
			if err != nil {
				return err
			}
			passwordService := auth.NewPasswordService(cfg.BcryptCost)

			userStore := store.NewUserStore(database)
			snippetStore := store.NewSnippetStore(database)
			tagStore := store.NewTagStore(database)
			savedStore := store.NewSavedSnippetStore(database)

			snippetService := snippets.NewService(snippetStore, tagStore, userStore, savedStore)
			authMiddleware := auth.NewMiddleware(tokenService, userStore)

			router := api.NewRouter(api.Deps{
				AuthMiddleware:  authMiddleware,
				TokenService:    tokenService,
				PasswordService: passwordService,
				UserStore:       userStore,
				TagStore:        tagStore,
				SnippetService:  snippetService,
			})

			log.Printf("listening on %s", cfg.HTTP.Addr)
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}
