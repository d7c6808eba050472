package main

import (
	"context"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/elokaagu/omahub/internal/auth"
	"github.com/elokaagu/omahub/internal/config"
	"github.com/elokaagu/omahub/internal/db"
	"github.com/elokaagu/omahub/internal/handler"
	"github.com/elokaagu/omahub/internal/metrics"
	"github.com/elokaagu/omahub/internal/store"
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

			sessionManager := auth.NewSessionManager(database, cfg.DB.Driver, cfg.SessionLifetime)

			ctx := context.Background()
			oidcProvider, err := auth.NewProvider(ctx, cfg)
			if err != nil {
				return err
			}

			profileStore := store.NewProfileStore(database)
			brandStore := store.NewBrandStore(database)
			productStore := store.NewProductStore(database)
			collectionStore := store.NewCollectionStore(database)
			tailorStore := store.NewTailorStore(database)
			inquiryStore := store.NewInquiryStore(database, brandStore)
			subscriberStore := store.NewSubscriberStore(database)
			settingStore := store.NewSettingStore(database)
			tokenStore := auth.NewSQLTokenStore(database)

			// Warm the gauges so /metrics is right from the first scrape.
			if brands, err := brandStore.ListAll(ctx); err == nil {
				metrics.BrandsTotal.Set(float64(len(brands)))
			}
			if count, err := subscriberStore.CountActive(ctx); err == nil {
				metrics.SubscribersTotal.Set(float64(count))
			}

			authHandlers := auth.NewHandlers(oidcProvider, sessionManager, profileStore)
			authMiddleware := auth.NewMiddleware(sessionManager, profileStore)

			router := handler.NewRouter(handler.Deps{
				SessionManager:    sessionManager,
				AuthHandlers:      authHandlers,
				AuthMiddleware:    authMiddleware,
				ProfileStore:      profileStore,
				BrandStore:        brandStore,
				ProductStore:      productStore,
				CollectionStore:   collectionStore,
				TailorStore:       tailorStore,
				InquiryStore:      inquiryStore,
				SubscriberStore:   subscriberStore,
				SettingStore:      settingStore,
				TokenStore:        tokenStore,
				LegacySuperAdmins: cfg.LegacySuperAdmins,
			})

			log.Printf("listening on %s", cfg.HTTP.Addr)
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}
