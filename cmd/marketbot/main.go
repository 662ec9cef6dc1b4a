package main

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/mongo"

	"marketbot/core/bootstrap"
	"marketbot/core/buildinfo"
	"marketbot/core/cmd"
	"marketbot/internal/bot"
	appconfig "marketbot/internal/config"
	"marketbot/internal/model"
)

func main() {
	log.Printf("marketbot %s (%s, built %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date)

	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "configs/config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return appconfig.Load(path)
		},
		Bootstrap: func(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			cfg := carrier.(*appconfig.Config)

			res, err := bootstrap.Run(bootstrap.Options{
				Config:   cfg.CoreConfig(),
				Database: cfg.Mongo,
			})
			if err != nil {
				return nil, err
			}

			app := bot.NewApp(cfg, res.DB)

			if adminID := cfg.Telegram.AdminID; adminID != 0 {
				seedAdmin := bootstrap.SeederFunc(func(ctx context.Context, _ *mongo.Database) error {
					return app.Access().Grant(ctx, model.User{ID: adminID, IsAdmin: true})
				})
				if err := bootstrap.RunSeeders(context.Background(), res.DB, []bootstrap.Seeder{seedAdmin}); err != nil {
					return nil, err
				}
			}

			return app, nil
		},
	})
	if err != nil {
		log.Fatalf("marketbot: %v", err)
	}
}
