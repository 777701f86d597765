package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"

	"hiring-pipeline/internal/common/aws"
	"hiring-pipeline/internal/common/camunda"
	"hiring-pipeline/internal/common/config"
	"hiring-pipeline/internal/common/database"
	"hiring-pipeline/internal/common/logger"
	"hiring-pipeline/internal/export"
	"hiring-pipeline/internal/notify"
	"hiring-pipeline/internal/pipeline"
	"hiring-pipeline/internal/scoring"
	"hiring-pipeline/internal/store"
	"hiring-pipeline/internal/store/postgres"
	"hiring-pipeline/internal/store/redisstore"
)

var storeRetry = camunda.RetryConfig{
	MaxRetries: 10,
	BaseDelay:  camunda.DefaultRetryConfig.BaseDelay,
	MaxDelay:   camunda.DefaultRetryConfig.MaxDelay,
}

func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (store.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		var rdb *redis.Client
		err := camunda.WithRetry(ctx, storeRetry, "redis connection", log, func(ctx context.Context) error {
			var err error
			rdb, err = database.OpenRedis(ctx, cfg.Database.Redis)
			return err
		})
		if err != nil {
			return nil, err
		}
		return redisstore.New(rdb, cfg.Store.KeyPrefix), nil

	case config.StoreDriverPostgres:
		var db *sql.DB
		err := camunda.WithRetry(ctx, storeRetry, "postgres connection", log, func(ctx context.Context) error {
			var err error
			db, err = database.OpenPostgres(ctx, cfg.Database.Postgres)
			return err
		})
		if err != nil {
			return nil, err
		}
		pg := postgres.New(db)
		if cfg.Store.AutoMigrate {
			if err := pg.Migrate(ctx); err != nil {
				pg.Close()
				return nil, err
			}
			log.Info("postgres schema applied", nil)
		}
		return pg, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func buildCollaborators(ctx context.Context, cfg *config.Config, log logger.Logger) (pipeline.Collaborators, error) {
	var c pipeline.Collaborators

	scorer, err := scoring.NewClient(cfg.Collaborators.Scoring, log)
	if err != nil {
		return c, fmt.Errorf("scoring client: %w", err)
	}
	c.Scorer = scorer

	ncfg := cfg.Collaborators.Notification
	if ncfg.EmailEnabled || ncfg.SMSEnabled {
		awsCfg, err := aws.LoadConfig(ctx, ncfg.AWSRegion)
		if err != nil {
			return c, err
		}
		c.Notifier = notify.NewService(ncfg, aws.NewSESClient(awsCfg), aws.NewSNSClient(awsCfg),
			config.GetDuration(cfg.Pipeline.Interview.NotificationTimeout), log)
	} else {
		c.Notifier = notify.Noop{}
	}

	var es *elasticsearch.Client
	if cfg.Collaborators.Export.ElasticsearchEnabled {
		es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return c, fmt.Errorf("elasticsearch client: %w", err)
		}
		err = camunda.WithRetry(ctx, storeRetry, "elasticsearch connection", log, func(ctx context.Context) error {
			return database.PingElasticsearch(ctx, es)
		})
		if err != nil {
			return c, err
		}
	}
	c.Exporter = export.New(cfg.Collaborators.Export, es, log)
	return c, nil
}
