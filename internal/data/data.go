package data

import (
	"fmt"

	"github.com/lk2023060901/search-aggregator/internal/conf"
	"github.com/lk2023060901/search-aggregator/internal/pkg/database"
	"github.com/lk2023060901/search-aggregator/internal/pkg/logger"
	"github.com/lk2023060901/search-aggregator/internal/pkg/redis"
	"github.com/lk2023060901/search-aggregator/internal/search/biz"
	searchdata "github.com/lk2023060901/search-aggregator/internal/search/data"
	"go.uber.org/zap"
)

// Data holds the storage clients opened for the configured history driver
type Data struct {
	DB          *database.DB
	RedisClient *redis.Client
	History     biz.HistoryRepo
	Logger      *logger.Logger
}

func NewData(config *conf.Config, log *logger.Logger) (*Data, func(), error) {
	d := &Data{Logger: log}

	switch config.History.Driver {
	case conf.HistoryDriverPostgres:
		db, err := database.New(&config.Database, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init database: %w", err)
		}
		if err := db.AutoMigrate(&searchdata.SearchHistoryPO{}); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		d.DB = db
		d.History = searchdata.NewHistoryRepo(db)

	case conf.HistoryDriverRedis:
		client, err := redis.New(&config.Redis, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		d.RedisClient = client
		d.History = searchdata.NewRedisHistoryRepo(client, config.History.KeyPrefix)

	default:
		d.History = searchdata.NewMemoryHistoryRepo()
	}

	log.Info("search history store ready", zap.String("driver", config.History.Driver))

	cleanup := func() {
		log.Info("cleaning up data resources")

		if d.DB != nil {
			if err := d.DB.Close(); err != nil {
				log.Warn("close database failed", zap.Error(err))
			}
		}

		if d.RedisClient != nil {
			_ = d.RedisClient.Close()
		}
	}

	return d, cleanup, nil
}
