// Package app assembles the services from configuration for the binaries.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/accel"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/cloud"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/config"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/database"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/history"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/realtime"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/repository"
	"github.com/ANIKETSHETTY47/smart-aquaculture-monitoring-system/internal/service"
)

// Loader builds the acceleration loader from ACCEL_ENABLED and
// ACCEL_LIBRARY_PATH: the shared library first, then the vek kernel.
func Loader() accel.Loader {
	if !config.AccelEnabled() {
		return nil
	}
	return accel.FirstOf(accel.LibraryLoader(config.AccelLibrary()), accel.VectorLoader())
}

// Build connects the stores and sinks and returns the services together with
// a function releasing everything Build opened.
func Build(ctx context.Context) (*service.Services, func(), error) {
	thresholds, err := config.Thresholds()
	if err != nil {
		return nil, nil, fmt.Errorf("threshold configuration: %w", err)
	}

	db, err := database.Connect()
	if err != nil {
		return nil, nil, fmt.Errorf("db connect: %w", err)
	}
	repos := repository.New(db)
	closers := []func(){func() { _ = db.Close() }}
	sinks := []service.Sink{repos}

	var store history.Store
	rdb, err := database.ConnectRedis(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, keeping history in memory")
		mem := history.NewMemoryStore(config.HistorySize())
		if err := warmHistory(ctx, repos, mem); err != nil {
			log.Warn().Err(err).Msg("history warm-up failed, starting with empty windows")
		}
		store = mem
	} else {
		closers = append(closers, func() { _ = rdb.Close() })
		store = history.NewRedisStore(rdb, config.HistorySize())
		sinks = append(sinks, realtime.NewRedisPublisher(rdb))
	}

	if config.UseCloudServices() {
		cloudSinks, err := cloudSinks(ctx)
		if err != nil {
			log.Error().Err(err).Msg("cloud services unavailable")
		}
		sinks = append(sinks, cloudSinks...)
	}

	svcs := service.New(service.Options{
		Thresholds: thresholds,
		Loader:     Loader(),
		Horizon:    config.ForecastHours(),
		Store:      repos,
		History:    store,
		Sinks:      sinks,
		Logger:     log.Logger,
	})

	cleanup := func() {
		svcs.Close()
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return svcs, cleanup, nil
}

func warmHistory(ctx context.Context, repos *repository.Repos, mem *history.MemoryStore) error {
	farms, err := repos.ListFarms(ctx)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(farms))
	for _, f := range farms {
		ids = append(ids, f.ID)
	}
	return mem.Warm(ctx, repos, ids...)
}

func cloudSinks(ctx context.Context) ([]service.Sink, error) {
	cfg, err := cloud.LoadConfig(ctx, config.AWSRegion())
	if err != nil {
		return nil, err
	}
	sinks := []service.Sink{
		cloud.NewDynamoDBClient(cfg, config.AlertsTable()),
		cloud.NewS3Client(cfg, config.S3Bucket()),
	}
	if arn := config.SNSTopicArn(); arn != "" {
		sinks = append(sinks, cloud.NewSNSClient(cfg, arn))
	}
	return sinks, nil
}

// SetupLogging applies LOG_LEVEL to the global logger.
func SetupLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(config.LogLevel())
}
