package main

import (
	"context"

	log "github.com/sirupsen/logrus"

	"bikeshare/analysis"
	"bikeshare/communication"
	"bikeshare/config"
	"bikeshare/loader"
	"bikeshare/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("error loading bikeshare config: %s", err)
	}

	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("%s", err)
	}

	options := []analysis.Option{analysis.WithProducer(serverStr)}
	if cfg.LegacyRouteKey {
		options = append(options, analysis.WithLegacyRouteKey())
	}
	if cfg.Server.CacheCollections {
		options = append(options, analysis.WithCollectionCache())
	}

	if cfg.Publisher.Enabled {
		reportPublisher, err := communication.NewReportPublisher(cfg.Publisher)
		if err != nil {
			log.Errorf("[%s] error creating report publisher: %s", serverStr, err)
			return
		}
		defer func() {
			if err := reportPublisher.Close(); err != nil {
				log.Errorf("[%s] error closing report publisher: %s", serverStr, err)
			}
		}()
		options = append(options, analysis.WithPublisher(reportPublisher))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-utils.GetSignalChannel()
		log.Infof("[%s] signal received, shutting down", serverStr)
		cancel()
	}()

	service := analysis.NewService(loader.NewLoader(cfg.Loader), options...)
	server := NewServer(cfg.Server, service, cfg.PageSize)
	if err := server.Run(ctx); err != nil {
		log.Errorf("[%s] error running server: %s", serverStr, err)
	}
}
