package main

import (
	"context"
	"os"

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

	options := []analysis.Option{analysis.WithProducer(shellStr)}
	if cfg.LegacyRouteKey {
		options = append(options, analysis.WithLegacyRouteKey())
	}

	if cfg.Publisher.Enabled {
		reportPublisher, err := communication.NewReportPublisher(cfg.Publisher)
		if err != nil {
			log.Warnf("[%s] reports will not be published: %s", shellStr, err)
		} else {
			defer func() {
				if err := reportPublisher.Close(); err != nil {
					log.Errorf("[%s] error closing report publisher: %s", shellStr, err)
				}
			}()
			options = append(options, analysis.WithPublisher(reportPublisher))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-utils.GetSignalChannel()
		log.Debugf("[%s] signal received, closing", shellStr)
		cancel()
		os.Exit(0)
	}()

	service := analysis.NewService(loader.NewLoader(cfg.Loader), options...)
	shell := NewShell(service, cfg.PageSize, os.Stdin, os.Stdout)
	if err := shell.Run(ctx); err != nil {
		log.Errorf("[%s] session ended with error: %s", shellStr, err)
		cancel()
		os.Exit(1)
	}
}
