package communication

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"bikeshare/utils"
)

const (
	reportPublisherStr = "report-publisher"
	contentTypeJson    = "application/json"
)

// exchangePublisher is the part of RabbitMQ used to publish reports
type exchangePublisher interface {
	DeclareExchanges(exchangesConfig []ExchangeDeclarationConfig) error
	PublishMessageInExchange(ctx context.Context, exchange string, routingKey string, message []byte, contentType string) error
	KillBadBunny() error
}

// ReportPublisher publishes analysis reports as JSON in a topic exchange, one routing key per city.
// Publications are serialized since the underlying channel is shared.
type ReportPublisher struct {
	config    PublisherConfig
	publisher exchangePublisher
	mutex     sync.Mutex
}

// NewReportPublisher connects to RabbitMQ and declares the reports exchange
func NewReportPublisher(config PublisherConfig) (*ReportPublisher, error) {
	rabbitMQ, err := NewRabbitMQ(config.URL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}

	reportPublisher, err := newReportPublisher(config, rabbitMQ)
	if err != nil {
		_ = rabbitMQ.KillBadBunny()
		return nil, err
	}
	return reportPublisher, nil
}

func newReportPublisher(config PublisherConfig, publisher exchangePublisher) (*ReportPublisher, error) {
	err := publisher.DeclareExchanges([]ExchangeDeclarationConfig{config.Exchange})
	if err != nil {
		return nil, err
	}
	log.Debug(getLogMessage("NewReportPublisher", "", fmt.Sprintf("exchange %s declared correctly", config.Exchange.Name), nil))

	return &ReportPublisher{
		config:    config,
		publisher: publisher,
	}, nil
}

func getLogMessage(method string, city string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[%s][city: %s][method: %s][status: ERROR] %s: %s", reportPublisherStr, city, method, message, err.Error())
	}
	return fmt.Sprintf("[%s][city: %s][method: %s][status: OK] %s", reportPublisherStr, city, method, message)
}

// RoutingKey returns the routing key used for the reports of a city, e.g. report.new-york-city
func (rp *ReportPublisher) RoutingKey(city string) string {
	if rp.config.RoutingKeyPrefix == "" {
		return utils.Slug(city)
	}
	return rp.config.RoutingKeyPrefix + "." + utils.Slug(city)
}

// PublishReport serializes report as JSON and publishes it with the routing key of city
func (rp *ReportPublisher) PublishReport(ctx context.Context, city string, report any) error {
	reportBytes, err := json.Marshal(report)
	if err != nil {
		log.Error(getLogMessage("PublishReport", city, "error marshalling report", err))
		return fmt.Errorf("error marshalling report: %w", err)
	}

	if rp.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rp.config.Timeout)
		defer cancel()
	}

	routingKey := rp.RoutingKey(city)
	rp.mutex.Lock()
	err = rp.publisher.PublishMessageInExchange(ctx, rp.config.Exchange.Name, routingKey, reportBytes, contentTypeJson)
	rp.mutex.Unlock()
	if err != nil {
		log.Error(getLogMessage("PublishReport", city, fmt.Sprintf("error publishing in %s", routingKey), err))
		return fmt.Errorf("error publishing report of %s: %w", city, err)
	}

	log.Debug(getLogMessage("PublishReport", city, fmt.Sprintf("report published with routing key %s", routingKey), nil))
	return nil
}

// Close releases the RabbitMQ connection
func (rp *ReportPublisher) Close() error {
	return rp.publisher.KillBadBunny()
}
