package communication

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type publishedMessage struct {
	exchange    string
	routingKey  string
	body        []byte
	contentType string
	hasDeadline bool
}

type fakePublisher struct {
	declared   []ExchangeDeclarationConfig
	published  []publishedMessage
	declareErr error
	publishErr error
	closed     bool
}

func (f *fakePublisher) DeclareExchanges(exchangesConfig []ExchangeDeclarationConfig) error {
	f.declared = append(f.declared, exchangesConfig...)
	return f.declareErr
}

func (f *fakePublisher) PublishMessageInExchange(ctx context.Context, exchange string, routingKey string, message []byte, contentType string) error {
	_, hasDeadline := ctx.Deadline()
	f.published = append(f.published, publishedMessage{exchange, routingKey, message, contentType, hasDeadline})
	return f.publishErr
}

func (f *fakePublisher) KillBadBunny() error {
	f.closed = true
	return nil
}

func testPublisherConfig() PublisherConfig {
	return PublisherConfig{
		Enabled:          true,
		Exchange:         ExchangeDeclarationConfig{Name: "bikeshare-reports-topic", Type: "topic", Durable: true},
		RoutingKeyPrefix: "report",
		Timeout:          time.Second,
	}
}

func TestPublishReport(t *testing.T) {
	fake := &fakePublisher{}
	reportPublisher, err := newReportPublisher(testPublisherConfig(), fake)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.declared) != 1 || fake.declared[0].Name != "bikeshare-reports-topic" {
		t.Fatalf("declared exchanges = %+v", fake.declared)
	}

	report := map[string]int{"trips": 6}
	if err := reportPublisher.PublishReport(context.Background(), "new york city", report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fake.published) != 1 {
		t.Fatalf("expected 1 published message, got %v", len(fake.published))
	}
	message := fake.published[0]
	if message.exchange != "bikeshare-reports-topic" {
		t.Errorf("exchange = %v", message.exchange)
	}
	if message.routingKey != "report.new-york-city" {
		t.Errorf("routing key = %v, want report.new-york-city", message.routingKey)
	}
	if message.contentType != "application/json" {
		t.Errorf("content type = %v", message.contentType)
	}
	if !message.hasDeadline {
		t.Error("expected the publication to have a deadline")
	}

	var decoded map[string]int
	if err := json.Unmarshal(message.body, &decoded); err != nil || decoded["trips"] != 6 {
		t.Errorf("body = %s", message.body)
	}

	if err := reportPublisher.Close(); err != nil || !fake.closed {
		t.Errorf("expected the connection to be closed, err: %v", err)
	}
}

func TestPublishReportErrors(t *testing.T) {
	publishErr := errors.New("channel closed")
	reportPublisher, err := newReportPublisher(testPublisherConfig(), &fakePublisher{publishErr: publishErr})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := reportPublisher.PublishReport(context.Background(), "chicago", struct{}{}); !errors.Is(err, publishErr) {
		t.Errorf("expected the publish error, got %v", err)
	}
	if err := reportPublisher.PublishReport(context.Background(), "chicago", make(chan int)); err == nil {
		t.Error("expected an error for a value that cannot be marshalled")
	}

	declareErr := errors.New("access refused")
	if _, err := newReportPublisher(testPublisherConfig(), &fakePublisher{declareErr: declareErr}); !errors.Is(err, declareErr) {
		t.Errorf("expected the declare error, got %v", err)
	}
}

func TestRoutingKeyWithoutPrefix(t *testing.T) {
	config := testPublisherConfig()
	config.RoutingKeyPrefix = ""
	reportPublisher := &ReportPublisher{config: config, publisher: &fakePublisher{}}

	if routingKey := reportPublisher.RoutingKey("Washington"); routingKey != "washington" {
		t.Errorf("routing key = %v, want washington", routingKey)
	}
}
