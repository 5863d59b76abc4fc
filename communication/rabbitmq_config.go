package communication

import "time"

// ExchangeDeclarationConfig contains the parameters to declare a RabbitMQ exchange
type ExchangeDeclarationConfig struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Durable     bool   `yaml:"durable"`
	AutoDeleted bool   `yaml:"auto_deleted"`
	Internal    bool   `yaml:"internal"`
	NoWait      bool   `yaml:"no_wait"`
}

// PublisherConfig config used to publish reports in a RabbitMQ exchange
// + Enabled: reports are only published when true
// + URL: RabbitMQ connection url
// + Exchange: exchange declared at start up where the reports are published
// + RoutingKeyPrefix: reports of a city use <prefix>.<city-slug> as routing key
// + Timeout: max time to wait for a single publication
type PublisherConfig struct {
	Enabled          bool                      `yaml:"enabled"`
	URL              string                    `yaml:"url"`
	Exchange         ExchangeDeclarationConfig `yaml:"exchange"`
	RoutingKeyPrefix string                    `yaml:"routing_key_prefix"`
	Timeout          time.Duration             `yaml:"timeout"`
}
