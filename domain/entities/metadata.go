package entities

import (
	"time"

	"github.com/google/uuid"
)

// Metadata this struct contains extra information about the data that leaves the analysis core
// + ID: unique id of the payload, consumers use it to discard duplicated reports
// + City: city which belongs the data
// + Type: type of the payload, e.g. report or trips-page
// + Producer: component that built the payload, e.g. shell or server
// + Message: human readable description of the filters applied
// + GeneratedAt: moment in which the payload was built
type Metadata struct {
	ID          string    `json:"id"`
	City        string    `json:"city"`
	Type        string    `json:"type"`
	Producer    string    `json:"producer"`
	Message     string    `json:"message"`
	GeneratedAt time.Time `json:"generated_at"`
}

func NewMetadata(city string, dataType string, producer string, message string) Metadata {
	return Metadata{
		ID:          uuid.NewString(),
		City:        city,
		Type:        dataType,
		Producer:    producer,
		Message:     message,
		GeneratedAt: time.Now().UTC(),
	}
}

func (m Metadata) GetID() string {
	return m.ID
}

func (m Metadata) GetType() string {
	return m.Type
}

func (m Metadata) GetCity() string {
	return m.City
}

func (m Metadata) GetProducer() string {
	return m.Producer
}

func (m Metadata) GetMessage() string {
	return m.Message
}
