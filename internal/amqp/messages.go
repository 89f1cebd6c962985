package amqp

import (
	"encoding/json"
	"time"
)

// IngestCompletedMessage announces that a fresh export is available.
type IngestCompletedMessage struct {
	Records   int       `json:"records"`
	Expenses  int       `json:"expenses"`
	Output    string    `json:"output"`
	Snapshot  string    `json:"snapshot,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewIngestCompletedMessage stamps the message with the current time.
func NewIngestCompletedMessage(records, expenses int, output, snapshot string) *IngestCompletedMessage {
	return &IngestCompletedMessage{
		Records:   records,
		Expenses:  expenses,
		Output:    output,
		Snapshot:  snapshot,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *IngestCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// IngestCompletedMessageFromJSON decodes a message body.
func IngestCompletedMessageFromJSON(data []byte) (*IngestCompletedMessage, error) {
	var msg IngestCompletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
