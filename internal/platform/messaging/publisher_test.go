package messaging

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(context.Background(), "assessment.scored", map[string]string{"k": "v"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewAMQPPublisher_BadURL(t *testing.T) {
	if _, err := NewAMQPPublisher("not-a-url", "assessments", zerolog.Nop()); err == nil {
		t.Fatal("expected error for malformed amqp url")
	}
}

func TestAMQPPublisher_EncodeError(t *testing.T) {
	p := &AMQPPublisher{exchange: "assessments", logger: zerolog.Nop()}
	if err := p.Publish(context.Background(), "assessment.scored", make(chan int)); err == nil {
		t.Fatal("expected encode error for unsupported event type")
	}
}
