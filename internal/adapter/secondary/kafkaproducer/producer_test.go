package kafkaproducer

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/ruudy-sib/boxcheck/internal/domain/entity"
)

func TestReportMessage(t *testing.T) {
	msg := reportMessage("container-reports", []byte("import-1|0"), []byte(`{"batch_id":"import-1"}`))

	if msg.Topic != "container-reports" {
		t.Fatalf("expected topic container-reports, got %q", msg.Topic)
	}
	if string(msg.Key) != "import-1|0" {
		t.Fatalf("expected key import-1|0, got %q", msg.Key)
	}
	if len(msg.Headers) != 2 || msg.Headers[0].Key != "content-type" || string(msg.Headers[0].Value) != "application/json" {
		t.Fatalf("unexpected headers: %+v", msg.Headers)
	}
}

func TestDestinationProducer_Produce_requiresAddressAndTopic(t *testing.T) {
	p := NewDestinationProducer(zap.NewNop())
	defer p.Close()

	tests := []struct {
		name string
		dest entity.Destination
	}{
		{name: "missing host", dest: entity.Destination{Port: "9092", Topic: "t"}},
		{name: "missing port", dest: entity.Destination{Host: "localhost", Topic: "t"}},
		{name: "missing topic", dest: entity.Destination{Host: "localhost", Port: "9092"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := p.Produce(context.Background(), tt.dest, nil, nil); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestDestinationProducer_writerFor_caches(t *testing.T) {
	p := NewDestinationProducer(zap.NewNop()).(*DestinationProducer)

	w1 := p.writerFor("localhost:9092")
	w2 := p.writerFor("localhost:9092")
	w3 := p.writerFor("other:9092")

	if w1 != w2 {
		t.Fatal("expected cached writer to be reused")
	}
	if w1 == w3 {
		t.Fatal("expected distinct writers per address")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if len(p.writers) != 0 {
		t.Fatalf("expected writers cleared after close, got %d", len(p.writers))
	}
}

func TestHealthCheck_Check(t *testing.T) {
	h := NewHealthCheck(nil)
	if h.Name() != "kafka" {
		t.Fatalf("expected name kafka, got %q", h.Name())
	}
	if err := h.Check(context.Background()); err == nil {
		t.Fatal("expected error with no brokers")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewHealthCheck([]string{"127.0.0.1:1"}).Check(ctx); err == nil {
		t.Fatal("expected error for unreachable broker")
	}
}
