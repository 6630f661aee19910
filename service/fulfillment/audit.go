package fulfillment

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	orderEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/order"
)

// AuditEvent is what the engine hands the activity sink on every transition.
type AuditEvent struct {
	OrderID    uint               `json:"order_id"`
	TenantID   string             `json:"tenant_id"`
	From       orderEntity.Status `json:"from"`
	To         orderEntity.Status `json:"to"`
	ActorID    uint               `json:"actor_id"`
	Note       string             `json:"note,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// AuditSink receives transition events. Sinks are best-effort: a failing
// sink is logged, never propagated into the business transaction.
type AuditSink interface {
	Emit(ev AuditEvent)
}

// LogSink writes events to the process log.
type LogSink struct{}

func (LogSink) Emit(ev AuditEvent) {
	log.Printf("audit: order=%d %s -> %s actor=%d note=%q", ev.OrderID, ev.From, ev.To, ev.ActorID, ev.Note)
}

// ElasticSink indexes events into an Elasticsearch index for the activity
// dashboard. Indexing happens off the request goroutine.
type ElasticSink struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticSink(addresses []string, index string) (*ElasticSink, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: addresses})
	if err != nil {
		return nil, err
	}
	if index == "" {
		index = "leora-activity"
	}
	return &ElasticSink{client: client, index: index}, nil
}

func (s *ElasticSink) Emit(ev AuditEvent) {
	go func() {
		body, err := json.Marshal(ev)
		if err != nil {
			log.Printf("audit: marshal event: %v", err)
			return
		}
		res, err := s.client.Index(s.index, bytes.NewReader(body))
		if err != nil {
			log.Printf("audit: elasticsearch index: %v", err)
			return
		}
		defer res.Body.Close()
		if res.IsError() {
			log.Printf("audit: elasticsearch index: %s", res.Status())
		}
	}()
}

// multiSink fans out to several sinks.
type multiSink []AuditSink

func (m multiSink) Emit(ev AuditEvent) {
	for _, s := range m {
		s.Emit(ev)
	}
}

// NewSinkFromEnv returns the log sink, fanned out to Elasticsearch when
// ELASTICSEARCH_URL is set.
func NewSinkFromEnv() AuditSink {
	sinks := multiSink{LogSink{}}
	if url := os.Getenv("ELASTICSEARCH_URL"); url != "" {
		es, err := NewElasticSink([]string{url}, os.Getenv("AUDIT_INDEX"))
		if err != nil {
			log.Printf("audit: elasticsearch disabled: %v", err)
		} else {
			sinks = append(sinks, es)
		}
	}
	return sinks
}
