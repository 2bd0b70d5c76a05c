package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// EventInfo documents a typed event for tooling.
type EventInfo struct {
	Topic         string   `json:"topic"`
	Description   string   `json:"description"`
	TypeName      string   `json:"type"`
	PayloadFields []string `json:"payload_fields"`
}

var (
	catalogMu sync.RWMutex
	catalog   = map[string]EventInfo{}
)

// Event[T] binds a topic name to its payload type.
type Event[T any] struct {
	topic string
}

// NewEvent declares a typed event and records it in the event catalog.
// Declaring the same topic twice panics since events are package-level values.
func NewEvent[T any](topic, description string) Event[T] {
	// TypeOf on a nil interface value is nil, so go through the pointer type.
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var fields []string
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			tag := t.Field(i).Tag.Get("json")
			name, _, _ := strings.Cut(tag, ",")
			if name != "" && name != "-" {
				fields = append(fields, name)
			}
		}
	}

	catalogMu.Lock()
	defer catalogMu.Unlock()
	if _, dup := catalog[topic]; dup {
		panic(fmt.Sprintf("pubsub: event %q declared twice", topic))
	}
	catalog[topic] = EventInfo{
		Topic:         topic,
		Description:   description,
		TypeName:      t.Name(),
		PayloadFields: fields,
	}
	return Event[T]{topic: topic}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topic
}

// Events lists every declared event sorted by topic.
func Events() []EventInfo {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	out := make([]EventInfo, 0, len(catalog))
	for _, info := range catalog {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out
}

// Publish encodes payload as JSON and sends it on the event's topic.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], visitorID string, payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.Name(), err)
	}
	return p.Publish(ctx, Message{
		Topic:     event.Name(),
		VisitorID: visitorID,
		Payload:   data,
	})
}

// Subscribe decodes each message on the event's topic before calling handler.
func Subscribe[T any](ctx context.Context, s Subscriber, event Event[T], handler func(ctx context.Context, visitorID string, payload T) error) error {
	return s.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("decode %s: %w", event.Name(), err)
		}
		return handler(ctx, msg.VisitorID, payload)
	})
}
