package utilities

import "sync"

// Event names published by the onboarding pipeline.
const (
	EventAssessmentCompleted = "assessment_completed"
)

type EventHandler func(interface{})

// EventBus decouples the submission path from post-completion work (local
// completion flags, report warmup).
type EventBus struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(event string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers[event] = append(eb.handlers[event], handler)
}

// Publish runs each subscribed handler on its own goroutine; publishers
// never block on listeners.
func (eb *EventBus) Publish(event string, data interface{}) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if handlers, found := eb.handlers[event]; found {
		for _, handler := range handlers {
			go handler(data)
		}
	}
}

// Global instance
var GlobalEventBus = NewEventBus()
