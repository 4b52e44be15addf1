// Package notify provides the publish/subscribe channel for user-facing
// toast notifications. Producers (session manager, template repository
// call sites) publish; a single UI subscriber renders. Publishing with no
// subscribers degrades to a log line, since producers may fire before the
// UI subscribes during startup.
package notify

import (
	"sync"
	"time"

	"github.com/aiscreen-io/canvasctl/internal/constants"
	"github.com/aiscreen-io/canvasctl/internal/logging"
)

// Variant is the toast severity.
type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantInfo    Variant = "info"
	VariantWarning Variant = "warning"
)

// Notification is a single toast event.
type Notification struct {
	Title    string
	Message  string
	Variant  Variant
	Duration time.Duration
}

// Dispatcher manages toast subscriptions and publishing.
type Dispatcher struct {
	mu          sync.RWMutex
	subscribers []chan Notification
	logger      *logging.Logger
	closed      bool
}

// NewDispatcher creates a dispatcher. logger is used for the
// zero-subscriber fallback and may not be nil.
func NewDispatcher(logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Dispatcher{logger: logger}
}

// Subscribe registers a toast consumer. The returned channel is buffered;
// events are dropped rather than blocking producers when it fills.
func (d *Dispatcher) Subscribe() <-chan Notification {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		ch := make(chan Notification)
		close(ch)
		return ch
	}

	ch := make(chan Notification, constants.DispatcherBuffer)
	d.subscribers = append(d.subscribers, ch)
	return ch
}

// Unsubscribe removes a previously subscribed channel.
func (d *Dispatcher) Unsubscribe(ch <-chan Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	for i, sub := range d.subscribers {
		if sub == ch {
			d.subscribers[i] = d.subscribers[len(d.subscribers)-1]
			d.subscribers = d.subscribers[:len(d.subscribers)-1]
			break
		}
	}
}

// Publish delivers a notification to all subscribers without blocking.
func (d *Dispatcher) Publish(n Notification) {
	if n.Variant == "" {
		n.Variant = VariantInfo
	}
	if n.Duration == 0 {
		n.Duration = constants.ToastDefaultDuration
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	if len(d.subscribers) == 0 {
		d.logger.Info().
			Str("variant", string(n.Variant)).
			Str("title", n.Title).
			Msg(n.Message)
		return
	}

	for _, ch := range d.subscribers {
		select {
		case ch <- n:
		default:
			// Subscriber buffer full, drop rather than block the producer
		}
	}
}

// Close shuts down the dispatcher and closes all subscriber channels.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true

	for _, ch := range d.subscribers {
		close(ch)
	}
	d.subscribers = nil
}

// Success publishes a success toast.
func (d *Dispatcher) Success(title, message string) {
	d.Publish(Notification{Title: title, Message: message, Variant: VariantSuccess})
}

// Error publishes an error toast.
func (d *Dispatcher) Error(title, message string) {
	d.Publish(Notification{Title: title, Message: message, Variant: VariantError})
}

// Info publishes an informational toast.
func (d *Dispatcher) Info(title, message string) {
	d.Publish(Notification{Title: title, Message: message, Variant: VariantInfo})
}

// Warning publishes a warning toast.
func (d *Dispatcher) Warning(title, message string) {
	d.Publish(Notification{Title: title, Message: message, Variant: VariantWarning})
}
