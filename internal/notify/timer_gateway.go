package notify

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DeliverFunc receives an alert at its scheduled instant.
type DeliverFunc func(title string, body string)

// TimerGateway delivers one-shot alerts from in-process timers. It stands in
// for a platform notification service on hosts that do not have one.
type TimerGateway struct {
	enabled bool
	channel string
	deliver DeliverFunc

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func NewTimerGateway(enabled bool, channel string, deliver DeliverFunc) *TimerGateway {
	if deliver == nil {
		deliver = func(title string, body string) {
			log.Printf("notify: [%s] %s", title, body)
		}
	}
	return &TimerGateway{
		enabled: enabled,
		channel: channel,
		deliver: deliver,
		pending: make(map[string]*time.Timer),
	}
}

func (gateway *TimerGateway) EnsureChannel() error {
	if !gateway.enabled {
		return ErrPermissionDenied
	}
	return nil
}

func (gateway *TimerGateway) Schedule(at time.Time, title string, body string) (string, error) {
	handle := uuid.NewString()

	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	gateway.pending[handle] = time.AfterFunc(time.Until(at), func() {
		gateway.mu.Lock()
		delete(gateway.pending, handle)
		gateway.mu.Unlock()
		gateway.deliver(title, body)
	})

	return handle, nil
}

func (gateway *TimerGateway) Cancel(handle string) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()

	timer, ok := gateway.pending[handle]
	if !ok {
		return
	}
	timer.Stop()
	delete(gateway.pending, handle)
}

// PendingCount reports how many alerts are still scheduled.
func (gateway *TimerGateway) PendingCount() int {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	return len(gateway.pending)
}
