package events

import (
	"sync"
	"time"
)

type Type string

const (
	SubscriptionCreated   Type = "subscription.created"
	SubscriptionActivated Type = "subscription.activated"
	SubscriptionDeleted   Type = "subscription.deleted"
	MeetingCreated        Type = "meeting.created"
	MeetingSynced         Type = "meeting.synced"
	UserAttached          Type = "meeting.user_attached"
)

// Event başarılı bir mutasyondan sonra yayınlanan tipli olay.
// UI'nin yenileme tetikleyicisi olarak ambient sayaçlar yerine
// bu arayüz kullanılır.
type Event struct {
	Type    Type                   `json:"type"`
	At      time.Time              `json:"at"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

type Handler func(Event)

type Bus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

func New() *Bus {
	return &Bus{handlers: map[Type][]Handler{}}
}

func (b *Bus) Subscribe(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// Publish kayıtlı tüm aboneleri senkron olarak çağırır.
func (b *Bus) Publish(t Type, payload map[string]interface{}) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[t]...)
	b.mu.RUnlock()

	e := Event{Type: t, At: time.Now(), Payload: payload}
	for _, h := range handlers {
		h(e)
	}
}

// Default uygulama genelinde paylaşılan bus.
var Default = New()

func Subscribe(t Type, h Handler) { Default.Subscribe(t, h) }

func Publish(t Type, payload map[string]interface{}) { Default.Publish(t, payload) }
