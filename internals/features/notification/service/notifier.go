package service

import (
	"log"
)

// Event kinds dispatched by the core. Delivery itself (SMTP, push, ...)
// lives behind this boundary and is swapped per deployment.
const (
	EventAttendance   = "attendance"
	EventRegistration = "registration"
	EventReset        = "reset"
)

// Notifier is the outbound notification collaborator. Implementations
// must be fire-and-forget: they may not block or fail the core operation.
type Notifier interface {
	Notify(email string, eventKind string, payload map[string]string)
}

// Dispatch runs the notifier on its own goroutine with panic isolation,
// so a broken delivery backend can never take a scan down with it.
func Dispatch(n Notifier, email, eventKind string, payload map[string]string) {
	if n == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[WARN] notifier panic for %s/%s: %v", eventKind, email, r)
			}
		}()
		n.Notify(email, eventKind, payload)
	}()
}

// LogNotifier is the default backend: it records the event and drops it.
type LogNotifier struct{}

func (LogNotifier) Notify(email, eventKind string, payload map[string]string) {
	log.Printf("[NOTIFY] kind=%s to=%s payload=%v", eventKind, email, payload)
}
