// Package notify delivers group activity notices to out-of-band channels.
// Notifications are best effort and never fail the request that caused them.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Kind classifies an Event.
type Kind string

const (
	MemberJoined Kind = "member_joined"
	MemberLeft   Kind = "member_left"
	TableClosed  Kind = "table_closed"
)

// Event describes something that happened in a group.
type Event struct {
	Kind      Kind
	GroupID   string
	GroupName string
	// Subject is the member display name or table name the event is about.
	Subject string
	// Detail is optional extra text, such as a table's final tally.
	Detail string
}

// Text renders the event as a one-line message.
func (e Event) Text() string {
	var msg string
	switch e.Kind {
	case MemberJoined:
		msg = fmt.Sprintf("%s joined %s", e.Subject, e.GroupName)
	case MemberLeft:
		msg = fmt.Sprintf("%s left %s", e.Subject, e.GroupName)
	case TableClosed:
		msg = fmt.Sprintf("Table %s in %s is closed", e.Subject, e.GroupName)
	default:
		msg = fmt.Sprintf("%s: %s (%s)", e.Kind, e.Subject, e.GroupName)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Notifier sends events somewhere.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// LogNotifier writes events to a logger.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, event Event) error {
	n.logger.InfoContext(ctx, "group event",
		"kind", event.Kind,
		"group_id", event.GroupID,
		"subject", event.Subject,
	)
	return nil
}

// Multi fans an event out to several notifiers and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Async delivers events on a background goroutine with a timeout, so slow
// channels never hold up the caller. Failures are logged.
type Async struct {
	next    Notifier
	timeout time.Duration
	logger  *slog.Logger
}

func NewAsync(next Notifier, timeout time.Duration, logger *slog.Logger) *Async {
	return &Async{next: next, timeout: timeout, logger: logger}
}

// Notify schedules delivery and returns immediately.
func (a *Async) Notify(ctx context.Context, event Event) error {
	// Detach from the request; it is usually done before delivery is.
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		if err := a.next.Notify(ctx, event); err != nil {
			a.logger.Warn("notification failed", "kind", event.Kind, "group_id", event.GroupID, "error", err)
		}
	}()
	return nil
}
