package board

import (
	"context"
	"strings"
	"time"

	"github.com/napierala85-collab/kalendarz-soboty/internal/logger"
	"github.com/napierala85-collab/kalendarz-soboty/internal/schedule"
)

// Store is the persistence the Ledger writes through. Load returns the
// latest document (an empty one when nothing is persisted yet). Update runs
// mutate against a fresh copy and persists it atomically; an error from
// mutate aborts the write and is returned as-is.
type Store interface {
	Load(ctx context.Context) (*Document, error)
	Update(ctx context.Context, mutate func(*Document) error) (*Document, error)
}

// Ledger is the sole writer of the board document. It enforces the cutoff
// and privilege rules; session authentication happens before a request
// reaches it, so operations only distinguish admin from non-admin callers.
//
// Every mutation is load -> validate -> mutate -> persist whole document,
// and returns the persisted snapshot so callers never have to re-fetch.
type Ledger struct {
	store Store
	sched *schedule.Schedule
	log   logger.Logger
}

func NewLedger(store Store, sched *schedule.Schedule, log logger.Logger) *Ledger {
	return &Ledger{store: store, sched: sched, log: log}
}

// ReadAll returns the full board document.
func (l *Ledger) ReadAll(ctx context.Context) (*Document, error) {
	return l.store.Load(ctx)
}

// Register appends a signup for date. The date must be a valid target and
// its window still open at now; administrators bypass the cutoff.
func (l *Ledger) Register(ctx context.Context, now time.Time, date, name, note string, admin bool) (*Document, error) {
	if date == "" || name == "" {
		return nil, BadRequest("missing date or name")
	}
	if err := l.sched.ValidateTarget(date, now); err != nil {
		return nil, BadRequest("%s", err.Error())
	}
	if !admin && !l.sched.Open(date, now) {
		return nil, Forbidden("signup window closed")
	}

	var ts int64
	doc, err := l.store.Update(ctx, func(d *Document) error {
		ts = nextTimestamp(d.Signups[date], now.UnixMilli())
		d.Signups[date] = append(d.Signups[date], Entry{
			Name: name,
			Note: strings.TrimSpace(note),
			TS:   ts,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.Info("signup registered",
		logger.String("date", date),
		logger.Int64("ts", ts),
		logger.Bool("admin", admin))
	return doc, nil
}

// Amend updates the name and/or note of the entry identified by ts under
// date. Nil fields leave the stored value untouched. Administrators only.
func (l *Ledger) Amend(ctx context.Context, date string, ts int64, name, note *string, admin bool) (*Document, error) {
	if !admin {
		return nil, Forbidden("admin password required")
	}
	if date == "" || ts == 0 {
		return nil, BadRequest("missing date or ts")
	}

	doc, err := l.store.Update(ctx, func(d *Document) error {
		i := findEntry(d.Signups[date], ts)
		if i == -1 {
			return NotFound("entry not found")
		}
		if name != nil {
			d.Signups[date][i].Name = *name
		}
		if note != nil {
			d.Signups[date][i].Note = *note
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.Info("signup amended", logger.String("date", date), logger.Int64("ts", ts))
	return doc, nil
}

// Remove deletes the entry identified by ts under date, preserving the
// order of the remaining entries. Administrators only.
func (l *Ledger) Remove(ctx context.Context, date string, ts int64, admin bool) (*Document, error) {
	if !admin {
		return nil, Forbidden("admin password required")
	}
	if date == "" || ts == 0 {
		return nil, BadRequest("missing date or ts")
	}

	doc, err := l.store.Update(ctx, func(d *Document) error {
		list := d.Signups[date]
		i := findEntry(list, ts)
		if i == -1 {
			return NotFound("entry not found")
		}
		d.Signups[date] = append(list[:i], list[i+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.Info("signup removed", logger.String("date", date), logger.Int64("ts", ts))
	return doc, nil
}

// SetPlan publishes the plan note for date, replacing any previous one.
// An empty string is a valid "published empty" value and stays in the
// document, distinct from a date that never had a plan. Administrators only.
func (l *Ledger) SetPlan(ctx context.Context, date, text string, admin bool) (*Document, error) {
	if !admin {
		return nil, Forbidden("admin password required")
	}
	if date == "" {
		return nil, BadRequest("missing date")
	}
	if !l.sched.ValidKey(date) {
		return nil, BadRequest("invalid date format")
	}

	doc, err := l.store.Update(ctx, func(d *Document) error {
		d.Plans[date] = text
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.Info("plan published", logger.String("date", date), logger.Int("length", len(text)))
	return doc, nil
}
