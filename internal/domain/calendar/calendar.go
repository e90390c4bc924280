package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"hrpay/internal/apperr"
)

const dateLayout = "2006-01-02"

type Step string

const (
	StepDay   Step = "day"
	StepWeek  Step = "week"
	StepMonth Step = "month"
)

func ParseStep(raw string) (Step, error) {
	switch Step(strings.ToLower(strings.TrimSpace(raw))) {
	case StepDay, "d":
		return StepDay, nil
	case StepWeek, "w":
		return StepWeek, nil
	case StepMonth, "m":
		return StepMonth, nil
	default:
		return "", apperr.Validation("step", "must be day, week or month")
	}
}

type EventKind string

const (
	EventProgression EventKind = "progression"
	EventPayday      EventKind = "payday"
)

type Event struct {
	Kind EventKind `json:"kind"`
	Date time.Time `json:"date"`
}

// Listener reacts to a calendar event.
type Listener func(ctx context.Context, evt Event) error

// Rules decide which events a move fires.
type Rules struct {
	PayDay           int
	ProgressionMonth time.Month
}

// Events returns what moving from one date to another fires: progression
// when the move enters ProgressionMonth, payday when it lands on PayDay.
func (r Rules) Events(from, to time.Time) []Event {
	var out []Event
	if to.Month() == r.ProgressionMonth && (from.Month() != to.Month() || from.Year() != to.Year()) {
		out = append(out, Event{Kind: EventProgression, Date: to})
	}
	if to.Day() == r.PayDay {
		out = append(out, Event{Kind: EventPayday, Date: to})
	}
	return out
}

type state struct {
	Date string `json:"date"`
}

// Clock is the simulated system date.
type Clock struct {
	path      string
	rules     Rules
	mu        sync.Mutex
	today     time.Time
	listeners []Listener
}

type Result struct {
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
	Events []Event   `json:"events"`
}

// Open loads the date saved at path, or starts from now when the file is
// absent.
func Open(path string, rules Rules, now func() time.Time) (*Clock, error) {
	c := &Clock{path: path, rules: rules, today: dateOnly(now())}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, apperr.Storage("read", path, err)
	}
	var st state
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, apperr.Storage("decode", path, err)
	}
	day, err := time.Parse(dateLayout, st.Date)
	if err != nil {
		return nil, apperr.Storage("decode", path, err)
	}
	c.today = day
	return c, nil
}

func (c *Clock) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

func (c *Clock) Today() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.today
}

func (c *Clock) Rules() Rules {
	return c.rules
}

// Advance moves the date by one step, persists it and then notifies
// listeners of every event the move fired. Listener failures are returned
// joined; the new date is kept regardless.
func (c *Clock) Advance(ctx context.Context, step Step) (Result, error) {
	c.mu.Lock()
	from := c.today
	var to time.Time
	switch step {
	case StepDay:
		to = from.AddDate(0, 0, 1)
	case StepWeek:
		to = from.AddDate(0, 0, 7)
	case StepMonth:
		to = addMonth(from)
	default:
		c.mu.Unlock()
		return Result{}, apperr.Validation("step", fmt.Sprintf("unsupported step %q", step))
	}
	if err := c.save(to); err != nil {
		c.mu.Unlock()
		return Result{}, err
	}
	c.today = to
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	res := Result{From: from, To: to, Events: c.rules.Events(from, to)}
	slog.Info("calendar advanced", "from", from.Format(dateLayout), "to", to.Format(dateLayout), "events", len(res.Events))
	return res, notify(ctx, listeners, res.Events)
}

// Resume fires payday when the stored date already is the payday, so a
// start on the 25th pays out without a move.
func (c *Clock) Resume(ctx context.Context) ([]Event, error) {
	c.mu.Lock()
	today := c.today
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	if today.Day() != c.rules.PayDay {
		return nil, nil
	}
	events := []Event{{Kind: EventPayday, Date: today}}
	slog.Info("calendar resumed on payday", "date", today.Format(dateLayout))
	return events, notify(ctx, listeners, events)
}

func notify(ctx context.Context, listeners []Listener, events []Event) error {
	var errs []error
	for _, evt := range events {
		for _, l := range listeners {
			if err := l(ctx, evt); err != nil {
				slog.Warn("calendar listener failed", "event", evt.Kind, "err", err)
				errs = append(errs, fmt.Errorf("%s: %w", evt.Kind, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (c *Clock) save(day time.Time) error {
	payload, err := json.Marshal(state{Date: day.Format(dateLayout)})
	if err != nil {
		return err
	}
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperr.Storage("mkdir", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".calendar-*")
	if err != nil {
		return apperr.Storage("create", c.path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return apperr.Storage("write", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		return apperr.Storage("close", c.path, err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return apperr.Storage("rename", c.path, err)
	}
	return nil
}

// addMonth keeps the day of month, clamped to the length of the next month.
func addMonth(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
