package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Tejas  Person = "Tejas"
	Nikita Person = "Nikita"
)

type (
	// Person is one of the two fixed participants. There is no open-ended
	// user registry; every entry references one or both of these values.
	Person string

	// Date is a calendar day. The time-of-day portion is always UTC
	// midnight so that equality and comparison behave as day arithmetic.
	Date struct {
		time.Time
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyTitle      = errors.New("empty title")
	ErrEmptyFood       = errors.New("empty food name")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidDate     = errors.New("invalid date")
	ErrUnknownPerson   = errors.New("unknown person")
	ErrUnknownMealType = errors.New("unknown meal type")
	ErrNotFound        = errors.New("entry not found")
)

// Persons returns both participants in display order.
func Persons() [2]Person {
	return [2]Person{Tejas, Nikita}
}

func (p Person) Valid() bool {
	return p == Tejas || p == Nikita
}

// Other returns the counterparty. Exactly one other participant exists.
func (p Person) Other() Person {
	if p == Tejas {
		return Nikita
	}
	return Tejas
}

func (p Person) Validate() error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPerson, string(p))
	}
	return nil
}

// ParsePerson resolves a stored or user-supplied name to a Person.
func ParsePerson(s string) (Person, error) {
	p := Person(strings.TrimSpace(s))
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day in the given location.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := time.Now().In(loc).Date()
	return NewDate(y, int(m), d)
}

// DateOf truncates a timestamp to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses the persisted "2006-01-02" form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// AddDays returns the calendar day n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// Equal reports whether two dates name the same calendar day.
func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalJSON writes the "2006-01-02" form the original blobs use.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
