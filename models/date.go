package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// Format affiché et échangé avec l'interface
	DisplayLayout = "02/01/2006"
	// Format de stockage (colonnes DATE)
	StorageLayout = "2006-01-02"
)

// Date est une date calendaire sans heure. Elle s'écrit en dd/MM/yyyy côté JSON
// et en yyyy-MM-dd côté base.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf tronque t au jour.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate accepte dd/MM/yyyy puis yyyy-MM-dd.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DisplayLayout, s); err == nil {
		return Date{t}, nil
	}
	if t, err := time.Parse(StorageLayout, s); err == nil {
		return Date{t}, nil
	}
	return Date{}, fmt.Errorf("format de date invalide %q, utilisez le format dd/mm/yyyy", s)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DisplayLayout)
}

func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }
func (d Date) After(o Date) bool  { return d.Time.After(o.Time) }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DisplayLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if s == nil || strings.TrimSpace(*s) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(StorageLayout), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = DateOf(v)
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("date: unsupported type %T", src)
	}
	return nil
}

func (d *Date) scanText(s string) error {
	// lib/pq renvoie parfois un horodatage complet
	if len(s) > len(StorageLayout) {
		s = s[:len(StorageLayout)]
	}
	t, err := time.Parse(StorageLayout, s)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	*d = Date{t}
	return nil
}
