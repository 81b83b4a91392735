package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Number est une valeur numérique saisie librement. Le JSON peut porter un
// nombre ou un texte ("12,5", " 3 "); un texte vide ou invalide vaut 0.
type Number float64

func (n Number) Float() float64 { return float64(n) }

// ParseNumber lit une saisie libre. Séparateur décimal "," ou ".", espaces ignorés.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func (n *Number) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(ParseNumber(s))
		return nil
	}
	if string(b) == "null" {
		*n = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("nombre invalide: %s", b)
	}
	*n = Number(f)
	return nil
}

func (n Number) Value() (driver.Value, error) {
	return float64(n), nil
}

func (n *Number) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*n = 0
	case float64:
		*n = Number(v)
	case int64:
		*n = Number(v)
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return fmt.Errorf("number: %w", err)
		}
		*n = Number(f)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("number: %w", err)
		}
		*n = Number(f)
	default:
		return fmt.Errorf("number: unsupported type %T", src)
	}
	return nil
}

// NumberPtr facilite la construction des champs optionnels.
func NumberPtr(f float64) *Number {
	n := Number(f)
	return &n
}
