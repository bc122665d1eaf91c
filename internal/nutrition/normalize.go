package nutrition

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	nonNumeric    = regexp.MustCompile(`[^0-9.\-]`)
	leadingNumber = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
	plainDecimal  = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// Normalize coerces a stored magnitude into a float64. Finite numbers pass
// through, strings are reduced to their digits, minus signs and decimal points
// and parsed, and everything else is 0. It never fails.
func Normalize(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		return parseNumeric(string(n))
	case string:
		return parseNumeric(n)
	case *string:
		if n == nil {
			return 0
		}
		return parseNumeric(*n)
	case Magnitude:
		return n.Float()
	case *Magnitude:
		if n == nil {
			return 0
		}
		return n.Float()
	}
	return 0
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// parseNumeric strips non-numeric characters and parses the longest numeric
// prefix, so "1,234 kcal" is 1234 and "12.5g" is 12.5.
func parseNumeric(s string) float64 {
	cleaned := nonNumeric.ReplaceAllString(s, "")
	m := leadingNumber.FindString(cleaned)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

// Magnitude is a number-or-numeric-string value as stored by clients. The raw
// text is preserved; Float normalizes it on read.
type Magnitude struct {
	raw string
}

// Num builds a Magnitude from a number.
func Num(f float64) Magnitude {
	return Magnitude{raw: strconv.FormatFloat(finite(f), 'f', -1, 64)}
}

// Text builds a Magnitude from stored text such as "12g".
func Text(s string) Magnitude {
	return Magnitude{raw: s}
}

// Float returns the normalized value.
func (m Magnitude) Float() float64 {
	return parseNumeric(m.raw)
}

// Raw returns the value as it was stored.
func (m Magnitude) Raw() string {
	return m.raw
}

func (m Magnitude) String() string {
	return m.raw
}

// MarshalJSON writes plain numbers as JSON numbers and anything else as a string.
func (m Magnitude) MarshalJSON() ([]byte, error) {
	if m.raw == "" {
		return []byte("0"), nil
	}
	if plainDecimal.MatchString(m.raw) {
		return []byte(m.raw), nil
	}
	return json.Marshal(m.raw)
}

// UnmarshalJSON accepts a number, a string or null. Numbers are kept in plain
// decimal form. Other shapes decode to an empty magnitude rather than failing
// the whole record.
func (m *Magnitude) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		m.raw = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			m.raw = ""
			return nil
		}
		m.raw = s
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			m.raw = ""
			return nil
		}
		*m = Num(f)
	default:
		m.raw = ""
	}
	return nil
}

// Value stores the raw text.
func (m Magnitude) Value() (driver.Value, error) {
	return m.raw, nil
}

// Scan reads the raw text back from the database.
func (m *Magnitude) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		m.raw = ""
	case string:
		m.raw = v
	case []byte:
		m.raw = string(v)
	case float64:
		*m = Num(v)
	case int64:
		m.raw = strconv.FormatInt(v, 10)
	default:
		m.raw = strings.TrimSpace(fmt.Sprint(v))
	}
	return nil
}
