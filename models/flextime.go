package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// FlexTime is an instant that tolerates the three wire shapes clients send for
// appointment start times: seconds-since-epoch (bare number or a
// {"seconds": n} object), an ISO-8601 string, or a native JSON date string.
// Internally it is always a plain time.Time.
type FlexTime struct {
	t time.Time
}

func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{t: t}
}

func (f FlexTime) Time() time.Time {
	return f.t
}

func (f FlexTime) IsZero() bool {
	return f.t.IsZero()
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}

	// Bare number: seconds since epoch, possibly fractional.
	var secs float64
	if err := json.Unmarshal(data, &secs); err == nil {
		sec := int64(secs)
		nsec := int64((secs - float64(sec)) * float64(time.Second))
		f.t = time.Unix(sec, nsec).UTC()
		return nil
	}

	// Firestore-style timestamp object.
	var obj struct {
		Seconds     int64 `json:"seconds"`
		Nanoseconds int64 `json:"nanoseconds"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Seconds != 0 {
		f.t = time.Unix(obj.Seconds, obj.Nanoseconds).UTC()
		return nil
	}

	// String form: RFC3339 first, then the common datetime-local shapes.
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		for _, layout := range []string{
			time.RFC3339Nano,
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02T15:04",
			"2006-01-02 15:04:05",
		} {
			if t, err := time.Parse(layout, str); err == nil {
				f.t = t
				return nil
			}
		}
		return fmt.Errorf("unrecognized time string %q", str)
	}

	return fmt.Errorf("unrecognized time value %s", s)
}

// MarshalJSON always emits RFC3339.
func (f FlexTime) MarshalJSON() ([]byte, error) {
	if f.t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(f.t.Format(time.RFC3339Nano))
}

// Value implements the driver.Valuer interface.
func (f FlexTime) Value() (driver.Value, error) {
	if f.t.IsZero() {
		return nil, nil
	}
	return f.t, nil
}

// Scan implements the sql.Scanner interface.
func (f *FlexTime) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		f.t = v
		return nil
	case []byte:
		t, err := time.Parse(time.RFC3339Nano, string(v))
		if err != nil {
			return err
		}
		f.t = t
		return nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return err
		}
		f.t = t
		return nil
	default:
		return fmt.Errorf("failed to scan FlexTime: unsupported type %T", value)
	}
}

// GormDBDataType maps the column to a timezone-aware timestamp.
func (FlexTime) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return "timestamptz"
}
