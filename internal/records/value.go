package records

import (
	"strconv"
	"time"

	"github.com/spf13/cast"
)

// Kind enumerates the value types a record field can hold.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindTime
)

// Value is a single immutable record field value.
type Value struct {
	kind Kind
	str  string
	num  float64
	tm   time.Time
}

// Null returns the absent value.
func Null() Value { return Value{kind: KindNull} }

// String wraps a string value. Empty strings are treated as absent; the
// standardization layer blanks unusable fields.
func String(s string) Value {
	if s == "" {
		return Null()
	}
	return Value{kind: KindString, str: s}
}

// Number wraps a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Time wraps a date value.
func Time(t time.Time) Value {
	if t.IsZero() {
		return Null()
	}
	return Value{kind: KindTime, tm: t}
}

// From coerces an arbitrary value into a record Value. Strings stay strings,
// time.Time stays a date, numeric types become numbers, and anything else is
// rendered through cast. Nil and uncoercible values become Null.
func From(value any) Value {
	switch v := value.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case string:
		return String(v)
	case time.Time:
		return Time(v)
	case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return Null()
		}
		return Number(f)
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return Null()
		}
		return String(s)
	}
}

// Kind reports the value type.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Equal reports exact equality between two values. Absent values are never
// equal to anything, including other absent values.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind || v.kind == KindNull {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindTime:
		return v.tm.Equal(other.tm)
	default:
		return false
	}
}

// Text renders the value as a string for comparison and display. Absent
// values render as the empty string.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindTime:
		return v.tm.Format("2006-01-02")
	default:
		return ""
	}
}

// Float returns the numeric value and whether the value holds one.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Date returns the date value and whether the value holds one.
func (v Value) Date() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.tm, true
}

// Export renders the value as a JSON-friendly any for annotation snapshots.
func (v Value) Export() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindTime:
		return v.tm.Format("2006-01-02")
	default:
		return nil
	}
}
