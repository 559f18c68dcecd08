package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ISOLayout matches the millisecond ISO-8601 form the dashboard clients parse.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is a tolerant time value for records owned by other services.
// Dates may arrive as BSON datetimes, RFC3339 strings or epoch milliseconds;
// anything unreadable decodes to the zero time and renders as the epoch.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// Normalized returns the UTC time, with the zero time mapped to the Unix epoch.
func (t Timestamp) Normalized() time.Time {
	if t.Time.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return t.Time.UTC()
}

// ISO renders the normalized time in ISOLayout.
func (t Timestamp) ISO() string {
	return t.Normalized().Format(ISOLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ISO())
}

func (t Timestamp) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(t.Time)
}

func (t *Timestamp) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: bt, Value: data}
	t.Time = time.Time{}

	switch bt {
	case bsontype.DateTime:
		if ms, ok := raw.DateTimeOK(); ok {
			t.Time = time.UnixMilli(ms).UTC()
		}
	case bsontype.String:
		if s, ok := raw.StringValueOK(); ok {
			if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
				t.Time = parsed.UTC()
			}
		}
	case bsontype.Int64:
		if ms, ok := raw.Int64OK(); ok && ms > 0 {
			t.Time = time.UnixMilli(ms).UTC()
		}
	case bsontype.Double:
		if ms, ok := raw.DoubleOK(); ok && ms > 0 {
			t.Time = time.UnixMilli(int64(ms)).UTC()
		}
	}

	// Unknown or null values stay zero and normalize to the epoch.
	return nil
}
