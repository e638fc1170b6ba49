// models/flexstring.go
package models

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// FlexString normalizes provider fields that may arrive either as a plain
// string or wrapped in a provider-specific object shape {"value": "..."}.
// Both the wire payload and previously stored documents can carry either
// form, so normalization happens in the unmarshalers rather than being
// shape-sniffed in handlers.
type FlexString string

// Str returns the underlying string value, treating a nil receiver as empty.
func (s *FlexString) Str() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Flex wraps a plain string for use in record fields.
func Flex(v string) *FlexString {
	f := FlexString(v)
	return &f
}

func (s FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*s = FlexString(plain)
		return nil
	}
	var wrapped struct {
		Value *string `json:"value"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return fmt.Errorf("flexstring: cannot decode %s", data)
	}
	if wrapped.Value != nil {
		*s = FlexString(*wrapped.Value)
	} else {
		*s = ""
	}
	return nil
}

func (s FlexString) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(string(s))
}

func (s *FlexString) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*s = FlexString(rv.StringValue())
	case bsontype.EmbeddedDocument:
		v, err := rv.Document().LookupErr("value")
		if err != nil {
			*s = ""
			return nil
		}
		if plain, ok := v.StringValueOK(); ok {
			*s = FlexString(plain)
		} else {
			*s = ""
		}
	case bsontype.Null, bsontype.Undefined:
		*s = ""
	default:
		return fmt.Errorf("flexstring: unsupported BSON type %s", t)
	}
	return nil
}
