package domain

import (
	"encoding/json"
)

// Kind identifies which variant of a Value is populated.
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
	KindList
	KindStruct
)

// Value is a Dialogflow CX typed value, decoded into a single authoritative
// tagged-union representation at the JSON boundary. The wire format is either
// a plain JSON scalar/array/object or the protobuf-JSON wrapped form
// ({"kind":"stringValue","stringValue":"x"}). The "kind" tag is advisory:
// whichever variant is actually populated governs. A value with no recognized
// variant is absent, never an error.
type Value struct {
	kind   Kind
	str    string
	num    float64
	b      bool
	list   []Value
	fields map[string]Value
}

// wrapper keys of the protobuf-JSON Value encoding. An object carrying any of
// these is treated as a wrapped value; anything else is a plain struct.
var wrapperKeys = []string{
	"stringValue", "numberValue", "boolValue", "listValue", "structValue", "nullValue", "kind",
}

// Kind reports which variant is populated.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string variant. The second return is false when the
// value is absent or holds a different variant.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsBool returns the boolean variant. An explicit false is present, not
// absent; callers must branch on the second return, never on the value.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsNumber returns the number variant.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsList returns the list variant, or an empty slice for anything else.
func (v Value) AsList() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// AsStruct returns the field map of the struct variant.
func (v Value) AsStruct() (map[string]Value, bool) {
	if v.kind != KindStruct {
		return nil, false
	}
	return v.fields, true
}

// UnmarshalJSON decodes both plain JSON values and the wrapped protobuf-JSON
// form into the union. Unrecognized shapes decode to the absent value.
func (v *Value) UnmarshalJSON(data []byte) error {
	*v = Value{}
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case 'n': // null
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value{kind: KindString, str: s}
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Value{kind: KindBool, b: b}
		return nil
	case '[':
		var items []Value
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*v = Value{kind: KindList, list: items}
		return nil
	case '{':
		return v.unmarshalObject(data)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Value{kind: KindNumber, num: n}
		return nil
	}
}

func (v *Value) unmarshalObject(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if !isWrappedValue(raw) {
		fields := make(map[string]Value, len(raw))
		for name, fieldData := range raw {
			var field Value
			if err := field.UnmarshalJSON(fieldData); err != nil {
				return err
			}
			fields[name] = field
		}
		*v = Value{kind: KindStruct, fields: fields}
		return nil
	}

	// Wrapped form: take whichever variant is populated, ignoring "kind".
	if data, ok := raw["stringValue"]; ok {
		var s string
		if json.Unmarshal(data, &s) == nil {
			*v = Value{kind: KindString, str: s}
			return nil
		}
	}
	if data, ok := raw["boolValue"]; ok {
		var b bool
		if json.Unmarshal(data, &b) == nil {
			*v = Value{kind: KindBool, b: b}
			return nil
		}
	}
	if data, ok := raw["numberValue"]; ok {
		var n float64
		if json.Unmarshal(data, &n) == nil {
			*v = Value{kind: KindNumber, num: n}
			return nil
		}
	}
	if data, ok := raw["listValue"]; ok {
		var lv struct {
			Values []Value `json:"values"`
		}
		if json.Unmarshal(data, &lv) == nil && lv.Values != nil {
			*v = Value{kind: KindList, list: lv.Values}
			return nil
		}
	}
	if data, ok := raw["structValue"]; ok {
		var sv struct {
			Fields map[string]Value `json:"fields"`
		}
		if json.Unmarshal(data, &sv) == nil && sv.Fields != nil {
			*v = Value{kind: KindStruct, fields: sv.Fields}
			return nil
		}
	}

	// A wrapper with no usable variant (e.g. nullValue, or a bare "kind"
	// tag) is absent.
	return nil
}

func isWrappedValue(raw map[string]json.RawMessage) bool {
	for _, key := range wrapperKeys {
		if _, ok := raw[key]; ok {
			return true
		}
	}
	return false
}

// Struct is a Dialogflow payload: a named collection of typed values. It
// accepts both the wrapped {"fields":{...}} encoding and a plain JSON object.
type Struct struct {
	Fields map[string]Value
}

// Field returns the named field, or the absent value when the struct is nil
// or the field is missing.
func (s *Struct) Field(name string) Value {
	if s == nil {
		return Value{}
	}
	return s.Fields[name]
}

func (s *Struct) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Fields map[string]Value `json:"fields"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Fields != nil {
		s.Fields = wrapped.Fields
		return nil
	}

	var fields map[string]Value
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	s.Fields = fields
	return nil
}

// TextLines is the text portion of a response message.
type TextLines struct {
	Text []string `json:"text"`
}

// ResponseMessage is one unit of the agent's reply: plain text, a structured
// payload, or both.
type ResponseMessage struct {
	ResponseType string     `json:"responseType"`
	Text         *TextLines `json:"text,omitempty"`
	Payload      *Struct    `json:"payload,omitempty"`
}

// Intent is the agent's classification of the user's utterance.
type Intent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// QueryResult is the result block of a detectIntent response.
type QueryResult struct {
	Intent                    *Intent           `json:"intent,omitempty"`
	IntentDetectionConfidence float64           `json:"intentDetectionConfidence"`
	Parameters                *Struct           `json:"parameters,omitempty"`
	ResponseMessages          []ResponseMessage `json:"responseMessages"`
	LanguageCode              string            `json:"languageCode,omitempty"`
}

// DetectIntentResponse is the top-level detectIntent response envelope.
type DetectIntentResponse struct {
	QueryResult *QueryResult `json:"queryResult"`
}
