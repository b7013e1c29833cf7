package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeValue(t *testing.T, data string) Value {
	t.Helper()
	var v Value
	require.NoError(t, json.Unmarshal([]byte(data), &v))
	return v
}

func TestValueUnmarshal_PlainForms(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		v := decodeValue(t, `"hello"`)
		s, ok := v.AsString()
		assert.True(t, ok)
		assert.Equal(t, "hello", s)
	})

	t.Run("bool false is present", func(t *testing.T) {
		v := decodeValue(t, `false`)
		b, ok := v.AsBool()
		assert.True(t, ok)
		assert.False(t, b)
	})

	t.Run("number", func(t *testing.T) {
		v := decodeValue(t, `4.5`)
		n, ok := v.AsNumber()
		assert.True(t, ok)
		assert.Equal(t, 4.5, n)
	})

	t.Run("null is absent", func(t *testing.T) {
		v := decodeValue(t, `null`)
		assert.Equal(t, KindAbsent, v.Kind())
	})

	t.Run("array", func(t *testing.T) {
		v := decodeValue(t, `["a", "b"]`)
		list := v.AsList()
		require.Len(t, list, 2)
		s, _ := list[1].AsString()
		assert.Equal(t, "b", s)
	})

	t.Run("plain object becomes struct", func(t *testing.T) {
		v := decodeValue(t, `{"title": "Hammer", "availability": false}`)
		fields, ok := v.AsStruct()
		require.True(t, ok)
		title, _ := fields["title"].AsString()
		assert.Equal(t, "Hammer", title)
		avail, present := fields["availability"].AsBool()
		assert.True(t, present)
		assert.False(t, avail)
	})
}

func TestValueUnmarshal_WrappedForms(t *testing.T) {
	t.Run("wrapped string", func(t *testing.T) {
		v := decodeValue(t, `{"kind": "stringValue", "stringValue": "x"}`)
		s, ok := v.AsString()
		assert.True(t, ok)
		assert.Equal(t, "x", s)
	})

	t.Run("content governs over kind tag", func(t *testing.T) {
		// kind disagrees with the populated variant; the content wins.
		v := decodeValue(t, `{"kind": "boolValue", "stringValue": "x"}`)
		s, ok := v.AsString()
		assert.True(t, ok)
		assert.Equal(t, "x", s)
	})

	t.Run("wrapped bool false", func(t *testing.T) {
		v := decodeValue(t, `{"boolValue": false}`)
		b, ok := v.AsBool()
		assert.True(t, ok)
		assert.False(t, b)
	})

	t.Run("wrapped list", func(t *testing.T) {
		v := decodeValue(t, `{"listValue": {"values": [{"stringValue": "a"}]}}`)
		list := v.AsList()
		require.Len(t, list, 1)
		s, _ := list[0].AsString()
		assert.Equal(t, "a", s)
	})

	t.Run("wrapped struct", func(t *testing.T) {
		v := decodeValue(t, `{"structValue": {"fields": {"id": {"stringValue": "7"}}}}`)
		fields, ok := v.AsStruct()
		require.True(t, ok)
		id, _ := fields["id"].AsString()
		assert.Equal(t, "7", id)
	})

	t.Run("bare kind tag with no variant is absent", func(t *testing.T) {
		v := decodeValue(t, `{"kind": "stringValue"}`)
		assert.Equal(t, KindAbsent, v.Kind())
	})

	t.Run("null value wrapper is absent", func(t *testing.T) {
		v := decodeValue(t, `{"nullValue": null}`)
		assert.Equal(t, KindAbsent, v.Kind())
	})
}

func TestValueAccessors_WrongVariant(t *testing.T) {
	v := decodeValue(t, `"text"`)

	_, ok := v.AsBool()
	assert.False(t, ok)
	_, ok = v.AsNumber()
	assert.False(t, ok)
	_, ok = v.AsStruct()
	assert.False(t, ok)
	assert.Empty(t, v.AsList())
}

func TestStructUnmarshal(t *testing.T) {
	t.Run("wrapped fields form", func(t *testing.T) {
		var s Struct
		require.NoError(t, json.Unmarshal([]byte(`{"fields": {"richContent": []}}`), &s))
		assert.Equal(t, KindList, s.Field("richContent").Kind())
	})

	t.Run("plain object form", func(t *testing.T) {
		var s Struct
		require.NoError(t, json.Unmarshal([]byte(`{"richContent": []}`), &s))
		assert.Equal(t, KindList, s.Field("richContent").Kind())
	})

	t.Run("nil struct field lookup is absent", func(t *testing.T) {
		var s *Struct
		assert.Equal(t, KindAbsent, s.Field("anything").Kind())
	})
}

func TestResponseMessageUnmarshal(t *testing.T) {
	data := `{
		"responseType": "HANDLER_PROMPT",
		"text": {"text": ["Hi there"]},
		"payload": {"fields": {"richContent": [[]]}}
	}`

	var msg ResponseMessage
	require.NoError(t, json.Unmarshal([]byte(data), &msg))

	assert.Equal(t, "HANDLER_PROMPT", msg.ResponseType)
	require.NotNil(t, msg.Text)
	assert.Equal(t, []string{"Hi there"}, msg.Text.Text)
	require.NotNil(t, msg.Payload)
	assert.Equal(t, KindList, msg.Payload.Field("richContent").Kind())
}
