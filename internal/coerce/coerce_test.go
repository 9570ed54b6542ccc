package coerce

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectPlainJSON(t *testing.T) {
	obj, err := ParseObject(`{"total_amount": 1250.0, "vendor_name": "Acme"}`)
	require.NoError(t, err)
	assert.Equal(t, 1250.0, obj["total_amount"])
	assert.Equal(t, "Acme", obj["vendor_name"])
}

func TestParseObjectTrimsWhitespace(t *testing.T) {
	obj, err := ParseObject("\n\n  {\"ok\": true}  \n")
	require.NoError(t, err)
	assert.Equal(t, true, obj["ok"])
}

func TestParseObjectJSONFence(t *testing.T) {
	text := "Here is the extraction:\n```json\n{\"invoice_number\": \"INV-1\"}\n```\nLet me know if you need more."
	obj, err := ParseObject(text)
	require.NoError(t, err)
	assert.Equal(t, "INV-1", obj["invoice_number"])
}

func TestParseObjectBareFence(t *testing.T) {
	text := "```\n{\"po_number\": \"PO-1\"}\n```"
	obj, err := ParseObject(text)
	require.NoError(t, err)
	assert.Equal(t, "PO-1", obj["po_number"])
}

func TestParseObjectBraceSlice(t *testing.T) {
	text := `Sure! The result is {"confidence": 0.9} as requested.`
	obj, err := ParseObject(text)
	require.NoError(t, err)
	assert.Equal(t, 0.9, obj["confidence"])
}

func TestParseObjectPrefersJSONFenceOverBraceSlice(t *testing.T) {
	// The brace slice spans both objects and would not decode; the fenced
	// block must win.
	text := "```json\n{\"from\": \"fence\"}\n```\ntrailing {broken"
	obj, err := ParseObject(text)
	require.NoError(t, err)
	assert.Equal(t, "fence", obj["from"])
}

func TestParseObjectNestedBraces(t *testing.T) {
	text := `prefix {"outer": {"inner": 1}} suffix`
	obj, err := ParseObject(text)
	require.NoError(t, err)
	assert.Contains(t, obj, "outer")
}

func TestParseObjectMalformed(t *testing.T) {
	_, err := ParseObject("I could not read the document, sorry.")
	var mErr *MalformedResponseError
	require.ErrorAs(t, err, &mErr)
	assert.Contains(t, mErr.Snippet, "could not read")
}

func TestParseObjectSnippetBounded(t *testing.T) {
	long := strings.Repeat("x", 5000)
	_, err := ParseObject(long)
	var mErr *MalformedResponseError
	require.ErrorAs(t, err, &mErr)
	assert.Len(t, mErr.Snippet, 200)
}

func TestParseObjectRejectsArrays(t *testing.T) {
	_, err := ParseObject(`[1, 2, 3]`)
	assert.True(t, errors.As(err, new(*MalformedResponseError)))
}

func TestParseObjectEmptyInput(t *testing.T) {
	_, err := ParseObject("")
	var mErr *MalformedResponseError
	require.ErrorAs(t, err, &mErr)
	assert.Empty(t, mErr.Snippet)
}
