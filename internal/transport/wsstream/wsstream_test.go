package wsstream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePing_RecognizesPingType(t *testing.T) {
	raw := json.RawMessage(`{"type":"ping","id":"abc"}`)
	isPing, id, err := DecodePing(raw)
	require.NoError(t, err)
	assert.True(t, isPing)
	assert.Equal(t, "abc", id)
}

func TestDecodePing_RejectsOtherTypes(t *testing.T) {
	raw := json.RawMessage(`{"type":"trace_entry","id":"abc"}`)
	isPing, _, err := DecodePing(raw)
	require.NoError(t, err)
	assert.False(t, isPing)
}

func TestDecodePing_MalformedMessageErrors(t *testing.T) {
	_, _, err := DecodePing(json.RawMessage(`not json`))
	assert.Error(t, err)
}
