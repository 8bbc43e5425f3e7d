package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseList_JSONAndPythonLiteralAndAbsentMarkers(t *testing.T) {
	assert.Equal(t, []string{"cardiology", "oncology"}, ParseList(`["cardiology", "oncology"]`))
	assert.Equal(t, []string{"cardiology", "oncology"}, ParseList(`['cardiology', 'oncology']`))
	assert.Nil(t, ParseList("null"))
	assert.Nil(t, ParseList("None"))
	assert.Nil(t, ParseList("[]"))
	assert.Nil(t, ParseList(""))
}

func TestParseList_BareScalarBecomesSingleton(t *testing.T) {
	assert.Equal(t, []string{"cardiology"}, ParseList("cardiology"))
}

func TestParseInt_CoercionFailureIsAbsent(t *testing.T) {
	v, ok := ParseInt("42")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = ParseInt("not-a-number")
	assert.False(t, ok)

	_, ok = ParseInt("")
	assert.False(t, ok)
}

func TestCamelToReadable(t *testing.T) {
	assert.Equal(t, "Cardiac Surgery", CamelToReadable("cardiacSurgery"))
	assert.Equal(t, "Ear Nose And Throat", CamelToReadable("earNoseAndThroat"))
}
