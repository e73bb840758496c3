package schema

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefinedRejectsNaN(t *testing.T) {
	assert.False(t, Defined(math.NaN()).Valid)
	assert.False(t, Defined(math.Inf(1)).Valid)
	assert.True(t, Defined(0).Valid)
}

func TestNullableFloatJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Mean NullableFloat `json:"mean"`
		Std  NullableFloat `json:"std"`
	}{Defined(36.41), Undefined})
	assert.Nil(t, err)
	assert.Equal(t, `{"mean":36.41,"std":null}`, string(b))

	var v struct {
		Mean NullableFloat `json:"mean"`
		Std  NullableFloat `json:"std"`
	}
	assert.Nil(t, json.Unmarshal(b, &v))
	assert.Equal(t, Defined(36.41), v.Mean)
	assert.Equal(t, Undefined, v.Std)
}

func TestNullableFloatFormat(t *testing.T) {
	assert.Equal(t, "undefined", Undefined.String())
	assert.Equal(t, "36.41", Defined(36.4133).Format(2))
	assert.Equal(t, 7.0, Undefined.Or(7))
}
