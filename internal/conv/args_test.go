package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Selector string `json:"selector,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

func TestDecode(t *testing.T) {
	var testCases = []struct {
		description string
		in          any
		expect      sample
		expectErr   bool
	}{
		{description: "map arguments", in: map[string]interface{}{"selector": "my_model", "limit": 5}, expect: sample{Selector: "my_model", Limit: 5}},
		{description: "float limit from JSON", in: map[string]interface{}{"limit": float64(10)}, expect: sample{Limit: 10}},
		{description: "typed value", in: sample{Selector: "a"}, expect: sample{Selector: "a"}},
		{description: "typed pointer", in: &sample{Selector: "b"}, expect: sample{Selector: "b"}},
		{description: "nil input", in: nil, expect: sample{}},
		{description: "wrong type", in: map[string]interface{}{"limit": "ten"}, expectErr: true},
	}

	for _, testCase := range testCases {
		var actual sample
		err := Decode(testCase.in, &actual)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestDecode_InvalidDestination(t *testing.T) {
	var actual sample
	assert.Error(t, Decode(map[string]interface{}{}, actual))
	assert.Error(t, Decode(map[string]interface{}{}, nil))
}

func TestPointer(t *testing.T) {
	p := Pointer(true)
	assert.True(t, *p)
	*p = false
	assert.NotSame(t, p, Pointer(true))
}
