// Package providertest holds the behavioral contract every provider adapter must satisfy.
package providertest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ninlookup/internal/lookup/models"
	"ninlookup/internal/lookup/providers"
)

// Case is one lookup with its expected normalized result.
type Case struct {
	Name  string
	Input models.Input

	WantOK     bool
	WantStatus string // checked on success when set
	WantError  string // checked on failure when set

	Check func(t *testing.T, res providers.Result)
}

// ContractSuite runs Cases against one adapter.
type ContractSuite struct {
	Provider     providers.Provider
	ExpectedName string
	Cases        []Case
}

// Run executes every case plus the structural checks shared by all adapters:
// the adapter reports its configured name and every result carries exactly one of data/error.
func (s ContractSuite) Run(t *testing.T) {
	t.Helper()

	t.Run("name", func(t *testing.T) {
		assert.Equal(t, s.ExpectedName, s.Provider.Name())
	})

	for _, tc := range s.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			res := s.Provider.Lookup(context.Background(), tc.Input)
			AssertExactlyOne(t, res)

			require.Equal(t, tc.WantOK, res.OK(), "result: %s", mustJSON(t, res))
			if tc.WantOK && tc.WantStatus != "" {
				assert.Equal(t, tc.WantStatus, res.Data()["status"])
			}
			if !tc.WantOK && tc.WantError != "" {
				assert.Equal(t, tc.WantError, res.ErrorMessage())
			}
			if tc.Check != nil {
				tc.Check(t, res)
			}
		})
	}
}

// AssertExactlyOne fails unless res carries data xor an error, both in memory and on the wire.
func AssertExactlyOne(t *testing.T, res providers.Result) {
	t.Helper()

	if res.OK() {
		assert.NotNil(t, res.Data(), "success must carry data")
		assert.Nil(t, res.Err(), "success must not carry an error")
		assert.Empty(t, res.ErrorMessage())
	} else {
		assert.Nil(t, res.Data(), "failure must not carry data")
		require.NotNil(t, res.Err(), "failure must carry an error")
		assert.NotEmpty(t, res.ErrorMessage())
	}

	var wire map[string]any
	require.NoError(t, json.Unmarshal(mustJSON(t, res), &wire))
	_, hasData := wire["data"]
	_, hasError := wire["error"]
	assert.NotEqual(t, hasData, hasError, "wire form must carry exactly one of data/error: %v", wire)
	assert.Equal(t, res.OK(), wire["ok"])
}

func mustJSON(t *testing.T, res providers.Result) []byte {
	t.Helper()
	b, err := json.Marshal(res)
	require.NoError(t, err)
	return b
}
