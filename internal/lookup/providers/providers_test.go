package providers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ninlookup/internal/lookup/models"
)

type namedProvider string

func (p namedProvider) Name() string { return string(p) }
func (p namedProvider) Lookup(context.Context, models.Input) Result {
	return Success(nil)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(namedProvider("mono")))
	require.NoError(t, r.Register(namedProvider("mock")))

	t.Run("rejects duplicates", func(t *testing.T) {
		err := r.Register(namedProvider("mock"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})

	t.Run("rejects empty names", func(t *testing.T) {
		assert.Error(t, r.Register(namedProvider("")))
	})

	t.Run("get and names", func(t *testing.T) {
		p, ok := r.Get("mono")
		require.True(t, ok)
		assert.Equal(t, "mono", p.Name())

		_, ok = r.Get("verifyme")
		assert.False(t, ok)

		assert.Equal(t, []string{"mock", "mono"}, r.Names())
	})
}

func TestResult(t *testing.T) {
	t.Run("success carries data only", func(t *testing.T) {
		res := Success(map[string]any{"status": "ipe"})
		assert.True(t, res.OK())
		assert.Nil(t, res.Err())
		assert.Equal(t, "ipe", res.Status())

		b, err := json.Marshal(res)
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true,"data":{"status":"ipe"}}`, string(b))
	})

	t.Run("empty success still renders data", func(t *testing.T) {
		b, err := json.Marshal(Success(nil))
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true,"data":{}}`, string(b))
	})

	t.Run("failure carries the message only", func(t *testing.T) {
		res := LogicFailure("mono", "Invalid phone number")
		assert.False(t, res.OK())
		assert.Nil(t, res.Data())
		assert.Equal(t, "Invalid phone number", res.ErrorMessage())

		b, err := json.Marshal(res)
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":false,"error":"Invalid phone number"}`, string(b))
	})

	t.Run("nil failure becomes an internal error", func(t *testing.T) {
		res := Failure(nil)
		assert.False(t, res.OK())
		assert.Equal(t, ErrorInternal, res.Err().Category)
		assert.Equal(t, "Lookup failed", res.ErrorMessage())
	})

	t.Run("outcome follows the merge rule", func(t *testing.T) {
		o := Success(map[string]any{"firstName": "Ada"}).Outcome()
		assert.Equal(t, models.StatusMatched, o.Status)
		assert.Empty(t, o.Error)

		o = LogicFailure("seamfix", "Email is required for Seamfix flow").Outcome()
		assert.Equal(t, models.StatusError, o.Status)
		assert.Empty(t, o.Result)
		assert.Equal(t, "Email is required for Seamfix flow", o.Error)
	})
}

func TestProviderError(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewProviderError(ErrorProviderOutage, "verifyme", "VerifyMe is unreachable", cause)

	assert.Equal(t, "provider verifyme [provider_outage]: VerifyMe is unreachable: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrorProviderOutage, GetCategory(err))
	assert.Equal(t, ErrorInternal, GetCategory(cause))
}

func TestCannedPersonEchoesIdentifiers(t *testing.T) {
	person := CannedPerson(models.Payload{models.FieldNIN: "12345678901", models.FieldFirstName: "Tunde"})
	assert.Equal(t, "12345678901", person["nin"])
	assert.Equal(t, "Tunde", person["firstName"])
	assert.Equal(t, "Okafor", person["lastName"])
}
