package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "ninlookup/pkg/domain-errors"
)

func TestParseVerificationID(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseVerificationID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseVerificationID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("nil UUID parses but reports IsNil", func(t *testing.T) {
		id, err := ParseVerificationID(uuid.Nil.String())
		require.NoError(t, err)
		assert.True(t, id.IsNil())
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParseVerificationID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, VerificationID(valid), id)
		assert.Equal(t, valid.String(), id.String())
	})
}

func TestReference(t *testing.T) {
	t.Run("new references are well formed and distinct", func(t *testing.T) {
		seen := make(map[Reference]struct{})
		for range 100 {
			ref := NewReference()
			parsed, err := ParseReference(ref.String())
			require.NoError(t, err)
			assert.Equal(t, ref, parsed)
			seen[ref] = struct{}{}
		}
		assert.Len(t, seen, 100)
	})

	t.Run("parsing normalizes case and whitespace", func(t *testing.T) {
		ref, err := ParseReference("  nl-abcdef012345 ")
		require.NoError(t, err)
		assert.Equal(t, Reference("NL-ABCDEF012345"), ref)
	})

	t.Run("rejects malformed references", func(t *testing.T) {
		for _, in := range []string{"", "NL-123", "XX-ABCDEF012345", "NL-ABCDEF01234Z", "NL-ABCDEF0123456"} {
			_, err := ParseReference(in)
			require.Error(t, err, in)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), in)
		}
	})
}
