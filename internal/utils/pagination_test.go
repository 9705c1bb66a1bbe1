package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablewise/table_reservation_app/internal/apperrors"
	"github.com/tablewise/table_reservation_app/internal/utils"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, utils.DefaultListLimit, utils.ClampLimit(0))
	assert.Equal(t, utils.DefaultListLimit, utils.ClampLimit(-5))
	assert.Equal(t, 42, utils.ClampLimit(42))
	assert.Equal(t, utils.MaxListLimit, utils.ClampLimit(5000))
}

func TestNextToken_RoundTrip(t *testing.T) {
	token := utils.EncodeNextToken(40)

	offset, err := utils.DecodeNextToken(&token)

	require.NoError(t, err)
	assert.Equal(t, 40, offset)
}

func TestDecodeNextToken_EmptyMeansStart(t *testing.T) {
	offset, err := utils.DecodeNextToken(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, offset)

	empty := ""
	offset, err = utils.DecodeNextToken(&empty)
	require.NoError(t, err)
	assert.Equal(t, 0, offset)
}

func TestDecodeNextToken_Malformed(t *testing.T) {
	for _, raw := range []string{"not-base64!", "bzotNQ==", "cGFnZTo1"} {
		raw := raw
		_, err := utils.DecodeNextToken(&raw)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "token %q", raw)
	}
}

func TestNextTokenForPage(t *testing.T) {
	// Full page: there may be more rows, hand out a cursor.
	token := utils.NextTokenForPage(20, 20, 20)
	require.NotNil(t, token)
	offset, err := utils.DecodeNextToken(token)
	require.NoError(t, err)
	assert.Equal(t, 40, offset)

	// Short page: the listing is exhausted.
	assert.Nil(t, utils.NextTokenForPage(40, 20, 7))
}
