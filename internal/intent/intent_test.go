package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		assert.Equal(t, k, ParseKind(k.String()))
	}
	assert.Equal(t, KindGetStatus, ParseKind("  GET_STATUS "))
	assert.Equal(t, KindUnknown, ParseKind("transfer"))
	assert.Equal(t, KindUnknown, ParseKind(""))
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestDecodeResult(t *testing.T) {
	t.Run("full vote", func(t *testing.T) {
		res, err := DecodeResult([]byte(`{"intent":"vote","parameters":{"projectName":" Project Alpha ","proposalId":"P1","voteChoice":"yes","amount":null}}`))
		require.NoError(t, err)
		assert.Equal(t, KindVote, res.Kind)
		assert.Equal(t, "Project Alpha", res.Params.ProjectName)
		assert.Equal(t, "P1", res.Params.ProposalID)
		assert.Equal(t, "yes", res.Params.VoteChoice)
		assert.Nil(t, res.Params.Amount)
	})

	t.Run("missing parameters", func(t *testing.T) {
		res, err := DecodeResult([]byte(`{"intent":"show_profile"}`))
		require.NoError(t, err)
		assert.Equal(t, KindShowProfile, res.Kind)
		assert.Equal(t, Params{}, res.Params)
	})

	t.Run("null parameters", func(t *testing.T) {
		res, err := DecodeResult([]byte(`{"intent":"get_status","parameters":null}`))
		require.NoError(t, err)
		assert.Equal(t, KindGetStatus, res.Kind)
		assert.Empty(t, res.Params.ProjectName)
	})

	t.Run("fenced json", func(t *testing.T) {
		res, err := DecodeResult([]byte("```json\n{\"intent\":\"contribute\",\"parameters\":{\"amount\":1.25}}\n```"))
		require.NoError(t, err)
		assert.Equal(t, KindContribute, res.Kind)
		require.NotNil(t, res.Params.Amount)
		assert.Equal(t, "1.25", res.Params.Amount.String())
	})

	t.Run("unknown label", func(t *testing.T) {
		res, err := DecodeResult([]byte(`{"intent":"transfer_funds","parameters":{}}`))
		require.NoError(t, err)
		assert.Equal(t, KindUnknown, res.Kind)
	})

	for name, body := range map[string]string{
		"garbage":    "I think you want projects",
		"no intent":  `{"parameters":{}}`,
		"bad amount": `{"intent":"contribute","parameters":{"amount":"lots"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeResult([]byte(body))
			assert.ErrorIs(t, err, ErrClassifierFailure)
		})
	}
}
