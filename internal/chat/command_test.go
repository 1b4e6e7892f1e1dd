package chat

import (
	"testing"

	"github.com/blues/daochat/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRoundTrip(t *testing.T) {
	for _, cmd := range []Command{
		{Verb: VerbConfirm, PendingID: "9b2f6c1e-7d1a-4b8e-9a53-1f0c2d3e4f50"},
		{Verb: VerbCancel, PendingID: "id-7"},
	} {
		encoded := EncodeCommand(cmd)
		assert.True(t, IsCommand(encoded))

		got, ok := ParseCommand(encoded)
		require.True(t, ok, encoded)
		assert.Equal(t, cmd, got)
	}
}

func TestParseCommandRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "_confirm", "_cancel", "_confirm a b", "_withdraw PF", "confirm id-1"} {
		_, ok := ParseCommand(s)
		assert.False(t, ok, s)
	}
}

func TestIsCommand(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"_confirm id-1", true},
		{"  _cancel id-1 ", true},
		{"_confirm", true},
		{"_confirm a b", true},
		{"show projects", false},
		{"_show projects", false},
		{"_transfer everything", false},
		{"_confirmation id-1", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCommand(tt.text), tt.text)
	}
}

func TestPendingTable(t *testing.T) {
	table := NewPendingTable()
	buttons := []model.Action{{ID: "b-1", Label: "Confirm Vote"}, {ID: "b-2", Label: "Cancel"}}
	table.Put("p-1", PendingVote{CampaignID: "PA", ProposalID: "P1", Choice: model.VoteYes}, buttons)

	action, ok := table.Get("p-1")
	require.True(t, ok)
	assert.Equal(t, PendingVote{CampaignID: "PA", ProposalID: "P1", Choice: model.VoteYes}, action)

	b, ok := table.Button("b-2")
	require.True(t, ok)
	assert.Equal(t, "Cancel", b.Label)

	_, ok = table.Button("b-3")
	assert.False(t, ok)
	_, ok = table.Get("p-2")
	assert.False(t, ok)
	assert.Equal(t, 1, table.Len())
}
