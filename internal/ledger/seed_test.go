package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blues/daochat/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSeed = `
campaigns:
  - id: GR
    name: Green Roofs
    description: Rooftop gardens for the city.
    funding_goal: 12
    current_funding: 3.5
    deadline_in: 240h
    contributors:
      - address: "0xaaa..."
        amount: 3.5
    proposals:
      - id: G1
        title: Buy soil
        yes: 2
        voters: ["0xaaa..."]
  - id: OLD
    name: Old Campaign
    funding_goal: 5
    deadline_in: -48h
    status: failed
`

func TestParseSeed(t *testing.T) {
	campaigns, err := ParseSeed([]byte(sampleSeed), testNow)
	require.NoError(t, err)
	require.Len(t, campaigns, 2)

	gr := campaigns[0]
	assert.Equal(t, "GR", gr.ID)
	assert.Equal(t, model.CampaignStatusActive, gr.Status)
	assert.True(t, gr.FundingGoal.Equal(dec("12")))
	assert.True(t, gr.CurrentFunding.Equal(dec("3.5")))
	assert.Equal(t, testNow.Add(240*time.Hour), gr.Deadline)
	require.Len(t, gr.Proposals, 1)
	assert.Equal(t, model.VoteTally{Yes: 2}, gr.Proposals[0].Votes)

	old := campaigns[1]
	assert.Equal(t, model.CampaignStatusFailed, old.Status)
	assert.Equal(t, testNow.Add(-48*time.Hour), old.Deadline)
	assert.NotNil(t, old.Contributors)
}

func TestParseSeedRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"missing name":      "campaigns:\n  - id: A\n    funding_goal: 1\n",
		"zero goal":         "campaigns:\n  - id: A\n    name: A\n",
		"unknown status":    "campaigns:\n  - id: A\n    name: A\n    funding_goal: 1\n    status: paused\n",
		"duplicate id":      "campaigns:\n  - {id: A, name: A, funding_goal: 1}\n  - {id: A, name: B, funding_goal: 1}\n",
		"duplicate address": "campaigns:\n  - id: A\n    name: A\n    funding_goal: 1\n    contributors: [{address: x, amount: 1}, {address: x, amount: 2}]\n",
		"bad yaml":          "campaigns: [",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSeed([]byte(body), testNow)
			assert.Error(t, err)
		})
	}
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSeed), 0o600))

	campaigns, err := LoadSeedFile(path, testNow)
	require.NoError(t, err)
	assert.Len(t, campaigns, 2)

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"), testNow)
	assert.Error(t, err)
}

func TestDefaultSeedMatchesDemoData(t *testing.T) {
	seed := DefaultSeed(testNow)
	require.Len(t, seed, 3)
	assert.Equal(t, "Project Alpha", seed[0].Name)
	assert.True(t, seed[0].CurrentFunding.Equal(dec("4.2")))
	assert.Equal(t, model.CampaignStatusSuccessful, seed[1].Status)
	assert.Equal(t, model.CampaignStatusFailed, seed[2].Status)
}
