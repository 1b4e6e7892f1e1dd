package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blues/daochat/internal/chat"
	"github.com/blues/daochat/internal/intent"
	"github.com/blues/daochat/internal/ledger"
	"github.com/blues/daochat/internal/model"
	"github.com/blues/daochat/internal/session"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSessions(t *testing.T) *session.Manager {
	t.Helper()
	m, err := session.NewManager(chat.NewDispatcher(intent.NewRuleClassifier()), ledger.DefaultSeed(time.Now()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestREPLContributeByActionNumber(t *testing.T) {
	sessions := newTestSessions(t)
	in := strings.NewReader("show all projects\ncontribute 1 eth to alpha\n1\nmy profile\nquit\n")
	var out bytes.Buffer

	r, err := newREPL(sessions, in, &out)
	require.NoError(t, err)
	require.NoError(t, r.run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Wallet connected: 0x")
	assert.Contains(t, text, "bot> Welcome to the DAO Crowdfunding Assistant!")
	assert.Contains(t, text, "bot> Here are the current projects:")
	assert.Contains(t, text, "[1] Confirm Contribution  [2] Cancel")
	assert.Contains(t, text, "you> Contributing 1 ETH to Project Alpha")
	assert.Contains(t, text, "bot> Successfully contributed 1 ETH to Project Alpha.")
	assert.Contains(t, text, "     Transaction Hash: 0x")
	assert.Contains(t, text, "minted Silver badge NFT-PA-1: Project Alpha Contributor Badge")
	assert.Contains(t, text, "reputation: 10")
}

func TestREPLNumberWithoutActionsIsSentAsText(t *testing.T) {
	sessions := newTestSessions(t)
	var out bytes.Buffer

	r, err := newREPL(sessions, strings.NewReader("2\n"), &out)
	require.NoError(t, err)
	require.NoError(t, r.run(context.Background()))
	assert.Contains(t, out.String(), "bot> I'm not sure how to help with that.")
}

func TestRenderLeaderboard(t *testing.T) {
	var out bytes.Buffer
	c := model.Campaign{ID: "PA", Name: "Project Alpha"}
	view := model.NewLeaderboardView(c, []model.Contribution{
		{Address: "0x456...", Amount: decimal.RequireFromString("2.2")},
		{Address: "0x123...", Amount: decimal.NewFromInt(2)},
	})
	renderMessage(&out, model.Message{Text: "Showing leaderboard for Project Alpha:", Attachment: model.NewAttachment(view)}, testNow)

	assert.Equal(t, "bot> Showing leaderboard for Project Alpha:\n"+
		"     #1  0x456...  2.2 ETH\n"+
		"     #2  0x123...  2 ETH\n", out.String())
}

func TestCampaignLine(t *testing.T) {
	seed := ledger.DefaultSeed(testNow)
	line := campaignLine(model.NewCampaignView(seed[0], testNow))
	assert.Equal(t, "PA   Project Alpha        4.2 / 10 ETH (42%)  active  15 days left", line)

	line = campaignLine(model.NewCampaignView(seed[2], testNow))
	assert.Equal(t, "PF   Project Fail         5 / 50 ETH (10%)  failed", line)
}

func TestSeedCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("campaigns:\n  - {id: GR, name: Green Roofs, funding_goal: 12, deadline_in: 240h}\n"), 0o600))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, runSeedCheck(cmd, []string{path}))
	assert.Contains(t, out.String(), "1 campaigns OK")
	assert.Contains(t, out.String(), "Green Roofs")

	require.Error(t, runSeedCheck(cmd, []string{filepath.Join(t.TempDir(), "missing.yaml")}))
}
