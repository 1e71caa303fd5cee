package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nba-prop-checker/internal/analysis"
	"nba-prop-checker/internal/api"
	"nba-prop-checker/internal/auth"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	secret := "propcheck-test-secret"
	t.Setenv("JWT_SECRET", secret)

	out, err := run(t, "token", "--user-id", "9", "--name", "Magic")
	require.NoError(t, err)

	user, err := auth.NewIssuer(secret, time.Hour).Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, auth.User{ID: "9", Name: "Magic"}, user)
}

func TestTokenCommandNeedsSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	_, err := run(t, "token", "--user-id", "9")
	assert.Error(t, err)
}

func TestEvalRejectsBadInputOffline(t *testing.T) {
	tests := []struct {
		args []string
		want error
	}{
		{[]string{"eval", "--player", "x", "--stat", "pts+foo", "--line", "10"}, analysis.ErrUnknownStatToken},
		{[]string{"eval", "--player", "x", "--line=-2"}, analysis.ErrInvalidPropLine},
		{[]string{"eval", "--player", "x", "--line", "10", "-n", "0"}, analysis.ErrInvalidWindowSize},
	}

	for _, tt := range tests {
		_, err := run(t, tt.args...)
		assert.ErrorIs(t, err, tt.want, strings.Join(tt.args, " "))
	}
}

func TestPrintSummary(t *testing.T) {
	base := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	history := []analysis.GameRecord{
		{GameID: 3, Date: base, Values: map[analysis.Field]float64{analysis.Points: 30}},
		{GameID: 2, Date: base.AddDate(0, 0, -2), Values: map[analysis.Field]float64{analysis.Points: 20}},
		{GameID: 1, Date: base.AddDate(0, 0, -4), Values: map[analysis.Field]float64{analysis.Points: 25}},
	}
	summary, err := analysis.Evaluate("pts", 24.5, history, 3)
	require.NoError(t, err)

	var out bytes.Buffer
	printSummary(&out, api.Player{FirstName: "Stephen", LastName: "Curry"}, summary)

	text := out.String()
	assert.Contains(t, text, "Stephen Curry  Points  line 24.5  last 3 (requested 3)")
	assert.Contains(t, text, "2025-01-31")
	assert.Contains(t, text, "OVER")
	assert.Contains(t, text, "over 2  under 1  push 0")
	assert.Contains(t, text, "hit rate 66.7%")
	assert.Contains(t, text, "current streak 1 over")
}

func TestProviderCommandsRejectBadRate(t *testing.T) {
	tests := []struct {
		rate string
		args []string
	}{
		{"0", []string{"player", "lebron"}},
		{"-5", []string{"player", "lebron"}},
		{"0", []string{"eval", "--player", "lebron", "--line", "20"}},
	}

	for _, tt := range tests {
		t.Run(tt.rate+" "+tt.args[0], func(t *testing.T) {
			t.Setenv("REQUESTS_PER_MINUTE", tt.rate)

			var err error
			require.NotPanics(t, func() { _, err = run(t, tt.args...) })
			require.Error(t, err)
			assert.Contains(t, err.Error(), "REQUESTS_PER_MINUTE")
		})
	}
}
