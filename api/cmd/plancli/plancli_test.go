package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
)

func TestGenerateTimeline(t *testing.T) {
	var out bytes.Buffer
	cmd := newGenerateCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--start", "2024-04-01", "--end", "2024-04-03", "--adults", "2", "--activities", "temples"})

	require.NoError(t, cmd.Execute())

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "2 day trip for 2 travelers, estimated cost ¥800\n"), text)
	assert.Contains(t, text, "Day 1 (2024-04-01)")
	assert.Contains(t, text, "9:00 AM")
	assert.Contains(t, text, "Senso-ji Temple")
}

func TestGenerateJSON(t *testing.T) {
	var out bytes.Buffer
	cmd := newGenerateCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--start", "2024-04-01", "--end", "2024-04-03", "--activities", "temples,nature", "--json"})

	require.NoError(t, cmd.Execute())

	var it planner.ItineraryData
	require.NoError(t, json.Unmarshal(out.Bytes(), &it))
	assert.Equal(t, 2, it.TripDuration)
	assert.Len(t, it.Days, 2)
	assert.Equal(t, 3, it.ActivityCount())
}

func TestGenerateRejectsInvalidPreferences(t *testing.T) {
	cmd := newGenerateCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--start", "2024-04-01", "--end", "2024-04-03", "--adults", "0", "--activities", "temples"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, planner.IsValidationError(err))

	cmd = newGenerateCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--start", "first of april", "--end", "2024-04-03"})
	assert.Error(t, cmd.Execute())
}

func TestCatalog(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runCatalog(planner.ActivityNightlife, &out))
	assert.Contains(t, out.String(), "nightlife-1")
	assert.NotContains(t, out.String(), "temple-1")

	assert.Error(t, runCatalog("karaoke", &out))
}
