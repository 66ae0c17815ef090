package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kspmm/mmcfg/pkg/cli"
)

func TestNeeds_Text(t *testing.T) {
	stdout, _, err := executeCommand(t, testConfig(t), "", "needs", "--mods", "RealFuels", "testdata/mod")
	require.NoError(t, err)
	assert.Equal(t, "testdata/mod/good.cfg:1:1: node @PART[tank] :NEEDS[RealFuels] satisfied\n", stdout)
}

func TestNeeds_ModsFromConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Mods = []string{"FAR"}

	stdout, _, err := executeCommand(t, cfg, "", "needs", "--unsatisfied", "testdata/mod")
	require.NoError(t, err)
	assert.Contains(t, stdout, ":NEEDS[RealFuels] unsatisfied")
}

func TestNeeds_Unsatisfied(t *testing.T) {
	stdout, _, err := executeCommand(t, testConfig(t), "", "needs", "--mods", "RealFuels", "--unsatisfied", "testdata/mod")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestNeeds_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, testConfig(t), "", "needs", "--mods", "B,A", "--format", "json", "testdata/mod/good.cfg")
	require.NoError(t, err)

	var out needsOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, []string{"A", "B"}, out.Mods)
	require.Len(t, out.Clauses, 1)
	assert.Equal(t, needsEntry{
		File:      "testdata/mod/good.cfg",
		Line:      1,
		Column:    1,
		Kind:      "node",
		Subject:   "@PART[tank]",
		Needs:     "RealFuels",
		Satisfied: false,
	}, out.Clauses[0])
}

func TestNeeds_ParseFailure(t *testing.T) {
	stdout, stderr, err := executeCommand(t, testConfig(t), "", "needs", "testdata/broken.cfg", "testdata/mod/good.cfg")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalid, cli.ExitCode(err))
	assert.Contains(t, stderr, "testdata/broken.cfg:3:")
	assert.Contains(t, stdout, "good.cfg")
}

func TestNeeds_UnknownFormat(t *testing.T) {
	_, _, err := executeCommand(t, testConfig(t), "", "needs", "--format", "yaml", "testdata/mod")
	var cfgErr *cli.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}
