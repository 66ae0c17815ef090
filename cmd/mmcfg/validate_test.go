package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kspmm/mmcfg/pkg/cli"
)

func TestValidate_Clean(t *testing.T) {
	stdout, _, err := executeCommand(t, testConfig(t), "", "validate", "testdata/mod/good.cfg")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestValidate_Warnings(t *testing.T) {
	stdout, _, err := executeCommand(t, testConfig(t), "", "validate", "testdata/mod")
	require.NoError(t, err)
	assert.Contains(t, stdout, "warn.cfg:1:")
	assert.Contains(t, stdout, `warning: node "PART" sets more than one pass: :FIRST :FINAL [multiple-passes]`)
}

func TestValidate_Strict(t *testing.T) {
	stdout, _, err := executeCommand(t, testConfig(t), "", "validate", "--strict", "testdata/mod")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalid, cli.ExitCode(err))
	assert.NotContains(t, stdout, "warning:")
	assert.Contains(t, stdout, "[multiple-passes]")
}

func TestValidate_DisableRule(t *testing.T) {
	stdout, _, err := executeCommand(t, testConfig(t), "", "validate", "--strict", "--disable", "multiple-passes", "testdata/mod")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestValidate_SyntaxError(t *testing.T) {
	stdout, _, err := executeCommand(t, testConfig(t), "", "validate", "testdata/broken.cfg")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalid, cli.ExitCode(err))
	assert.Contains(t, stdout, "testdata/broken.cfg:3:")
}

func TestValidate_MissingPath(t *testing.T) {
	_, _, err := executeCommand(t, testConfig(t), "", "validate", "testdata/missing")
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
}

func TestValidate_UnknownFormat(t *testing.T) {
	_, _, err := executeCommand(t, testConfig(t), "", "validate", "--format", "xml", "testdata/mod")
	var cfgErr *cli.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "format", cfgErr.Field)
}

func TestValidate_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, testConfig(t), "", "validate", "--format", "json", "testdata/mod", "testdata/broken.cfg")
	require.Error(t, err)

	var report struct {
		Files []struct {
			Path string `json:"path"`
			OK   bool   `json:"ok"`
		} `json:"files"`
		Summary struct {
			Files    int `json:"files"`
			Failures int `json:"failures"`
			Warnings int `json:"warnings"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 3, report.Summary.Files)
	assert.Equal(t, 1, report.Summary.Failures)
	assert.Equal(t, 1, report.Summary.Warnings)
}

func TestValidate_GitHubFormat(t *testing.T) {
	stdout, _, err := executeCommand(t, testConfig(t), "", "validate", "--format", "github", "testdata/broken.cfg")
	require.Error(t, err)
	assert.Contains(t, stdout, "::error file=testdata/broken.cfg,line=3,")
}

func TestValidate_RecordsHistory(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Enabled = true

	_, _, err := executeCommand(t, cfg, "", "validate", "testdata/broken.cfg")
	require.Error(t, err)
	_, _, err = executeCommand(t, cfg, "", "validate", "--no-history", "testdata/mod")
	require.NoError(t, err)

	stdout, _, err := executeCommand(t, cfg, "", "history", "--json")
	require.NoError(t, err)

	var runs []struct {
		ID       string `json:"id"`
		Files    int    `json:"files"`
		Failures int    `json:"failures"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].Files)
	assert.Equal(t, 1, runs[0].Failures)
	assert.NotEmpty(t, runs[0].ID)
}
