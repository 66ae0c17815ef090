package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetSingleton() {
	SetConfig(nil)
	process.once = sync.Once{}
}

func TestInitialize(t *testing.T) {
	resetSingleton()
	t.Cleanup(resetSingleton)

	path := writeConfig(t, "mods: [RealFuels]\n")
	require.NoError(t, Initialize(path))

	cfg := GetConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"RealFuels"}, cfg.Mods)
}

func TestInitialize_MultipleCallsIgnored(t *testing.T) {
	resetSingleton()
	t.Cleanup(resetSingleton)

	require.NoError(t, Initialize(writeConfig(t, "mods: [First]\n")))
	require.NoError(t, Initialize(writeConfig(t, "mods: [Second]\n")))

	assert.Equal(t, []string{"First"}, GetConfig().Mods)
}

func TestInitialize_Error(t *testing.T) {
	resetSingleton()
	t.Cleanup(resetSingleton)

	err := Initialize(writeConfig(t, "validate:\n  format: xml\n"))
	assert.Error(t, err)
	assert.Nil(t, GetConfig())
}

func TestReloadConfig(t *testing.T) {
	resetSingleton()
	t.Cleanup(resetSingleton)

	path := writeConfig(t, "mods: [A]\n")
	require.NoError(t, Initialize(path))

	require.Error(t, ReloadConfig(writeConfig(t, "logging:\n  level: loud\n")))
	assert.Equal(t, []string{"A"}, GetConfig().Mods, "failed reload keeps the old config")

	require.NoError(t, ReloadConfig(writeConfig(t, "mods: [B]\n")))
	assert.Equal(t, []string{"B"}, GetConfig().Mods)
}

func TestMustGetConfig(t *testing.T) {
	resetSingleton()
	t.Cleanup(resetSingleton)

	assert.PanicsWithValue(t, "config: no configuration loaded", func() { MustGetConfig() })

	require.NoError(t, Initialize(writeConfig(t, "mods: [Kerbalism]\n")))
	assert.Equal(t, []string{"Kerbalism"}, MustGetConfig().Mods)

	require.NoError(t, ReloadConfig(writeConfig(t, "mods: [Kopernicus]\n")))
	assert.Equal(t, []string{"Kopernicus"}, MustGetConfig().Mods)
}
