package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/olekukonko/errors"
	"github.com/stretchr/testify/require"

	"github.com/t-barz/slimeking-sub004/parameter"
	"github.com/t-barz/slimeking-sub004/pool"
	"github.com/t-barz/slimeking-sub004/vmath"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.True(t, cfg.Pooling)
	require.Len(t, cfg.Categories, 3)

	basic, ok := cfg.Category(parameter.CategoryBasicAttack)
	require.True(t, ok)
	require.Equal(t, parameter.BasicAttackCooldown, basic.Cooldown.Std())
	require.True(t, basic.GrowthEnabled())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fx.yaml")
	doc := `
pooling: false
tickInterval: 20ms
categories:
  - name: basic_attack
    template:
      name: slash
      parts: [front, back, side]
      emitters: 1
    growth: false
    initialCapacity: 2
    hardCap: 8
    cooldown: 300ms
    duration: 250
    offset: [0, 1]
    cue: attack
  - name: heal
    template:
      name: glow
      parts: [burst]
      weighted: true
    duration: 1s
    weight: 0.5
  - name: disabled
    cooldown: 1s
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.False(t, cfg.Pooling)
	require.Equal(t, 20*time.Millisecond, cfg.TickInterval.Std())
	require.Len(t, cfg.Categories, 3)

	basic := cfg.Categories[0]
	require.False(t, basic.GrowthEnabled())
	require.Equal(t, 2, basic.InitialCapacity)
	require.Equal(t, 8, basic.HardCap)
	require.Equal(t, 250*time.Millisecond, basic.Duration.Std())
	require.Equal(t, pool.Blueprint{
		Label:    "slash",
		Parts:    []string{"front", "back", "side"},
		Emitters: 1,
	}, basic.Blueprint())

	act := basic.Action()
	require.Equal(t, "attack", act.Cue)
	require.Equal(t, vmath.V2(0, 1), act.Offset)
	require.Equal(t, 300*time.Millisecond, act.Cooldown)

	heal, ok := cfg.Category("heal")
	require.True(t, ok)
	require.True(t, heal.GrowthEnabled(), "growth defaults on when omitted")
	require.True(t, heal.Blueprint().Weighted)
	require.Equal(t, 0.5, heal.Action().Weight)

	disabled, ok := cfg.Category("disabled")
	require.True(t, ok)
	require.Nil(t, disabled.PoolTemplate())
}

func TestParseKeepsDefaultsForOmittedFields(t *testing.T) {
	cfg, err := Parse([]byte("tickInterval: 33ms\n"))
	require.NoError(t, err)
	require.True(t, cfg.Pooling)
	require.Equal(t, 33*time.Millisecond, cfg.TickInterval.Std())
	require.Len(t, cfg.Categories, len(Default().Categories))
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad duration", "tickInterval: soon\n"},
		{"zero tick", "tickInterval: 0\n"},
		{"missing name", "categories:\n  - cooldown: 1s\n"},
		{"duplicate name", "categories:\n  - name: a\n  - name: a\n"},
		{"negative capacity", "categories:\n  - name: a\n    initialCapacity: -1\n"},
		{"negative hard cap", "categories:\n  - name: a\n    hardCap: -2\n"},
		{"negative cooldown", "categories:\n  - name: a\n    cooldown: -1s\n"},
		{"weight out of range", "categories:\n  - name: a\n    weight: 1.5\n"},
		{"duplicate part", "categories:\n  - name: a\n    template:\n      name: t\n      parts: [front, front]\n"},
		{"empty template name", "categories:\n  - name: a\n    template:\n      parts: [front]\n"},
		{"malformed yaml", "categories: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestDurationYAMLRoundTrip(t *testing.T) {
	out, err := Duration(1500 * time.Millisecond).MarshalYAML()
	require.NoError(t, err)
	require.Equal(t, "1.5s", out)
}
