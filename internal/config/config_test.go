package config

import (
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spark-tui/sparkinstall/internal/errdefs"
	"github.com/spark-tui/sparkinstall/internal/launch"
	"github.com/spark-tui/sparkinstall/internal/session"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func load(t *testing.T, env map[string]string, fileContent string) (Config, error) {
	t.Helper()
	fs := afero.NewMemMapFs()
	if fileContent != "" {
		require.NoError(t, afero.WriteFile(fs, "/cfg/config.toml", []byte(fileContent), 0o644))
	}
	return Load(LoadOptions{
		Lookup:     lookupFrom(env),
		Fs:         fs,
		ConfigFile: "/cfg/config.toml",
	})
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t, map[string]string{"PATH": "/usr/bin:/bin"}, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(xdg.Home, ".local"), cfg.Prefix)
	assert.Equal(t, filepath.Join(xdg.DataHome, "applications"), cfg.DesktopDir)
	assert.Equal(t, DefaultDesktopFile, cfg.DesktopFile)
	assert.False(t, cfg.ForceX11)
	assert.Equal(t, launch.TerminalGhostty, cfg.Emulator)
	assert.Equal(t, CloneBackendGoGit, cfg.CloneBackend)
	assert.Equal(t, "/usr/bin:/bin", cfg.SearchPath)
	assert.Equal(t, session.Signals{}, cfg.Signals)

	target := cfg.Target()
	assert.Equal(t, filepath.Join(xdg.Home, ".local", "bin"), target.BinaryDir)
	assert.Equal(t, filepath.Join(xdg.Home, ".local", "bin", "spark"), cfg.BinaryPath())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	cfg, err := load(t, map[string]string{
		"PREFIX":           "/opt/spark",
		"DESKTOP_DIR":      "/tmp/apps",
		"DESKTOP_FILE":     "spark-dev.desktop",
		"FORCE_X11":        "1",
		"SPARK_TERMINAL":   "kitty",
		"CLONE_DIR":        "/tmp/spark-src",
		"CLONE_BACKEND":    "git",
		"GDK_BACKEND":      "x11",
		"WAYLAND_DISPLAY":  "wayland-0",
		"XDG_SESSION_TYPE": "wayland",
		"DISPLAY":          ":0",
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "/opt/spark/bin", cfg.Target().BinaryDir)
	assert.Equal(t, InstallTarget{
		BinaryDir:       "/opt/spark/bin",
		DesktopDir:      "/tmp/apps",
		DesktopFileName: "spark-dev.desktop",
	}, cfg.Target())
	assert.True(t, cfg.ForceX11)
	assert.Equal(t, launch.TerminalKitty, cfg.Emulator)
	assert.Equal(t, "/tmp/spark-src", cfg.CloneDir)
	assert.Equal(t, CloneBackendGit, cfg.CloneBackend)
	assert.Equal(t, session.Signals{
		Backend:        "x11",
		WaylandDisplay: "wayland-0",
		SessionType:    "wayland",
		Display:        ":0",
	}, cfg.Signals)
}

func TestForceX11Values(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "1", want: true},
		{value: "true", want: true},
		{value: "TRUE", want: false},
		{value: "yes", want: false},
		{value: "0", want: false},
		{value: "false", want: false},
		{value: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg, err := load(t, map[string]string{"FORCE_X11": tt.value}, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.ForceX11)
		})
	}
}

func TestConfigFilePrecedence(t *testing.T) {
	file := `
prefix = "/srv/spark"
desktop_file = "from-file.desktop"
force_x11 = true
terminal = "kitty"
`

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := load(t, nil, file)
		require.NoError(t, err)
		assert.Equal(t, "/srv/spark", cfg.Prefix)
		assert.Equal(t, "from-file.desktop", cfg.DesktopFile)
		assert.True(t, cfg.ForceX11)
		assert.Equal(t, launch.TerminalKitty, cfg.Emulator)
		assert.Equal(t, filepath.Join(xdg.DataHome, "applications"), cfg.DesktopDir)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		cfg, err := load(t, map[string]string{
			"PREFIX":    "/env/spark",
			"FORCE_X11": "no",
		}, file)
		require.NoError(t, err)
		assert.Equal(t, "/env/spark", cfg.Prefix)
		assert.False(t, cfg.ForceX11)
		assert.Equal(t, "from-file.desktop", cfg.DesktopFile)
	})

	t.Run("empty variable is ignored", func(t *testing.T) {
		cfg, err := load(t, map[string]string{"PREFIX": ""}, file)
		require.NoError(t, err)
		assert.Equal(t, "/srv/spark", cfg.Prefix)
	})
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name         string
		env          map[string]string
		file         string
		wantContains string
	}{
		{
			name:         "desktop file without extension",
			env:          map[string]string{"DESKTOP_FILE": "spark"},
			wantContains: "DESKTOP_FILE must end with .desktop",
		},
		{
			name:         "desktop file with directory",
			env:          map[string]string{"DESKTOP_FILE": "apps/spark.desktop"},
			wantContains: "DESKTOP_FILE must be a file name",
		},
		{
			name:         "unknown terminal",
			env:          map[string]string{"SPARK_TERMINAL": "xterm"},
			wantContains: "SPARK_TERMINAL must be one of",
		},
		{
			name:         "unknown clone backend",
			env:          map[string]string{"CLONE_BACKEND": "hg"},
			wantContains: "CLONE_BACKEND must be one of",
		},
		{
			name:         "malformed config file",
			file:         "prefix = [",
			wantContains: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.env, tt.file)
			require.Error(t, err)
			assert.True(t, errdefs.IsType(err, errdefs.ErrTypeInvalidConfig))
			assert.Contains(t, err.Error(), tt.wantContains)
		})
	}
}
