package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spark-tui/sparkinstall/internal/errdefs"
	"github.com/spark-tui/sparkinstall/internal/launch"
	"github.com/spark-tui/sparkinstall/internal/log"
	"github.com/spark-tui/sparkinstall/internal/session"
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

const (
	BinaryName         = "spark"
	DefaultDesktopFile = "spark.desktop"
	DefaultRepoURL     = "https://github.com/spark-tui/spark.git"
	ConfigDirName      = "sparkinstall"
	ConfigFileName     = "config.toml"

	CloneBackendGoGit = "go-git"
	CloneBackendGit   = "git"
)

// Options are the user-tunable settings. Each one can come from the
// environment, the config file or the built-in default, in that order.
type Options struct {
	Prefix       string `env:"PREFIX" toml:"prefix" validate:"required"`
	DesktopDir   string `env:"DESKTOP_DIR" toml:"desktop_dir" validate:"required"`
	DesktopFile  string `env:"DESKTOP_FILE" toml:"desktop_file" validate:"required,endswith=.desktop,excludes=/"`
	ForceX11     bool   `env:"FORCE_X11" toml:"force_x11"`
	Terminal     string `env:"SPARK_TERMINAL" toml:"terminal" validate:"oneof=ghostty kitty"`
	CloneDir     string `env:"CLONE_DIR" toml:"clone_dir"`
	CloneBackend string `env:"CLONE_BACKEND" toml:"clone_backend" validate:"oneof=go-git git"`
}

// InstallTarget is where the binary and launcher entry end up.
type InstallTarget struct {
	BinaryDir       string
	DesktopDir      string
	DesktopFileName string
}

// Config is assembled once at startup and passed by value. Nothing
// downstream reads the process environment.
type Config struct {
	Options
	Signals    session.Signals
	SearchPath string
	SourceDir  string
	Emulator   launch.Terminal
	IsRoot     bool
}

// LookupFunc has the shape of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type LoadOptions struct {
	Lookup LookupFunc
	Fs     afero.Fs
	// ConfigFile overrides the default config file location.
	ConfigFile string
}

// DefaultOptions returns the settings used when nothing overrides them.
func DefaultOptions() Options {
	return Options{
		Prefix:       filepath.Join(xdg.Home, ".local"),
		DesktopDir:   filepath.Join(xdg.DataHome, "applications"),
		DesktopFile:  DefaultDesktopFile,
		Terminal:     "ghostty",
		CloneBackend: CloneBackendGoGit,
	}
}

// DefaultConfigFile is the optional TOML config location.
func DefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, ConfigDirName, ConfigFileName)
}

// Load assembles a Config. Precedence is env > config file > defaults.
func Load(opts LoadOptions) (Config, error) {
	if opts.Lookup == nil {
		opts.Lookup = os.LookupEnv
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = DefaultConfigFile()
	}

	options := DefaultOptions()
	if err := loadFile(opts.Fs, configFile, &options); err != nil {
		return Config{}, err
	}

	env := environMap(opts.Lookup, &Options{}, &session.Signals{})
	if err := decodeEnv(env, &options); err != nil {
		return Config{}, errdefs.InvalidConfig("failed to read environment", err)
	}

	var signals session.Signals
	if err := decodeEnv(env, &signals); err != nil {
		return Config{}, errdefs.InvalidConfig("failed to read session environment", err)
	}

	if err := validate.Struct(options); err != nil {
		return Config{}, errdefs.InvalidConfig("invalid configuration", formatValidationErrors(err))
	}

	terminal, err := launch.ParseTerminal(options.Terminal)
	if err != nil {
		return Config{}, errdefs.InvalidConfig("invalid configuration", err)
	}

	searchPath, _ := opts.Lookup("PATH")

	return Config{
		Options:    options,
		Signals:    signals,
		SearchPath: searchPath,
		SourceDir:  ".",
		Emulator:   terminal,
		IsRoot:     unix.Geteuid() == 0,
	}, nil
}

// Target derives the install locations.
func (c Config) Target() InstallTarget {
	return InstallTarget{
		BinaryDir:       filepath.Join(c.Prefix, "bin"),
		DesktopDir:      c.DesktopDir,
		DesktopFileName: c.DesktopFile,
	}
}

// BinaryPath is the installed location of the spark executable.
func (c Config) BinaryPath() string {
	return filepath.Join(c.Target().BinaryDir, BinaryName)
}

func loadFile(fs afero.Fs, path string, options *Options) error {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errdefs.InvalidConfig("failed to read config file "+path, err)
	}

	log.Debugf("Loading config file %s", path)
	if err := toml.Unmarshal(data, options); err != nil {
		return errdefs.InvalidConfig("failed to parse config file "+path, err)
	}
	return nil
}

// environMap collects the set, non-empty variables named by the env tags of
// targets.
func environMap(lookup LookupFunc, targets ...any) map[string]string {
	env := make(map[string]string)
	for _, target := range targets {
		t := reflect.TypeOf(target).Elem()
		for i := 0; i < t.NumField(); i++ {
			key := t.Field(i).Tag.Get("env")
			if key == "" {
				continue
			}
			if value, ok := lookup(key); ok && value != "" {
				env[key] = value
			}
		}
	}
	return env
}

func decodeEnv(env map[string]string, dest any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     dest,
		TagName:    "env",
		DecodeHook: strictBoolHook(),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	return decoder.Decode(env)
}

// strictBoolHook accepts only "1" and "true" as true; every other string,
// including "yes" and "TRUE", decodes to false.
func strictBoolHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
			return data, nil
		}
		s, _ := data.(string)
		return s == "1" || s == "true", nil
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		field, _ := reflect.TypeOf(Options{}).FieldByName(fe.StructField())
		name := field.Tag.Get("env")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, name+" must not be empty")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", name, fe.Param(), fe.Value()))
		case "endswith":
			msgs = append(msgs, fmt.Sprintf("%s must end with %s, got %q", name, fe.Param(), fe.Value()))
		case "excludes":
			msgs = append(msgs, fmt.Sprintf("%s must be a file name, got %q", name, fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", name, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
