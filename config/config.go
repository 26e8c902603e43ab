package config

import (
	"errors"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/dropfour/board"
)

const (
	ConfigDebug               = "debug"
	ConfigConfigFile          = "config-file"
	ConfigSearchDepth         = "search-depth"
	ConfigSearchThreads       = "search-threads"
	ConfigAISide              = "ai-side"
	ConfigPlayMode            = "play-mode"
	ConfigAutoplayGames       = "autoplay-games"
	ConfigAutoplayThreads     = "autoplay-threads"
	ConfigAutoplayRandomPlies = "autoplay-random-plies"
	ConfigAutoplayLogfile     = "autoplay-logfile"
	ConfigCPUProfile          = "cpu-profile"
	ConfigMemProfile          = "mem-profile"
)

const (
	DefaultSearchDepth = 5
	// MaxSearchDepth keeps an exhaustive search from running for hours.
	MaxSearchDepth = 8
)

var (
	ErrBadSearchDepth = errors.New("search depth must be between 1 and 8")
	ErrBadSide        = errors.New("side must be first or second")
	ErrBadPlayMode    = errors.New("play mode must be solo or friend")
)

type Config struct {
	*viper.Viper
	// args holds what was left on the command line after the flags.
	args []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigSearchDepth, DefaultSearchDepth)
	v.SetDefault(ConfigSearchThreads, runtime.GOMAXPROCS(0))
	v.SetDefault(ConfigAISide, "second")
	v.SetDefault(ConfigPlayMode, "solo")
	v.SetDefault(ConfigAutoplayGames, 100)
	v.SetDefault(ConfigAutoplayThreads, 2)
	v.SetDefault(ConfigAutoplayRandomPlies, 2)
	v.SetDefault(ConfigAutoplayLogfile, "")
	v.SetDefault(ConfigCPUProfile, "")
	v.SetDefault(ConfigMemProfile, "")
}

// DefaultConfig returns a configuration holding only the defaults. Useful
// for tests.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v}
}

// Load reads the configuration from, in increasing priority: defaults, an
// optional YAML file given with --config-file, DROPFOUR_* environment
// variables, and command-line flags.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	fs := pflag.NewFlagSet("dropfour", pflag.ContinueOnError)
	// Flags stop at the first shell command, which has its own options.
	fs.SetInterspersed(false)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigConfigFile, "", "path to a YAML config file")
	fs.Int(ConfigSearchDepth, DefaultSearchDepth, "plies searched by the AI")
	fs.Int(ConfigSearchThreads, runtime.GOMAXPROCS(0), "worker slots used by the search")
	fs.String(ConfigAISide, "second", "side the AI plays in solo mode (first or second)")
	fs.String(ConfigPlayMode, "solo", "solo (against the AI) or friend (two humans)")
	fs.Int(ConfigAutoplayGames, 100, "number of computer-vs-computer games for autoplay")
	fs.Int(ConfigAutoplayThreads, 2, "games played at once during autoplay")
	fs.Int(ConfigAutoplayRandomPlies, 2, "random opening plies per autoplay game")
	fs.String(ConfigAutoplayLogfile, "", "file the autoplay game log is written to")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigMemProfile, "", "write a memory profile to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.args = fs.Args()

	c.SetEnvPrefix("dropfour")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cfgFile := c.GetString(ConfigConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return err
		}
	}
	return c.Validate()
}

// Validate checks the values that have a restricted range.
func (c *Config) Validate() error {
	if d := c.GetInt(ConfigSearchDepth); d < 1 || d > MaxSearchDepth {
		return ErrBadSearchDepth
	}
	if _, err := ParseSide(c.GetString(ConfigAISide)); err != nil {
		return err
	}
	switch c.GetString(ConfigPlayMode) {
	case "solo", "friend":
	default:
		return ErrBadPlayMode
	}
	return nil
}

// CommandArgs returns the positional arguments left after flag parsing.
func (c *Config) CommandArgs() []string {
	return c.args
}

func (c *Config) SearchDepth() int {
	return c.GetInt(ConfigSearchDepth)
}

func (c *Config) SearchThreads() int {
	if n := c.GetInt(ConfigSearchThreads); n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// AISide is the side the AI takes in solo mode.
func (c *Config) AISide() board.Cell {
	s, _ := ParseSide(c.GetString(ConfigAISide))
	return s
}

// ParseSide accepts "first"/"second", "1"/"2" or the side's marker.
func ParseSide(s string) (board.Cell, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first", "1", "x":
		return board.First, nil
	case "second", "2", "o":
		return board.Second, nil
	}
	return board.Empty, ErrBadSide
}

// SanitizedSettings returns every setting, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
