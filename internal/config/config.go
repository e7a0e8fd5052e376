package config

import (
	"errors"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/leighmacdonald/steamid/v4/steamid"
)

var (
	errConfigWrite = errors.New("failed to write config file")
	errConfigRead  = errors.New("failed to read config file")
	errLoggerInit  = errors.New("failed to initialize logger")
	errSteamID     = errors.New("invalid steam_id")
)

const (
	ConfigDirName      = "steamweb"
	DefaultConfigName  = "steamweb"
	EnvPrefix          = "steamweb"
	DefaultHTTPTimeout = 15 * time.Second
	DefaultLogLevel    = "warn"
	DefaultLanguage    = "english"
)

type Config struct {
	// SteamID is the parsed form of SteamIDString. It is the default subject of commands
	// that take an optional steam id.
	SteamID       steamid.SteamID `mapstructure:"-"`
	SteamIDString string          `mapstructure:"steam_id"`
	APIKey        string          `mapstructure:"api_key"`
	BaseURL       string          `mapstructure:"base_url"`
	CommunityURL  string          `mapstructure:"community_url"`
	HTTPTimeout   time.Duration   `mapstructure:"http_timeout"`
	LogLevel      string          `mapstructure:"log_level"`
	Language      string          `mapstructure:"language"`
}

// Path generates a path pointing to the filename under this apps defined $XDG_CONFIG_HOME.
func Path(name string) string {
	fullPath, errFullPath := xdg.ConfigFile(path.Join(ConfigDirName, name))
	if errFullPath != nil {
		panic(errFullPath)
	}

	return fullPath
}

// ParseLevel converts a level name into a slog.Level. Unknown names are an error.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelWarn, errors.Join(err, errLoggerInit)
	}

	return level, nil
}

// LoggerInit sets up the slog global handler writing text records to output.
func LoggerInit(output io.Writer, levelName string) (*slog.Logger, error) {
	level, errLevel := ParseLevel(levelName)
	if errLevel != nil {
		return nil, errLevel
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	}))

	slog.SetDefault(logger)

	return logger, nil
}
