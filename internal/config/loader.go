package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/leighmacdonald/steamid/v4/steamid"
	"github.com/leighmacdonald/steamweb/pkg/webapi"
	"github.com/spf13/viper"
)

// Loader handles setting up viper and loading configuration from files and the environment.
type Loader struct {
	*viper.Viper
}

// NewLoader returns a loader reading configFile when set, otherwise steamweb.yaml from the
// xdg config dir or the working directory.
func NewLoader(configFile string) *Loader {
	loader := Loader{Viper: viper.New()}
	loader.SetDefault("api_key", "")
	loader.SetDefault("steam_id", "")
	loader.SetDefault("base_url", webapi.DefaultBaseURL)
	loader.SetDefault("community_url", webapi.DefaultCommunityURL)
	loader.SetDefault("http_timeout", DefaultHTTPTimeout)
	loader.SetDefault("log_level", DefaultLogLevel)
	loader.SetDefault("language", DefaultLanguage)
	loader.SetConfigType("yaml")

	if configFile != "" {
		loader.SetConfigFile(configFile)
	} else {
		loader.SetConfigName(DefaultConfigName)
		loader.AddConfigPath(Path(""))
		loader.AddConfigPath(".")
	}

	loader.SetEnvPrefix(EnvPrefix)
	loader.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	loader.AutomaticEnv()

	return &loader
}

func (cl *Loader) Path() string {
	return cl.ConfigFileUsed()
}

// Write persists config to the file the loader points at.
func (cl *Loader) Write(config Config) error {
	if config.SteamID.Valid() {
		cl.Set("steam_id", config.SteamID.String())
	} else {
		cl.Set("steam_id", "")
	}
	cl.Set("api_key", config.APIKey)
	cl.Set("base_url", config.BaseURL)
	cl.Set("community_url", config.CommunityURL)
	cl.Set("http_timeout", config.HTTPTimeout.String())
	cl.Set("log_level", config.LogLevel)
	cl.Set("language", config.Language)

	target := cl.ConfigFileUsed()
	if target == "" {
		target = Path(DefaultConfigName + ".yaml")
	}

	if err := cl.WriteConfigAs(target); err != nil {
		return errors.Join(err, errConfigWrite)
	}

	return nil
}

// Read loads the config. A missing config file is not an error, the defaults and the
// environment still apply.
func (cl *Loader) Read() (Config, error) {
	if err := cl.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Join(err, errConfigRead)
		}
	}

	var config Config
	if err := cl.Unmarshal(&config); err != nil {
		return Config{}, errors.Join(err, errConfigRead)
	}

	if config.SteamIDString != "" {
		sid := steamid.New(config.SteamIDString)
		if !sid.Valid() {
			return Config{}, errors.Join(errSteamID, errConfigRead)
		}
		config.SteamID = sid
	}

	return config, nil
}
