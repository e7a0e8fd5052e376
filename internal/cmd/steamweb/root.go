// Package steamweb implements the steamweb command line tool. Every normalizer of the webapi
// package is exposed as a subcommand printing its result envelope as json.
package steamweb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/charmbracelet/fang"
	"github.com/leighmacdonald/steamweb/internal/config"
	"github.com/leighmacdonald/steamweb/internal/network"
	"github.com/leighmacdonald/steamweb/pkg/webapi"
	"github.com/spf13/cobra"
)

var (
	errCommand   = errors.New("command failed")
	errResult    = errors.New("request returned an error result")
	errArgs      = errors.New("invalid argument")
	errNoSteamID = errors.New("no steam id given and steam_id is not configured")
)

type BuildInfo struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
}

// cli holds the state shared by the subcommands of a single invocation.
type cli struct {
	build      BuildInfo
	configFile string
	key        string
	jsonOutput bool
	conf       config.Config
	client     *webapi.Client
}

// NewRootCmd builds the full command tree.
func NewRootCmd(build BuildInfo) *cobra.Command {
	if build.GoVersion == "" {
		build.GoVersion = runtime.Version()
	}

	app := &cli{build: build}
	root := &cobra.Command{
		Use:               "steamweb",
		Short:             "Steam Web API client",
		Long:              `steamweb - Query the Steam Web API and print normalized results`,
		SilenceUsage:      true,
		PersistentPreRunE: app.setup,
	}

	root.PersistentFlags().StringVar(&app.configFile, "config", "", "Config file path (default $XDG_CONFIG_HOME/steamweb/steamweb.yaml)")
	root.PersistentFlags().StringVar(&app.key, "key", "", "Steam Web API key, overrides api_key")
	root.PersistentFlags().BoolVar(&app.jsonOutput, "json", false, "Print json instead of styled text for profile and check")

	root.AddCommand(
		app.versionCmd(),
		app.configCmd(),
		app.rawCmd(),
		app.resolveCmd(),
		app.summaryCmd(),
		app.bansCmd(),
		app.friendsCmd(),
		app.groupsCmd(),
		app.recentCmd(),
		app.ownedCmd(),
		app.levelCmd(),
		app.badgesCmd(),
		app.progressCmd(),
		app.groupCmd(),
		app.globalCmd(),
		app.playersCmd(),
		app.achievementsCmd(),
		app.schemaCmd(),
		app.statsCmd(),
		app.profileCmd(),
		app.checkCmd(),
	)

	return root
}

// Execute runs the command tree with fang.
func Execute(ctx context.Context, build BuildInfo) error {
	return fang.Execute(ctx, NewRootCmd(build))
}

// setup loads the config and builds the api client before any subcommand runs.
func (app *cli) setup(cmd *cobra.Command, _ []string) error {
	loader := config.NewLoader(app.configFile)

	conf, errConf := loader.Read()
	if errConf != nil {
		return errors.Join(errConf, errCommand)
	}

	if app.key != "" {
		conf.APIKey = app.key
	}

	logger, errLogger := config.LoggerInit(cmd.ErrOrStderr(), conf.LogLevel)
	if errLogger != nil {
		return errors.Join(errLogger, errCommand)
	}

	client, errClient := webapi.New(
		webapi.WithKey(conf.APIKey),
		webapi.WithBaseURL(conf.BaseURL),
		webapi.WithCommunityURL(conf.CommunityURL),
		webapi.WithLanguage(conf.Language),
		webapi.WithHTTPClient(network.NewHTTPClient(conf.HTTPTimeout)),
		webapi.WithLogger(logger),
	)
	if errClient != nil {
		return errors.Join(errClient, errCommand)
	}

	app.conf = conf
	app.client = client

	logger.Debug("Loaded config", slog.String("path", loader.Path()),
		slog.Bool("key_set", conf.APIKey != ""))

	return nil
}

func (app *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about steamweb",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		// The version never needs a config or a client.
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "steamweb - Steam Web API client\n\n")
			fmt.Fprintf(out, "  Version: %s\n", app.build.Version)
			fmt.Fprintf(out, "  Commit:  %s\n", app.build.Commit)
			fmt.Fprintf(out, "  Built:   %s\n", app.build.Date)
			fmt.Fprintf(out, "  Runtime: %s\n\n", app.build.GoVersion)
		},
	}
}

// configCmd writes the effective config, flags and environment included, to the config file.
func (app *cli) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Write the current configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader := config.NewLoader(app.configFile)
			if err := loader.Write(app.conf); err != nil {
				return errors.Join(err, errCommand)
			}

			target := app.configFile
			if target == "" {
				target = config.Path(config.DefaultConfigName + ".yaml")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)

			return nil
		},
	}
}
