package steamweb

import (
	"github.com/spf13/cobra"
)

func (app *cli) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <vanity>",
		Short: "Resolve a vanity name to a steam id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.client.ResolveName(cmd.Context(), args[0])

			return printResult(cmd, res, err)
		},
	}
}

func (app *cli) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [steamid...]",
		Short: "Fetch player summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			steamIDs, errIDs := app.subjects(args)
			if errIDs != nil {
				return errIDs
			}

			res, err := app.client.GetPlayerSummaries(cmd.Context(), steamIDs...)

			return printResult(cmd, res, err)
		},
	}
}

func (app *cli) bansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bans [steamid...]",
		Short: "Fetch vac, game, community and trade bans",
		RunE: func(cmd *cobra.Command, args []string) error {
			steamIDs, errIDs := app.subjects(args)
			if errIDs != nil {
				return errIDs
			}

			res, err := app.client.GetPlayerBans(cmd.Context(), steamIDs...)

			return printResult(cmd, res, err)
		},
	}
}

func (app *cli) friendsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "friends [steamid]",
		Short: "Fetch a players friend list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steamID, errID := app.subject(args, 0)
			if errID != nil {
				return errID
			}

			res, err := app.client.GetFriendList(cmd.Context(), steamID, !all)

			return printResult(cmd, res, err)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include every relationship, not only friends")

	return cmd
}

func (app *cli) groupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups [steamid]",
		Short: "Fetch the ids of the groups a player is a member of",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steamID, errID := app.subject(args, 0)
			if errID != nil {
				return errID
			}

			res, err := app.client.GetUserGroups(cmd.Context(), steamID)

			return printResult(cmd, res, err)
		},
	}
}

func (app *cli) recentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent [steamid]",
		Short: "Fetch games played in the last two weeks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steamID, errID := app.subject(args, 0)
			if errID != nil {
				return errID
			}

			res, err := app.client.GetRecentlyPlayedGames(cmd.Context(), steamID, limit)

			return printResult(cmd, res, err)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of games, 0 for all")

	return cmd
}

func (app *cli) ownedCmd() *cobra.Command {
	var (
		appIDs []int
		info   bool
	)

	cmd := &cobra.Command{
		Use:   "owned [steamid]",
		Short: "Fetch owned games",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steamID, errID := app.subject(args, 0)
			if errID != nil {
				return errID
			}

			res, err := app.client.GetOwnedGames(cmd.Context(), steamID, appIDs, info)

			return printResult(cmd, res, err)
		},
	}
	cmd.Flags().IntSliceVar(&appIDs, "appid", nil, "Only include these app ids")
	cmd.Flags().BoolVar(&info, "info", true, "Include game names and icons")

	return cmd
}

func (app *cli) levelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "level [steamid]",
		Short: "Fetch a players steam level",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steamID, errID := app.subject(args, 0)
			if errID != nil {
				return errID
			}

			res, err := app.client.GetSteamLevel(cmd.Context(), steamID)

			return printResult(cmd, res, err)
		},
	}
}

func (app *cli) badgesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "badges [steamid]",
		Short: "Fetch a players badges and xp",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steamID, errID := app.subject(args, 0)
			if errID != nil {
				return errID
			}

			res, err := app.client.GetBadges(cmd.Context(), steamID)

			return printResult(cmd, res, err)
		},
	}
}

func (app *cli) progressCmd() *cobra.Command {
	var badge string

	cmd := &cobra.Command{
		Use:   "progress [steamid]",
		Short: "Fetch quest progress towards a badge",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steamID, errID := app.subject(args, 0)
			if errID != nil {
				return errID
			}

			res, err := app.client.GetBadgeProgress(cmd.Context(), steamID, badge)

			return printResult(cmd, res, err)
		},
	}
	cmd.Flags().StringVar(&badge, "badge", "", "Badge id, event name or special badge name (default community)")

	return cmd
}

func (app *cli) groupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "group <gid|name>",
		Short: "Fetch a group by 64 bit id or vanity name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.client.GetGroupInfo(cmd.Context(), args[0])

			return printResult(cmd, res, err)
		},
	}
}

func (app *cli) globalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "global <appid>",
		Short: "Fetch global achievement unlock percentages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, errAppID := parseAppID(args[0])
			if errAppID != nil {
				return errAppID
			}

			res, err := app.client.GetGlobalAchievements(cmd.Context(), appID)

			return printResult(cmd, res, err)
		},
	}
}

func (app *cli) playersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players <appid>",
		Short: "Fetch the number of players currently in game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, errAppID := parseAppID(args[0])
			if errAppID != nil {
				return errAppID
			}

			res, err := app.client.GetCurrentPlayers(cmd.Context(), appID)

			return printResult(cmd, res, err)
		},
	}
}

func (app *cli) achievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achievements <appid> [steamid]",
		Short: "Fetch a players achievements for a game",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, errAppID := parseAppID(args[0])
			if errAppID != nil {
				return errAppID
			}

			steamID, errID := app.subject(args, 1)
			if errID != nil {
				return errID
			}

			res, err := app.client.GetAchievements(cmd.Context(), steamID, appID)

			return printResult(cmd, res, err)
		},
	}
}

func (app *cli) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <appid>",
		Short: "Fetch the achievement and stat definitions of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, errAppID := parseAppID(args[0])
			if errAppID != nil {
				return errAppID
			}

			res, err := app.client.GetGameSchema(cmd.Context(), appID)

			return printResult(cmd, res, err)
		},
	}
}

func (app *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <appid> [steamid]",
		Short: "Fetch a players stats for a game",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, errAppID := parseAppID(args[0])
			if errAppID != nil {
				return errAppID
			}

			steamID, errID := app.subject(args, 1)
			if errID != nil {
				return errID
			}

			res, err := app.client.GetStats(cmd.Context(), steamID, appID)

			return printResult(cmd, res, err)
		},
	}
}
