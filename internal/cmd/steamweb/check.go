package steamweb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/leighmacdonald/steamweb/pkg/webapi"
	"github.com/leighmacdonald/steamweb/styles"
	"github.com/spf13/cobra"
)

var (
	errCheckFailed = errors.New("one or more checks failed")
	errUnexpected  = errors.New("unexpected result")
)

const (
	checkGroupID     = "103582791435315066"
	checkStatsApp    = 264710
	checkCSGOApp     = 730
	checkWinterApp   = 991980
	checkBadgeQuests = 4
)

var checkOwnedApps = []int{checkCSGOApp, 4000, 220}

type check struct {
	name string
	run  func(ctx context.Context) error
}

type checkReport struct {
	Name       string `json:"name"`
	Passed     bool   `json:"passed"`
	DurationMs int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

func (app *cli) checkCmd() *cobra.Command {
	var (
		vanity string
		group  string
		only   string
	)

	cmd := &cobra.Command{
		Use:   "check [steamid]",
		Short: "Run every api call against the live api and report which ones work",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steamID, errID := app.subject(args, 0)
			if errID != nil {
				return errID
			}

			checks := smokeChecks(app.client, steamID, vanity, group)
			if only != "" {
				checks = slices.DeleteFunc(checks, func(c check) bool {
					return !strings.Contains(strings.ToLower(c.name), strings.ToLower(only))
				})
			}

			var output io.Writer = cmd.OutOrStdout()
			if app.jsonOutput {
				output = io.Discard
			}

			reports := runChecks(cmd.Context(), output, checks)
			if app.jsonOutput {
				if err := writeJSON(cmd.OutOrStdout(), reports); err != nil {
					return err
				}
			}

			for _, report := range reports {
				if !report.Passed {
					return errCheckFailed
				}
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&vanity, "vanity", "", "Vanity name expected to resolve to the steam id")
	cmd.Flags().StringVar(&group, "group", checkGroupID, "Group looked up by the group check")
	cmd.Flags().StringVar(&only, "only", "", "Only run checks whose name contains this")

	return cmd
}

func runChecks(ctx context.Context, output io.Writer, checks []check) []checkReport {
	reports := make([]checkReport, 0, len(checks))
	passed := 0

	for _, current := range checks {
		fmt.Fprintf(output, "%s %s\n", styles.Running.Render("Running"), styles.TestName.Render(current.name))

		start := time.Now()
		err := current.run(ctx)
		report := checkReport{
			Name:       current.name,
			Passed:     err == nil,
			DurationMs: time.Since(start).Milliseconds(),
		}

		if err != nil {
			report.Error = err.Error()
			fmt.Fprintf(output, "%s %s\n%s\n\n", styles.Failed.Render(" Failed"), styles.TestName.Render(current.name),
				styles.Detail.Render(report.Error))
		} else {
			passed++
			fmt.Fprintf(output, "%s %s %s\n\n", styles.Passed.Render(" Passed"), styles.TestName.Render(current.name),
				styles.Passed.Render(fmt.Sprintf("(%dms)", report.DurationMs)))
		}

		reports = append(reports, report)
	}

	summary := styles.Passed
	if passed != len(checks) {
		summary = styles.Failed
	}

	fmt.Fprintln(output, summary.Render(fmt.Sprintf("%d/%d checks passed", passed, len(checks))))

	return reports
}

// expect unwraps a result, turning both transport and logical failures into an error.
func expect[T any](res webapi.Result[T], err error) (*T, error) {
	if err != nil {
		return nil, err
	}

	if res.Error != nil {
		return nil, res.Error
	}

	if res.Data == nil {
		return nil, errors.Join(errUnexpected, errors.New("result without data"))
	}

	return res.Data, nil
}

func unexpected(format string, args ...any) error {
	return errors.Join(errUnexpected, fmt.Errorf(format, args...))
}

func smokeChecks(client *webapi.Client, steamID string, vanity string, group string) []check {
	checks := []check{
		{"request", func(ctx context.Context) error {
			raw, err := client.Request(ctx, "ISteamUser/GetPlayerSummaries/v2", webapi.Params{"steamids": steamID})
			if err != nil {
				return err
			}

			if raw.StatusCode != http.StatusOK || raw.Data == nil {
				return unexpected("status %d: %s", raw.StatusCode, raw.Error)
			}

			return nil
		}},
	}

	if vanity != "" {
		checks = append(checks, check{"resolveName", func(ctx context.Context) error {
			resolved, err := expect(client.ResolveName(ctx, vanity))
			if err != nil {
				return err
			}

			if resolved.ID != steamID {
				return unexpected("resolved %s to %s, expected %s", vanity, resolved.ID, steamID)
			}

			return nil
		}})
	}

	return append(checks,
		check{"getPlayerSummaries", func(ctx context.Context) error {
			summaries, err := expect(client.GetPlayerSummaries(ctx, steamID))
			if err != nil {
				return err
			}

			if player, found := summaries.Players[steamID]; !found || player.Name == "" {
				return unexpected("no named player %s in %d results", steamID, summaries.Count)
			}

			return nil
		}},
		check{"getPlayerBans", func(ctx context.Context) error {
			bans, err := expect(client.GetPlayerBans(ctx, steamID))
			if err != nil {
				return err
			}

			if _, found := bans.Players[steamID]; !found {
				return unexpected("no bans entry for %s", steamID)
			}

			return nil
		}},
		check{"getFriendList", func(ctx context.Context) error {
			friends, err := expect(client.GetFriendList(ctx, steamID, true))
			if err != nil {
				return err
			}

			if friends.Count == 0 || friends.Friends[0].SteamID == "" {
				return unexpected("expected at least one friend with a steam id, got %d", friends.Count)
			}

			return nil
		}},
		check{"getUserGroups", func(ctx context.Context) error {
			groups, err := expect(client.GetUserGroups(ctx, steamID))
			if err != nil {
				return err
			}

			if len(groups.Groups) == 0 || groups.Groups[0] == "" {
				return unexpected("expected at least one group id")
			}

			return nil
		}},
		check{"getRecentlyPlayedGames", func(ctx context.Context) error {
			_, err := expect(client.GetRecentlyPlayedGames(ctx, steamID, 0))

			return err
		}},
		check{"getOwnedGames", func(ctx context.Context) error {
			owned, err := expect(client.GetOwnedGames(ctx, steamID, checkOwnedApps, true))
			if err != nil {
				return err
			}

			return verifyOwned(owned, checkOwnedApps)
		}},
		check{"getSteamLevel", func(ctx context.Context) error {
			level, err := expect(client.GetSteamLevel(ctx, steamID))
			if err != nil {
				return err
			}

			if level.Level <= 0 {
				return unexpected("expected a positive level, got %d", level.Level)
			}

			return nil
		}},
		check{"getBadges", func(ctx context.Context) error {
			badges, err := expect(client.GetBadges(ctx, steamID))
			if err != nil {
				return err
			}

			return verifyBadges(badges)
		}},
		check{"getBadgeProgress", func(ctx context.Context) error {
			progress, err := expect(client.GetBadgeProgress(ctx, steamID, "awards-2018"))
			if err != nil {
				return err
			}

			if progress.Count != checkBadgeQuests {
				return unexpected("expected %d quests, got %d", checkBadgeQuests, progress.Count)
			}

			return nil
		}},
		check{"getGroupInfo", func(ctx context.Context) error {
			info, err := expect(client.GetGroupInfo(ctx, group))
			if err != nil {
				return err
			}

			if info.GID == "" || info.Name == "" || info.Members == 0 {
				return unexpected("incomplete group %+v", *info)
			}

			return nil
		}},
		check{"getGlobalAchievements", func(ctx context.Context) error {
			global, err := expect(client.GetGlobalAchievements(ctx, checkCSGOApp))
			if err != nil {
				return err
			}

			if _, found := global.Achievements["KILLING_SPREE"]; !found {
				return unexpected("no KILLING_SPREE in %d achievements for app %d", len(global.Achievements), checkCSGOApp)
			}

			return nil
		}},
		check{"getCurrentPlayers", func(ctx context.Context) error {
			_, err := expect(client.GetCurrentPlayers(ctx, checkCSGOApp))

			return err
		}},
		check{"getAchievements", func(ctx context.Context) error {
			achievements, err := expect(client.GetAchievements(ctx, steamID, checkStatsApp))
			if err != nil {
				return err
			}

			return verifyAchievements(achievements)
		}},
		check{"getGameSchema", func(ctx context.Context) error {
			schema, err := expect(client.GetGameSchema(ctx, checkStatsApp))
			if err != nil {
				return err
			}

			return verifySchema(schema)
		}},
		check{"getStats", func(ctx context.Context) error {
			stats, err := expect(client.GetStats(ctx, steamID, checkCSGOApp))
			if err != nil {
				return err
			}

			return verifyStats(stats, "ValveTestApp260", []string{"kills"}, []string{"bombs", "defused"})
		}},
		check{"getStats #2", func(ctx context.Context) error {
			stats, err := expect(client.GetStats(ctx, steamID, checkStatsApp))
			if err != nil {
				return err
			}

			return verifyStats(stats, "Subnautica", []string{"s1_AllTimeDepth"}, []string{"s2_HasTank"})
		}},
	)
}

func verifyOwned(owned *webapi.OwnedGames, appIDs []int) error {
	if owned.Count != len(appIDs) {
		return unexpected("expected %d owned games, got %d", len(appIDs), owned.Count)
	}

	for _, game := range owned.Games {
		if !slices.Contains(appIDs, game.AppID) {
			return unexpected("app %d is not one of %v", game.AppID, appIDs)
		}

		if game.Name == "" {
			return unexpected("no name for app %d", game.AppID)
		}
	}

	return nil
}

func verifyBadges(badges *webapi.PlayerBadges) error {
	if badges.Level <= 0 {
		return unexpected("expected a positive level, got %d", badges.Level)
	}

	if game, found := badges.Badges.Game[strconv.Itoa(checkCSGOApp)]; !found || game.AppID != checkCSGOApp {
		return unexpected("no game badge for app %d", checkCSGOApp)
	}

	if event, found := badges.Badges.Event["winter-2018"]; !found || event.AppID != checkWinterApp {
		return unexpected("no winter-2018 event badge for app %d", checkWinterApp)
	}

	if _, found := badges.Badges.Special["years"]; !found {
		return unexpected("no years of service badge")
	}

	return nil
}

func verifyAchievements(achievements *webapi.PlayerAchievements) error {
	seamoth, found := achievements.Achievements["BuildSeamoth"]
	if !found {
		return unexpected("no BuildSeamoth in %d achievements", achievements.Count)
	}

	if !seamoth.Unlocked {
		return unexpected("BuildSeamoth is not unlocked")
	}

	return nil
}

func verifySchema(schema *webapi.GameSchema) error {
	if schema.Name == "" {
		return unexpected("schema for app %d has no name", checkStatsApp)
	}

	if schema.Achievements["BuildSeamoth"].DisplayName == "" {
		return unexpected("no display name for achievement BuildSeamoth")
	}

	if schema.Stats["s1_AllTimeDepth"].DisplayName == "" {
		return unexpected("no display name for stat s1_AllTimeDepth")
	}

	return nil
}

// verifyStats checks the game name and that every path resolves in the stat tree.
func verifyStats(stats *webapi.PlayerStats, name string, paths ...[]string) error {
	if stats.Name != name {
		return unexpected("expected game name %q, got %q", name, stats.Name)
	}

	for _, path := range paths {
		level := stats.Stats
		for _, key := range path {
			stat, found := level[key]
			if !found || stat == nil {
				return unexpected("no stat %s", strings.Join(path, "."))
			}

			level = stat.Stats
		}
	}

	return nil
}
