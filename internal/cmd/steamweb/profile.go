package steamweb

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/leighmacdonald/steamid/v4/steamid"
	"github.com/leighmacdonald/steamweb/pkg/webapi"
	"github.com/leighmacdonald/steamweb/styles"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// profile combines the results of the calls needed to describe a single player.
type profile struct {
	SteamID string                                `json:"steamID"`
	Summary webapi.Result[webapi.PlayerSummaries] `json:"summary"`
	Level   webapi.Result[webapi.SteamLevel]      `json:"level"`
	Bans    webapi.Result[webapi.PlayerBans]      `json:"bans"`
	Badges  webapi.Result[webapi.PlayerBadges]    `json:"badges"`
}

func (app *cli) profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile [steamid|vanity]",
		Short: "Show an overview of a player",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, errSubject := app.subject(args, 0)
			if errSubject != nil {
				return errSubject
			}

			steamID, errResolve := app.resolveSubject(cmd, subject)
			if errResolve != nil {
				return errResolve
			}

			prof, errProfile := app.fetchProfile(cmd, steamID)
			if errProfile != nil {
				return errors.Join(errProfile, errCommand)
			}

			if app.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), prof)
			}

			renderProfile(cmd.OutOrStdout(), prof, time.Now())

			return nil
		},
	}
}

// resolveSubject accepts any steam id form, anything else is treated as a vanity name.
func (app *cli) resolveSubject(cmd *cobra.Command, subject string) (string, error) {
	if sid := steamid.New(subject); sid.Valid() {
		return sid.String(), nil
	}

	resolved, errResolve := app.client.ResolveName(cmd.Context(), subject)
	if errResolve != nil {
		return "", errors.Join(errResolve, errCommand)
	}

	if resolved.Error != nil {
		return "", errors.Join(resolved.Error, errResult)
	}

	return resolved.Data.ID, nil
}

func (app *cli) fetchProfile(cmd *cobra.Command, steamID string) (profile, error) {
	prof := profile{SteamID: steamID}
	waitGroup, ctx := errgroup.WithContext(cmd.Context())

	waitGroup.Go(func() error {
		var err error
		prof.Summary, err = app.client.GetPlayerSummaries(ctx, steamID)

		return err
	})

	waitGroup.Go(func() error {
		var err error
		prof.Level, err = app.client.GetSteamLevel(ctx, steamID)

		return err
	})

	waitGroup.Go(func() error {
		var err error
		prof.Bans, err = app.client.GetPlayerBans(ctx, steamID)

		return err
	})

	waitGroup.Go(func() error {
		var err error
		prof.Badges, err = app.client.GetBadges(ctx, steamID)

		return err
	})

	if err := waitGroup.Wait(); err != nil {
		return profile{}, err
	}

	return prof, nil
}

func unavailable(err *webapi.Error) string {
	return styles.Subtitle.Render("unavailable: " + err.Message)
}

func relative(unix int64, now time.Time) string {
	if unix <= 0 {
		return "unknown"
	}

	return humanize.RelTime(time.Unix(unix, 0), now, "ago", "from now")
}

func renderProfile(output io.Writer, prof profile, now time.Time) {
	var lines []string

	player, found := webapi.Player{}, false
	if prof.Summary.OK() {
		player, found = prof.Summary.Data.Players[prof.SteamID]
	}

	if !found {
		lines = append(lines, styles.Title.Render(prof.SteamID))
		if prof.Summary.Error != nil {
			lines = append(lines, styles.Row("Summary", unavailable(prof.Summary.Error)))
		}
	} else {
		lines = append(lines, styles.Title.Render(player.Name)+" "+styles.Subtitle.Render(player.StateString))
		lines = append(lines, styles.Row("Steam ID", player.SteamID))

		if player.RealName != "" {
			lines = append(lines, styles.Row("Real name", player.RealName))
		}

		lines = append(lines, styles.Row("Profile", player.URL))

		if player.Location.Country != "" {
			lines = append(lines, styles.Row("Country", player.Location.Country))
		}

		if !player.Public {
			lines = append(lines, styles.Row("Visibility", "private"))
		} else {
			lines = append(lines, styles.Row("Joined", relative(player.Joined, now)))
		}

		if player.InGame {
			lines = append(lines, styles.Row("Playing", player.AppName))
		} else if player.Offline > 0 {
			lines = append(lines, styles.Row("Last online", relative(player.Offline, now)))
		}
	}

	switch {
	case prof.Badges.OK():
		badges := prof.Badges.Data
		lines = append(lines, styles.Row("Level", fmt.Sprintf("%d (%s xp, %s to next)",
			badges.Level, humanize.Comma(int64(badges.XP)), humanize.Comma(int64(badges.XPNeeded)))))
		lines = append(lines, styles.Row("Badges", strconv.Itoa(
			len(badges.Badges.Game)+len(badges.Badges.Event)+len(badges.Badges.Special))))
	case prof.Level.OK():
		lines = append(lines, styles.Row("Level", strconv.Itoa(prof.Level.Data.Level)))
	case prof.Level.Error != nil:
		lines = append(lines, styles.Row("Level", unavailable(prof.Level.Error)))
	}

	if ban, hasBan := banFor(prof); hasBan {
		lines = append(lines, styles.Row("Bans", describeBan(ban)))
	} else if prof.Bans.Error != nil {
		lines = append(lines, styles.Row("Bans", unavailable(prof.Bans.Error)))
	}

	fmt.Fprintln(output, strings.Join(lines, "\n"))
}

func banFor(prof profile) (webapi.Ban, bool) {
	if !prof.Bans.OK() {
		return webapi.Ban{}, false
	}

	ban, found := prof.Bans.Data.Players[prof.SteamID]

	return ban, found
}

func describeBan(ban webapi.Ban) string {
	var parts []string

	if ban.VACBans > 0 {
		parts = append(parts, fmt.Sprintf("%d vac", ban.VACBans))
	}

	if ban.GameBans > 0 {
		parts = append(parts, fmt.Sprintf("%d game", ban.GameBans))
	}

	if ban.Community {
		parts = append(parts, "community")
	}

	if ban.Trade {
		parts = append(parts, "trade")
	}

	if ban.Economy != "" && ban.Economy != "none" {
		parts = append(parts, "economy "+ban.Economy)
	}

	if len(parts) == 0 {
		return styles.Passed.Render("none")
	}

	return styles.Failed.Render(strings.Join(parts, ", ")) +
		fmt.Sprintf(" (last %s days ago)", humanize.Comma(int64(ban.DaysSinceLastBan)))
}
