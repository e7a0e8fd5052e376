package webapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// eventBadge maps a sale or event app to the slug used to key its badge. badgeID is the
// community badge id whose quest progress can be queried, zero when there is none.
type eventBadge struct {
	slug    string
	appID   int
	badgeID int
}

var eventBadges = []eventBadge{
	{slug: "summer-2014", appID: 245070},
	{slug: "winter-2017", appID: 762800},
	{slug: "summer-2018", appID: 876740},
	{slug: "awards-2018", appID: 1001000, badgeID: 46},
	{slug: "winter-2018", appID: 991980},
	{slug: "winter-2019", appID: 1195670},
}

// Badges without an app id are account wide badges.
var specialBadges = map[int]string{
	1:  "years",
	2:  "community",
	13: "games",
}

const (
	borderFoil = 1
	// badgeCommunity is the "Pillar of Community" badge, the account wide badge with quests.
	badgeCommunity = 2
)

type PlayerBadges struct {
	Level          int       `json:"level"`
	XP             int       `json:"xp"`
	XPNeeded       int       `json:"xpNeeded"`
	XPCurrentLevel int       `json:"xpCurrentLevel"`
	Badges         BadgeSets `json:"badges"`
}

// BadgeSets splits badges by kind. Game badges are keyed by app id with foil badges suffixed
// by -foil, event badges by event slug and special badges by name.
type BadgeSets struct {
	Game    map[string]Badge `json:"game"`
	Event   map[string]Badge `json:"event"`
	Special map[string]Badge `json:"special"`
}

type Badge struct {
	BadgeID  int    `json:"badgeid"`
	AppID    int    `json:"appid"`
	Level    int    `json:"level"`
	Earned   int64  `json:"earned"`
	XP       int    `json:"xp"`
	Scarcity int    `json:"scarcity"`
	Foil     bool   `json:"foil"`
	ItemID   string `json:"itemID"`
}

type upstreamBadge struct {
	BadgeID         int    `json:"badgeid"`
	AppID           *int   `json:"appid"`
	Level           int    `json:"level"`
	CompletionTime  int64  `json:"completion_time"`
	XP              int    `json:"xp"`
	Scarcity        int    `json:"scarcity"`
	CommunityItemID string `json:"communityitemid"`
	BorderColor     *int   `json:"border_color"`
}

type badgesResponse struct {
	Response *struct {
		Badges                     *[]upstreamBadge `json:"badges"`
		PlayerXP                   int              `json:"player_xp"`
		PlayerLevel                *int             `json:"player_level"`
		PlayerXPNeededToLevelUp    int              `json:"player_xp_needed_to_level_up"`
		PlayerXPNeededCurrentLevel int              `json:"player_xp_needed_current_level"`
	} `json:"response"`
}

// GetBadges fetches a players badges. Upstream returns a single list mixing game, event and
// account wide badges which is split into BadgeSets.
func (c *Client) GetBadges(ctx context.Context, steamID string) (Result[PlayerBadges], error) {
	return result(c.badges(ctx, steamID))
}

func (c *Client) badges(ctx context.Context, steamID string) (PlayerBadges, error) {
	sid, errSID := parseSteamID(steamID)
	if errSID != nil {
		return PlayerBadges{}, errSID
	}

	resp, errResp := fetch[badgesResponse](ctx, c, endpointBadges, Params{"steamid": sid.String()})
	if errResp != nil {
		return PlayerBadges{}, errResp
	}

	if resp.Response == nil || (resp.Response.Badges == nil && resp.Response.PlayerLevel == nil) {
		return PlayerBadges{}, newError(KindEmpty, http.StatusOK, "no badge data, the profile may be private")
	}

	player := PlayerBadges{
		XP:             resp.Response.PlayerXP,
		XPNeeded:       resp.Response.PlayerXPNeededToLevelUp,
		XPCurrentLevel: resp.Response.PlayerXPNeededCurrentLevel,
		Badges:         BadgeSets{Game: map[string]Badge{}, Event: map[string]Badge{}, Special: map[string]Badge{}},
	}

	if resp.Response.PlayerLevel != nil {
		player.Level = *resp.Response.PlayerLevel
	}

	if resp.Response.Badges != nil {
		for _, upstream := range *resp.Response.Badges {
			player.Badges.add(upstream)
		}
	}

	return player, nil
}

func (s BadgeSets) add(upstream upstreamBadge) {
	badge := Badge{
		BadgeID:  upstream.BadgeID,
		Level:    upstream.Level,
		Earned:   upstream.CompletionTime,
		XP:       upstream.XP,
		Scarcity: upstream.Scarcity,
		ItemID:   upstream.CommunityItemID,
	}

	switch {
	case upstream.AppID == nil:
		name, found := specialBadges[upstream.BadgeID]
		if !found {
			name = "badge-" + strconv.Itoa(upstream.BadgeID)
		}

		insertBadge(s.Special, name, badge)
	case upstream.BorderColor != nil:
		badge.AppID = *upstream.AppID
		badge.Foil = *upstream.BorderColor == borderFoil
		key := strconv.Itoa(badge.AppID)
		if badge.Foil {
			key += "-foil"
		}

		insertBadge(s.Game, key, badge)
	default:
		badge.AppID = *upstream.AppID
		insertBadge(s.Event, eventSlug(badge.AppID), badge)
	}
}

// insertBadge stores a badge under key, falling back to a badge id suffixed key so that no
// upstream badge is ever dropped.
func insertBadge(set map[string]Badge, key string, badge Badge) {
	if _, exists := set[key]; !exists {
		set[key] = badge

		return
	}

	base := key + "-" + strconv.Itoa(badge.BadgeID)
	key = base
	for idx := 2; ; idx++ {
		if _, exists := set[key]; !exists {
			set[key] = badge

			return
		}

		key = base + "-" + strconv.Itoa(idx)
	}
}

func eventSlug(appID int) string {
	for _, event := range eventBadges {
		if event.appID == appID {
			return event.slug
		}
	}

	return "event-" + strconv.Itoa(appID)
}

type BadgeProgress struct {
	Count     int             `json:"count"`
	Completed int             `json:"completed"`
	Quests    map[string]bool `json:"quests"`
}

type badgeProgressResponse struct {
	Response *struct {
		Quests *[]struct {
			QuestID   int  `json:"questid"`
			Completed bool `json:"completed"`
		} `json:"quests"`
	} `json:"response"`
}

// GetBadgeProgress fetches quest completion for a community badge. badge is either a numeric
// badge id, an event slug such as awards-2018 or the name of an account wide badge.
func (c *Client) GetBadgeProgress(ctx context.Context, steamID string, badge string) (Result[BadgeProgress], error) {
	return result(c.badgeProgress(ctx, steamID, badge))
}

func (c *Client) badgeProgress(ctx context.Context, steamID string, badge string) (BadgeProgress, error) {
	sid, errSID := parseSteamID(steamID)
	if errSID != nil {
		return BadgeProgress{}, errSID
	}

	badgeID, errBadge := resolveBadgeID(badge)
	if errBadge != nil {
		return BadgeProgress{}, errBadge
	}

	resp, errResp := fetch[badgeProgressResponse](ctx, c, endpointBadgeProgress,
		Params{"steamid": sid.String(), "badgeid": badgeID})
	if errResp != nil {
		return BadgeProgress{}, errResp
	}

	if resp.Response == nil || resp.Response.Quests == nil {
		return BadgeProgress{}, newError(KindEmpty, http.StatusOK, "no quest data for badge %s", badge)
	}

	progress := BadgeProgress{Quests: make(map[string]bool, len(*resp.Response.Quests))}
	for _, quest := range *resp.Response.Quests {
		progress.Quests[strconv.Itoa(quest.QuestID)] = quest.Completed
		if quest.Completed {
			progress.Completed++
		}
	}

	progress.Count = len(progress.Quests)

	return progress, nil
}

func resolveBadgeID(badge string) (int, error) {
	badge = strings.TrimSpace(badge)
	if badge == "" {
		return badgeCommunity, nil
	}

	if badgeID, errAtoi := strconv.Atoi(badge); errAtoi == nil {
		if badgeID <= 0 {
			return 0, newError(KindInput, 0, "invalid badge id: %d", badgeID)
		}

		return badgeID, nil
	}

	for _, event := range eventBadges {
		if event.slug == badge && event.badgeID > 0 {
			return event.badgeID, nil
		}
	}

	for badgeID, name := range specialBadges {
		if name == badge {
			return badgeID, nil
		}
	}

	return 0, newError(KindInput, 0, "unknown badge: %q", badge)
}
