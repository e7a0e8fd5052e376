package webapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

const (
	maxSummaryIDs = 100
	// Result code ISteamUser and ISteamUserStats report for a successful lookup.
	upstreamSuccess = 1
	// Offset between a 32 bit clan account id and its 64 bit group id.
	groupIDBase = 103582791429521408
)

type ResolvedName struct {
	ID string `json:"id"`
}

type resolveVanityResponse struct {
	Response *struct {
		SteamID string `json:"steamid"`
		Success int    `json:"success"`
		Message string `json:"message"`
	} `json:"response"`
}

// ResolveName looks up the steam id behind a vanity name. Upstream always answers 200, the
// outcome is carried by the inner success code.
func (c *Client) ResolveName(ctx context.Context, vanity string) (Result[ResolvedName], error) {
	return result(c.resolveName(ctx, vanity))
}

func (c *Client) resolveName(ctx context.Context, vanity string) (ResolvedName, error) {
	vanity = strings.TrimSpace(vanity)
	if vanity == "" {
		return ResolvedName{}, newError(KindInput, 0, "vanity name is required")
	}

	resp, errResp := fetch[resolveVanityResponse](ctx, c, endpointResolveVanityURL, Params{"vanityurl": vanity})
	if errResp != nil {
		return ResolvedName{}, errResp
	}

	if resp.Response == nil {
		return ResolvedName{}, newError(KindUnexpectedShape, http.StatusOK, "missing response object")
	}

	if resp.Response.Success != upstreamSuccess || resp.Response.SteamID == "" {
		message := resp.Response.Message
		if message == "" {
			message = "no match"
		}

		return ResolvedName{}, newError(KindNotFound, http.StatusOK, "%s: %s", vanity, message)
	}

	return ResolvedName{ID: resp.Response.SteamID}, nil
}

type PlayerSummaries struct {
	Count   int               `json:"count"`
	Players map[string]Player `json:"players"`
}

type Player struct {
	SteamID     string `json:"steamID"`
	Name        string `json:"name"`
	RealName    string `json:"realName"`
	URL         string `json:"url"`
	State       int    `json:"state"`
	StateString string `json:"stateString"`
	// Public is true when the profile is visible to everyone.
	Public bool `json:"public"`
	// Community is true once the profile has been set up.
	Community bool  `json:"community"`
	Comments  bool  `json:"comments"`
	Joined    int64 `json:"joined"`
	Offline   int64 `json:"offline"`
	// Group is the 64 bit id of the primary group.
	Group    string   `json:"group"`
	InGame   bool     `json:"inGame"`
	AppID    int      `json:"appid"`
	AppName  string   `json:"appName"`
	ServerIP string   `json:"serverIP"`
	Avatar   Images   `json:"avatar"`
	Location Location `json:"location"`
}

type Images struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

type upstreamPlayer struct {
	SteamID                  string `json:"steamid"`
	CommunityVisibilityState int    `json:"communityvisibilitystate"`
	ProfileState             int    `json:"profilestate"`
	PersonaName              string `json:"personaname"`
	CommentPermission        int    `json:"commentpermission"`
	ProfileURL               string `json:"profileurl"`
	Avatar                   string `json:"avatar"`
	AvatarMedium             string `json:"avatarmedium"`
	AvatarFull               string `json:"avatarfull"`
	LastLogoff               int64  `json:"lastlogoff"`
	PersonaState             int    `json:"personastate"`
	RealName                 string `json:"realname"`
	PrimaryClanID            string `json:"primaryclanid"`
	TimeCreated              int64  `json:"timecreated"`
	GameID                   string `json:"gameid"`
	GameExtraInfo            string `json:"gameextrainfo"`
	GameServerIP             string `json:"gameserverip"`
	LocCountryCode           string `json:"loccountrycode"`
	LocStateCode             string `json:"locstatecode"`
	LocCityID                int    `json:"loccityid"`
}

type playerSummariesResponse struct {
	Response *struct {
		Players []upstreamPlayer `json:"players"`
	} `json:"response"`
}

// PersonaState values.
const (
	StateOffline = iota
	StateOnline
	StateBusy
	StateAway
	StateSnooze
	StateLookingToTrade
	StateLookingToPlay
)

func stateString(state int) string {
	switch state {
	case StateOffline:
		return "Offline"
	case StateOnline:
		return "Online"
	case StateBusy:
		return "Busy"
	case StateAway:
		return "Away"
	case StateSnooze:
		return "Snooze"
	case StateLookingToTrade:
		return "Looking to trade"
	case StateLookingToPlay:
		return "Looking to play"
	default:
		return "Unknown"
	}
}

const (
	visibilityPublic  = 3
	profileConfigured = 1
	commentsPermitted = 1
	appIDMask         = 0xFFFFFF
)

func newPlayer(upstream upstreamPlayer) Player {
	player := Player{
		SteamID:     upstream.SteamID,
		Name:        upstream.PersonaName,
		RealName:    upstream.RealName,
		URL:         upstream.ProfileURL,
		State:       upstream.PersonaState,
		StateString: stateString(upstream.PersonaState),
		Public:      upstream.CommunityVisibilityState == visibilityPublic,
		Community:   upstream.ProfileState == profileConfigured,
		Comments:    upstream.CommentPermission == commentsPermitted,
		Joined:      upstream.TimeCreated,
		Offline:     upstream.LastLogoff,
		Group:       upstream.PrimaryClanID,
		AppName:     upstream.GameExtraInfo,
		ServerIP:    upstream.GameServerIP,
		Avatar: Images{
			Small:  upstream.Avatar,
			Medium: upstream.AvatarMedium,
			Large:  upstream.AvatarFull,
		},
		Location: newLocation(upstream.LocCountryCode, upstream.LocStateCode, upstream.LocCityID),
	}

	// gameid is a 64 bit game id; the low 24 bits are the app id for both games and mods.
	if upstream.GameID != "" {
		if gameID, errGameID := strconv.ParseUint(upstream.GameID, 10, 64); errGameID == nil && gameID > 0 {
			player.InGame = true
			player.AppID = int(gameID & appIDMask)
		}
	}

	return player
}

// GetPlayerSummaries fetches profiles for up to 100 steam ids, keyed by steam id.
func (c *Client) GetPlayerSummaries(ctx context.Context, steamIDs ...string) (Result[PlayerSummaries], error) {
	return result(c.playerSummaries(ctx, steamIDs))
}

func (c *Client) playerSummaries(ctx context.Context, steamIDs []string) (PlayerSummaries, error) {
	ids, errIDs := parseSteamIDs(steamIDs, maxSummaryIDs)
	if errIDs != nil {
		return PlayerSummaries{}, errIDs
	}

	resp, errResp := fetch[playerSummariesResponse](ctx, c, endpointPlayerSummaries,
		Params{"steamids": strings.Join(ids.ToStringSlice(), ",")})
	if errResp != nil {
		return PlayerSummaries{}, errResp
	}

	if resp.Response == nil {
		return PlayerSummaries{}, newError(KindUnexpectedShape, http.StatusOK, "missing response object")
	}

	if len(resp.Response.Players) == 0 {
		return PlayerSummaries{}, newError(KindNotFound, http.StatusOK, "no players found")
	}

	summaries := PlayerSummaries{Players: make(map[string]Player, len(resp.Response.Players))}
	for _, upstream := range resp.Response.Players {
		if upstream.SteamID == "" {
			return PlayerSummaries{}, newError(KindUnexpectedShape, http.StatusOK, "player without steamid")
		}

		summaries.Players[upstream.SteamID] = newPlayer(upstream)
	}

	summaries.Count = len(summaries.Players)

	return summaries, nil
}

type PlayerBans struct {
	Count   int            `json:"count"`
	Players map[string]Ban `json:"players"`
}

type Ban struct {
	SteamID          string `json:"steamID"`
	VAC              bool   `json:"vac"`
	VACBans          int    `json:"vacBans"`
	GameBans         int    `json:"gameBans"`
	DaysSinceLastBan int    `json:"daysSinceLastBan"`
	Community        bool   `json:"community"`
	Economy          string `json:"economy"`
	// Trade is true for any economy ban state other than none.
	Trade bool `json:"trade"`
}

// The bans endpoint is the one place upstream uses PascalCase keys.
type playerBansResponse struct {
	Players *[]struct {
		SteamID          string `json:"SteamId"`
		CommunityBanned  bool   `json:"CommunityBanned"`
		VACBanned        bool   `json:"VACBanned"`
		NumberOfVACBans  int    `json:"NumberOfVACBans"`
		DaysSinceLastBan int    `json:"DaysSinceLastBan"`
		NumberOfGameBans int    `json:"NumberOfGameBans"`
		EconomyBan       string `json:"EconomyBan"`
	} `json:"players"`
}

const economyBanNone = "none"

// GetPlayerBans fetches ban states for up to 100 steam ids, keyed by steam id.
func (c *Client) GetPlayerBans(ctx context.Context, steamIDs ...string) (Result[PlayerBans], error) {
	return result(c.playerBans(ctx, steamIDs))
}

func (c *Client) playerBans(ctx context.Context, steamIDs []string) (PlayerBans, error) {
	ids, errIDs := parseSteamIDs(steamIDs, maxSummaryIDs)
	if errIDs != nil {
		return PlayerBans{}, errIDs
	}

	resp, errResp := fetch[playerBansResponse](ctx, c, endpointPlayerBans,
		Params{"steamids": strings.Join(ids.ToStringSlice(), ",")})
	if errResp != nil {
		return PlayerBans{}, errResp
	}

	if resp.Players == nil {
		return PlayerBans{}, newError(KindUnexpectedShape, http.StatusOK, "missing players list")
	}

	if len(*resp.Players) == 0 {
		return PlayerBans{}, newError(KindNotFound, http.StatusOK, "no players found")
	}

	bans := PlayerBans{Players: make(map[string]Ban, len(*resp.Players))}
	for _, upstream := range *resp.Players {
		if upstream.SteamID == "" {
			return PlayerBans{}, newError(KindUnexpectedShape, http.StatusOK, "ban entry without steamid")
		}

		economy := upstream.EconomyBan
		if economy == "" {
			economy = economyBanNone
		}

		bans.Players[upstream.SteamID] = Ban{
			SteamID:          upstream.SteamID,
			VAC:              upstream.VACBanned,
			VACBans:          upstream.NumberOfVACBans,
			GameBans:         upstream.NumberOfGameBans,
			DaysSinceLastBan: upstream.DaysSinceLastBan,
			Community:        upstream.CommunityBanned,
			Economy:          economy,
			Trade:            economy != economyBanNone,
		}
	}

	bans.Count = len(bans.Players)

	return bans, nil
}

type FriendList struct {
	Count   int      `json:"count"`
	Friends []Friend `json:"friends"`
}

type Friend struct {
	SteamID      string `json:"steamID"`
	Relationship string `json:"relationship"`
	Since        int64  `json:"since"`
}

type friendListResponse struct {
	FriendsList *struct {
		Friends []struct {
			SteamID      string `json:"steamid"`
			Relationship string `json:"relationship"`
			FriendSince  int64  `json:"friend_since"`
		} `json:"friends"`
	} `json:"friendslist"`
}

// GetFriendList fetches the friends of a public profile. Upstream answers 401 for private
// friend lists.
func (c *Client) GetFriendList(ctx context.Context, steamID string, friendsOnly bool) (Result[FriendList], error) {
	return result(c.friendList(ctx, steamID, friendsOnly))
}

func (c *Client) friendList(ctx context.Context, steamID string, friendsOnly bool) (FriendList, error) {
	sid, errSID := parseSteamID(steamID)
	if errSID != nil {
		return FriendList{}, errSID
	}

	relationship := "all"
	if friendsOnly {
		relationship = "friend"
	}

	resp, errResp := fetch[friendListResponse](ctx, c, endpointFriendList,
		Params{"steamid": sid.String(), "relationship": relationship})
	if errResp != nil {
		return FriendList{}, errResp
	}

	if resp.FriendsList == nil {
		return FriendList{}, newError(KindEmpty, http.StatusOK, "no friend list returned")
	}

	list := FriendList{Friends: make([]Friend, 0, len(resp.FriendsList.Friends))}
	for _, friend := range resp.FriendsList.Friends {
		list.Friends = append(list.Friends, Friend{
			SteamID:      friend.SteamID,
			Relationship: friend.Relationship,
			Since:        friend.FriendSince,
		})
	}

	list.Count = len(list.Friends)

	return list, nil
}

type UserGroups struct {
	// Groups holds 64 bit group ids, usable with GetGroupInfo.
	Groups []string `json:"groups"`
}

type userGroupListResponse struct {
	Response *struct {
		Success *bool  `json:"success"`
		Error   string `json:"error"`
		Groups  []struct {
			GID string `json:"gid"`
		} `json:"groups"`
	} `json:"response"`
}

func (c *Client) GetUserGroups(ctx context.Context, steamID string) (Result[UserGroups], error) {
	return result(c.userGroups(ctx, steamID))
}

func (c *Client) userGroups(ctx context.Context, steamID string) (UserGroups, error) {
	sid, errSID := parseSteamID(steamID)
	if errSID != nil {
		return UserGroups{}, errSID
	}

	resp, errResp := fetch[userGroupListResponse](ctx, c, endpointUserGroupList, Params{"steamid": sid.String()})
	if errResp != nil {
		return UserGroups{}, errResp
	}

	if resp.Response == nil || resp.Response.Success == nil {
		return UserGroups{}, newError(KindUnexpectedShape, http.StatusOK, "missing response success flag")
	}

	if !*resp.Response.Success {
		return UserGroups{}, groupListFailure(resp.Response.Error)
	}

	groups := UserGroups{Groups: make([]string, 0, len(resp.Response.Groups))}
	for _, group := range resp.Response.Groups {
		accountID, errAccountID := strconv.ParseUint(group.GID, 10, 32)
		if errAccountID != nil {
			return UserGroups{}, newError(KindUnexpectedShape, http.StatusOK, "invalid group id: %q", group.GID)
		}

		groups.Groups = append(groups.Groups, strconv.FormatUint(groupIDBase+accountID, 10))
	}

	return groups, nil
}

var authMessages = []string{"key", "access denied", "unauthorized", "forbidden", "permission"}

// groupListFailure maps an unsuccessful group list body onto an error kind. Key and permission
// problems are auth errors, anything else is a private profile or a user without groups.
func groupListFailure(message string) *Error {
	if message == "" {
		message = "failed to get groups for user"
	}

	lower := strings.ToLower(message)
	for _, needle := range authMessages {
		if strings.Contains(lower, needle) {
			return newError(KindAuth, http.StatusOK, "%s", message)
		}
	}

	return newError(KindEmpty, http.StatusOK, "%s", message)
}
