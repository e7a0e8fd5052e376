package webapi

import (
	"context"
	"fmt"
	"net/http"
)

const iconURLFormat = "https://media.steampowered.com/steamcommunity/public/images/apps/%d/%s.jpg"

type Game struct {
	AppID int    `json:"appid"`
	Name  string `json:"name"`
	// Playtimes are in minutes.
	Playtime2Weeks  int    `json:"playtime2Weeks"`
	PlaytimeForever int    `json:"playtimeForever"`
	Icon            string `json:"icon"`
	LastPlayed      int64  `json:"lastPlayed"`
}

type upstreamGame struct {
	AppID           int    `json:"appid"`
	Name            string `json:"name"`
	Playtime2Weeks  int    `json:"playtime_2weeks"`
	PlaytimeForever int    `json:"playtime_forever"`
	ImgIconURL      string `json:"img_icon_url"`
	LastPlayed      int64  `json:"rtime_last_played"`
}

func newGame(upstream upstreamGame) Game {
	game := Game{
		AppID:           upstream.AppID,
		Name:            upstream.Name,
		Playtime2Weeks:  upstream.Playtime2Weeks,
		PlaytimeForever: upstream.PlaytimeForever,
		LastPlayed:      upstream.LastPlayed,
	}

	if upstream.ImgIconURL != "" {
		game.Icon = fmt.Sprintf(iconURLFormat, upstream.AppID, upstream.ImgIconURL)
	}

	return game
}

type RecentGames struct {
	// Count is the number of games played in the last two weeks, which can exceed len(Games)
	// when a limit was requested.
	Count int    `json:"count"`
	Games []Game `json:"games"`
}

type recentGamesResponse struct {
	Response *struct {
		TotalCount *int           `json:"total_count"`
		Games      []upstreamGame `json:"games"`
	} `json:"response"`
}

// GetRecentlyPlayedGames lists games played in the last two weeks. A limit of zero returns all.
func (c *Client) GetRecentlyPlayedGames(ctx context.Context, steamID string, limit int) (Result[RecentGames], error) {
	return result(c.recentlyPlayedGames(ctx, steamID, limit))
}

func (c *Client) recentlyPlayedGames(ctx context.Context, steamID string, limit int) (RecentGames, error) {
	sid, errSID := parseSteamID(steamID)
	if errSID != nil {
		return RecentGames{}, errSID
	}

	if limit < 0 {
		return RecentGames{}, newError(KindInput, 0, "invalid limit: %d", limit)
	}

	params := Params{"steamid": sid.String()}
	if limit > 0 {
		params["count"] = limit
	}

	resp, errResp := fetch[recentGamesResponse](ctx, c, endpointRecentlyPlayedGames, params)
	if errResp != nil {
		return RecentGames{}, errResp
	}

	// A private profile yields an empty response object.
	if resp.Response == nil || resp.Response.TotalCount == nil {
		return RecentGames{}, newError(KindEmpty, http.StatusOK, "no game data, the profile may be private")
	}

	recent := RecentGames{Count: *resp.Response.TotalCount, Games: make([]Game, 0, len(resp.Response.Games))}
	for _, game := range resp.Response.Games {
		recent.Games = append(recent.Games, newGame(game))
	}

	return recent, nil
}

type OwnedGames struct {
	Count int    `json:"count"`
	Games []Game `json:"games"`
}

type ownedGamesResponse struct {
	Response *struct {
		GameCount *int           `json:"game_count"`
		Games     []upstreamGame `json:"games"`
	} `json:"response"`
}

// GetOwnedGames checks which of the given apps a player owns. Upstream only reports on the
// apps it is asked about. Names and icons are only filled in when includeInfo is set.
func (c *Client) GetOwnedGames(ctx context.Context, steamID string, appIDs []int, includeInfo bool) (Result[OwnedGames], error) {
	return result(c.ownedGames(ctx, steamID, appIDs, includeInfo))
}

func (c *Client) ownedGames(ctx context.Context, steamID string, appIDs []int, includeInfo bool) (OwnedGames, error) {
	sid, errSID := parseSteamID(steamID)
	if errSID != nil {
		return OwnedGames{}, errSID
	}

	if len(appIDs) == 0 {
		return OwnedGames{}, newError(KindInput, 0, "at least one app id is required")
	}

	for _, appID := range appIDs {
		if err := validAppID(appID); err != nil {
			return OwnedGames{}, err
		}
	}

	resp, errResp := fetch[ownedGamesResponse](ctx, c, endpointOwnedGames, Params{
		"steamid":                   sid.String(),
		"include_appinfo":           includeInfo,
		"include_played_free_games": true,
		"appids_filter":             appIDs,
	})
	if errResp != nil {
		return OwnedGames{}, errResp
	}

	if resp.Response == nil || resp.Response.GameCount == nil {
		return OwnedGames{}, newError(KindEmpty, http.StatusOK, "no game data, the profile may be private")
	}

	owned := OwnedGames{Count: *resp.Response.GameCount, Games: make([]Game, 0, len(resp.Response.Games))}
	for _, game := range resp.Response.Games {
		owned.Games = append(owned.Games, newGame(game))
	}

	return owned, nil
}

type SteamLevel struct {
	Level int `json:"level"`
}

type steamLevelResponse struct {
	Response *struct {
		PlayerLevel *int `json:"player_level"`
	} `json:"response"`
}

func (c *Client) GetSteamLevel(ctx context.Context, steamID string) (Result[SteamLevel], error) {
	return result(c.steamLevel(ctx, steamID))
}

func (c *Client) steamLevel(ctx context.Context, steamID string) (SteamLevel, error) {
	sid, errSID := parseSteamID(steamID)
	if errSID != nil {
		return SteamLevel{}, errSID
	}

	resp, errResp := fetch[steamLevelResponse](ctx, c, endpointSteamLevel, Params{"steamid": sid.String()})
	if errResp != nil {
		return SteamLevel{}, errResp
	}

	if resp.Response == nil || resp.Response.PlayerLevel == nil {
		return SteamLevel{}, newError(KindEmpty, http.StatusOK, "no level data, the profile may be private")
	}

	return SteamLevel{Level: *resp.Response.PlayerLevel}, nil
}
