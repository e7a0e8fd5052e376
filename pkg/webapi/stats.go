package webapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// flexFloat decodes numbers that upstream sends either as json numbers or as strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	text := strings.Trim(string(data), `"`)
	if text == "" || text == "null" {
		*f = 0

		return nil
	}

	value, errParse := strconv.ParseFloat(text, 64)
	if errParse != nil {
		return errParse
	}

	*f = flexFloat(value)

	return nil
}

type GlobalAchievements struct {
	// Achievements maps achievement api names to the percentage of players that unlocked them.
	Achievements map[string]float64 `json:"achievements"`
}

type globalAchievementsResponse struct {
	AchievementPercentages *struct {
		Achievements []struct {
			Name    string    `json:"name"`
			Percent flexFloat `json:"percent"`
		} `json:"achievements"`
	} `json:"achievementpercentages"`
}

func (c *Client) GetGlobalAchievements(ctx context.Context, appID int) (Result[GlobalAchievements], error) {
	return result(c.globalAchievements(ctx, appID))
}

func (c *Client) globalAchievements(ctx context.Context, appID int) (GlobalAchievements, error) {
	if err := validAppID(appID); err != nil {
		return GlobalAchievements{}, err
	}

	resp, errResp := fetch[globalAchievementsResponse](ctx, c, endpointGlobalAchievements, Params{"gameid": appID})
	if errResp != nil {
		return GlobalAchievements{}, errResp
	}

	if resp.AchievementPercentages == nil {
		return GlobalAchievements{}, newError(KindNotFound, http.StatusOK, "no achievements for app %d", appID)
	}

	global := GlobalAchievements{Achievements: make(map[string]float64, len(resp.AchievementPercentages.Achievements))}
	for _, achievement := range resp.AchievementPercentages.Achievements {
		global.Achievements[achievement.Name] = float64(achievement.Percent)
	}

	return global, nil
}

type CurrentPlayers struct {
	Players int `json:"players"`
}

type currentPlayersResponse struct {
	Response *struct {
		PlayerCount *int `json:"player_count"`
		Result      int  `json:"result"`
	} `json:"response"`
}

// GetCurrentPlayers returns the number of players currently in game. The value is volatile.
func (c *Client) GetCurrentPlayers(ctx context.Context, appID int) (Result[CurrentPlayers], error) {
	return result(c.currentPlayers(ctx, appID))
}

func (c *Client) currentPlayers(ctx context.Context, appID int) (CurrentPlayers, error) {
	if err := validAppID(appID); err != nil {
		return CurrentPlayers{}, err
	}

	resp, errResp := fetch[currentPlayersResponse](ctx, c, endpointCurrentPlayers, Params{"appid": appID})
	if errResp != nil {
		return CurrentPlayers{}, errResp
	}

	if resp.Response == nil {
		return CurrentPlayers{}, newError(KindUnexpectedShape, http.StatusOK, "missing response object")
	}

	if resp.Response.Result != upstreamSuccess || resp.Response.PlayerCount == nil {
		return CurrentPlayers{}, newError(KindNotFound, http.StatusOK, "no player count for app %d", appID)
	}

	return CurrentPlayers{Players: *resp.Response.PlayerCount}, nil
}

type PlayerAchievements struct {
	Name         string                       `json:"name"`
	Count        int                          `json:"count"`
	Unlocked     int                          `json:"unlocked"`
	Achievements map[string]PlayerAchievement `json:"achievements"`
}

type PlayerAchievement struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
	UnlockTime  int64  `json:"unlockTime"`
}

type playerAchievementsResponse struct {
	PlayerStats *struct {
		SteamID      string `json:"steamID"`
		GameName     string `json:"gameName"`
		Success      *bool  `json:"success"`
		Error        string `json:"error"`
		Achievements *[]struct {
			APIName     string `json:"apiname"`
			Achieved    int    `json:"achieved"`
			UnlockTime  int64  `json:"unlocktime"`
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"achievements"`
	} `json:"playerstats"`
}

// GetAchievements fetches a players achievements for a game. A game without achievements
// yields an empty map, an app unknown to upstream yields an error.
func (c *Client) GetAchievements(ctx context.Context, steamID string, appID int) (Result[PlayerAchievements], error) {
	return result(c.achievements(ctx, steamID, appID))
}

func (c *Client) achievements(ctx context.Context, steamID string, appID int) (PlayerAchievements, error) {
	sid, errSID := parseSteamID(steamID)
	if errSID != nil {
		return PlayerAchievements{}, errSID
	}

	if err := validAppID(appID); err != nil {
		return PlayerAchievements{}, err
	}

	resp, errResp := fetch[playerAchievementsResponse](ctx, c, endpointPlayerAchievements,
		Params{"steamid": sid.String(), "appid": appID, "l": c.language})
	if errResp != nil {
		return PlayerAchievements{}, errResp
	}

	stats := resp.PlayerStats
	if stats == nil {
		return PlayerAchievements{}, newError(KindNotFound, http.StatusOK, "no stats for app %d", appID)
	}

	if stats.Success != nil && !*stats.Success {
		message := stats.Error
		if message == "" {
			message = "requested app has no stats"
		}

		return PlayerAchievements{}, newError(KindNotFound, http.StatusOK, "%s", message)
	}

	player := PlayerAchievements{Name: stats.GameName, Achievements: map[string]PlayerAchievement{}}
	if stats.Achievements != nil {
		for _, achievement := range *stats.Achievements {
			unlocked := achievement.Achieved == 1
			if unlocked {
				player.Unlocked++
			}

			player.Achievements[achievement.APIName] = PlayerAchievement{
				Name:        achievement.Name,
				Description: achievement.Description,
				Unlocked:    unlocked,
				UnlockTime:  achievement.UnlockTime,
			}
		}
	}

	player.Count = len(player.Achievements)

	return player, nil
}

type GameSchema struct {
	Name             string                       `json:"name"`
	Version          string                       `json:"version"`
	AchievementCount int                          `json:"achievementCount"`
	StatCount        int                          `json:"statCount"`
	Achievements     map[string]SchemaAchievement `json:"achievements"`
	Stats            map[string]SchemaStat        `json:"stats"`
}

type SchemaAchievement struct {
	DisplayName string  `json:"displayName"`
	Description string  `json:"description"`
	Hidden      bool    `json:"hidden"`
	Icon        string  `json:"icon"`
	IconGray    string  `json:"iconGray"`
	Default     float64 `json:"default"`
}

type SchemaStat struct {
	DisplayName string  `json:"displayName"`
	Default     float64 `json:"default"`
}

type schemaResponse struct {
	Game *struct {
		GameName           *string `json:"gameName"`
		GameVersion        string  `json:"gameVersion"`
		AvailableGameStats *struct {
			Achievements []struct {
				Name         string    `json:"name"`
				DefaultValue flexFloat `json:"defaultvalue"`
				DisplayName  string    `json:"displayName"`
				Hidden       int       `json:"hidden"`
				Description  string    `json:"description"`
				Icon         string    `json:"icon"`
				IconGray     string    `json:"icongray"`
			} `json:"achievements"`
			Stats []struct {
				Name         string    `json:"name"`
				DefaultValue flexFloat `json:"defaultvalue"`
				DisplayName  string    `json:"displayName"`
			} `json:"stats"`
		} `json:"availableGameStats"`
	} `json:"game"`
}

// GetGameSchema fetches the achievement and stat definitions of a game.
func (c *Client) GetGameSchema(ctx context.Context, appID int) (Result[GameSchema], error) {
	return result(c.gameSchema(ctx, appID))
}

func (c *Client) gameSchema(ctx context.Context, appID int) (GameSchema, error) {
	if err := validAppID(appID); err != nil {
		return GameSchema{}, err
	}

	resp, errResp := fetch[schemaResponse](ctx, c, endpointSchemaForGame, Params{"appid": appID, "l": c.language})
	if errResp != nil {
		return GameSchema{}, errResp
	}

	// Unknown apps come back as an empty game object.
	if resp.Game == nil || resp.Game.GameName == nil {
		return GameSchema{}, newError(KindNotFound, http.StatusOK, "no schema for app %d", appID)
	}

	schema := GameSchema{
		Name:         *resp.Game.GameName,
		Version:      resp.Game.GameVersion,
		Achievements: map[string]SchemaAchievement{},
		Stats:        map[string]SchemaStat{},
	}

	if available := resp.Game.AvailableGameStats; available != nil {
		for _, achievement := range available.Achievements {
			schema.Achievements[achievement.Name] = SchemaAchievement{
				DisplayName: achievement.DisplayName,
				Description: achievement.Description,
				Hidden:      achievement.Hidden == 1,
				Icon:        achievement.Icon,
				IconGray:    achievement.IconGray,
				Default:     float64(achievement.DefaultValue),
			}
		}

		for _, stat := range available.Stats {
			schema.Stats[stat.Name] = SchemaStat{
				DisplayName: stat.DisplayName,
				Default:     float64(stat.DefaultValue),
			}
		}
	}

	schema.AchievementCount = len(schema.Achievements)
	schema.StatCount = len(schema.Stats)

	return schema, nil
}

type PlayerStats struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	// Stats is keyed by stat name. Some games have their flat stat names folded into a tree,
	// see Stat.
	Stats        map[string]*Stat `json:"stats"`
	Achievements map[string]bool  `json:"achievements"`
}

type userStatsResponse struct {
	PlayerStats *struct {
		SteamID  string `json:"steamID"`
		GameName string `json:"gameName"`
		Stats    *[]struct {
			Name  string    `json:"name"`
			Value flexFloat `json:"value"`
		} `json:"stats"`
		Achievements []struct {
			Name     string `json:"name"`
			Achieved int    `json:"achieved"`
		} `json:"achievements"`
	} `json:"playerstats"`
}

// GetStats fetches a players stats for a game. A game without stats yields an empty map, an
// app unknown to upstream yields an error.
func (c *Client) GetStats(ctx context.Context, steamID string, appID int) (Result[PlayerStats], error) {
	return result(c.stats(ctx, steamID, appID))
}

func (c *Client) stats(ctx context.Context, steamID string, appID int) (PlayerStats, error) {
	sid, errSID := parseSteamID(steamID)
	if errSID != nil {
		return PlayerStats{}, errSID
	}

	if err := validAppID(appID); err != nil {
		return PlayerStats{}, err
	}

	resp, errResp := fetch[userStatsResponse](ctx, c, endpointUserStatsForGame,
		Params{"steamid": sid.String(), "appid": appID})
	if errResp != nil {
		return PlayerStats{}, errResp
	}

	if resp.PlayerStats == nil {
		return PlayerStats{}, newError(KindNotFound, http.StatusOK, "no stats for app %d", appID)
	}

	player := PlayerStats{
		Name:         resp.PlayerStats.GameName,
		Stats:        map[string]*Stat{},
		Achievements: make(map[string]bool, len(resp.PlayerStats.Achievements)),
	}

	fold := statFolder(appID)
	if resp.PlayerStats.Stats != nil {
		for _, stat := range *resp.PlayerStats.Stats {
			insertStat(player.Stats, fold(stat.Name), float64(stat.Value))
		}

		player.Count = len(*resp.PlayerStats.Stats)
	}

	for _, achievement := range resp.PlayerStats.Achievements {
		player.Achievements[achievement.Name] = achievement.Achieved == 1
	}

	return player, nil
}
