package webapi_test

import (
	"net/http"
	"testing"

	"github.com/leighmacdonald/steamweb/pkg/webapi"
	"github.com/stretchr/testify/require"
)

const (
	achievementsPath = "/ISteamUserStats/GetPlayerAchievements/v1/"
	schemaPath       = "/ISteamUserStats/GetSchemaForGame/v2/"
	statsPath        = "/ISteamUserStats/GetUserStatsForGame/v2/"
	currentPath      = "/ISteamUserStats/GetNumberOfCurrentPlayers/v1/"
	globalPath       = "/ISteamUserStats/GetGlobalAchievementPercentagesForApp/v2/"
)

func TestGetGlobalAchievements(t *testing.T) {
	client, recorder := newTestClient(t, map[string]fixture{globalPath: loadFixture(t, "global_achievements.json")},
		webapi.WithKey(""))

	res, err := client.GetGlobalAchievements(t.Context(), 730)
	require.NoError(t, err)
	require.Nil(t, res.Error)
	require.Equal(t, map[string]float64{
		"KILLING_SPREE":   62.5,
		"WIN_BOMB_PLANT":  48.25,
		"GIVE_DAMAGE_LOW": 7,
	}, res.Data.Achievements)

	_, form := recorder.last(t)
	require.Equal(t, "730", form.Get("gameid"))
	require.False(t, form.Has("key"))
}

func TestGetGlobalAchievementsUnknownApp(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{globalPath: ok(`{}`)})

	res, err := client.GetGlobalAchievements(t.Context(), 1)
	require.NoError(t, err)
	require.Equal(t, webapi.KindNotFound, res.Error.Kind)

	invalid, err := client.GetGlobalAchievements(t.Context(), 0)
	require.NoError(t, err)
	require.Equal(t, webapi.KindInput, invalid.Error.Kind)
}

func TestGetCurrentPlayers(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{
		currentPath: ok(`{"response":{"player_count":812345,"result":1}}`),
	}, webapi.WithKey(""))

	res, err := client.GetCurrentPlayers(t.Context(), 730)
	require.NoError(t, err)
	require.Equal(t, 812345, res.Data.Players)
}

func TestGetCurrentPlayersNotFound(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{
		currentPath: {status: http.StatusNotFound, body: `{"response":{"result":42}}`},
	})

	res, err := client.GetCurrentPlayers(t.Context(), 1)
	require.NoError(t, err)
	require.Equal(t, webapi.KindNotFound, res.Error.Kind)

	client, _ = newTestClient(t, map[string]fixture{currentPath: ok(`{"response":{"result":42}}`)})

	res, err = client.GetCurrentPlayers(t.Context(), 1)
	require.NoError(t, err)
	require.Equal(t, webapi.KindNotFound, res.Error.Kind)
}

func TestGetAchievements(t *testing.T) {
	client, recorder := newTestClient(t, map[string]fixture{achievementsPath: loadFixture(t, "player_achievements.json")})

	res, err := client.GetAchievements(t.Context(), testSteamID, 264710)
	require.NoError(t, err)
	require.Nil(t, res.Error)
	require.Equal(t, "Subnautica", res.Data.Name)
	require.Equal(t, 2, res.Data.Count)
	require.Equal(t, 1, res.Data.Unlocked)
	require.Equal(t, webapi.PlayerAchievement{
		Name:        "Seamoth",
		Description: "Build a Seamoth",
		Unlocked:    true,
		UnlockTime:  1520000000,
	}, res.Data.Achievements["BuildSeamoth"])
	require.False(t, res.Data.Achievements["BuildCyclops"].Unlocked)

	_, form := recorder.last(t)
	require.Equal(t, "english", form.Get("l"))
	require.Equal(t, "264710", form.Get("appid"))
}

func TestGetAchievementsLanguage(t *testing.T) {
	client, recorder := newTestClient(t, map[string]fixture{achievementsPath: loadFixture(t, "player_achievements.json")},
		webapi.WithLanguage("german"))

	_, err := client.GetAchievements(t.Context(), testSteamID, 264710)
	require.NoError(t, err)

	_, form := recorder.last(t)
	require.Equal(t, "german", form.Get("l"))
}

func TestGetAchievementsNone(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{
		achievementsPath: ok(`{"playerstats":{"steamID":"76561198099490962","gameName":"Some Game","success":true}}`),
	})

	res, err := client.GetAchievements(t.Context(), testSteamID, 4000)
	require.NoError(t, err)
	require.Nil(t, res.Error)
	require.NotNil(t, res.Data.Achievements)
	require.Empty(t, res.Data.Achievements)
	require.Zero(t, res.Data.Count)
}

func TestGetAchievementsUnknownApp(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{
		achievementsPath: {status: http.StatusBadRequest, body: `{"playerstats":{"error":"Requested app has no stats","success":false}}`},
	})

	res, err := client.GetAchievements(t.Context(), testSteamID, 1)
	require.NoError(t, err)
	require.Nil(t, res.Data)
	require.Equal(t, "Requested app has no stats", res.Error.Message)

	client, _ = newTestClient(t, map[string]fixture{
		achievementsPath: ok(`{"playerstats":{"error":"Requested app has no stats","success":false}}`),
	})

	res, err = client.GetAchievements(t.Context(), testSteamID, 1)
	require.NoError(t, err)
	require.Equal(t, webapi.KindNotFound, res.Error.Kind)

	client, _ = newTestClient(t, map[string]fixture{achievementsPath: ok(`{}`)})

	res, err = client.GetAchievements(t.Context(), testSteamID, 1)
	require.NoError(t, err)
	require.Equal(t, webapi.KindNotFound, res.Error.Kind)
}

func TestGetGameSchema(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{schemaPath: loadFixture(t, "game_schema.json")})

	res, err := client.GetGameSchema(t.Context(), 264710)
	require.NoError(t, err)
	require.Nil(t, res.Error)
	require.Equal(t, "Subnautica", res.Data.Name)
	require.Equal(t, "12", res.Data.Version)
	require.Equal(t, 2, res.Data.AchievementCount)
	require.Equal(t, 2, res.Data.StatCount)
	require.Equal(t, "Seamoth", res.Data.Achievements["BuildSeamoth"].DisplayName)
	require.True(t, res.Data.Achievements["Hatching"].Hidden)
	require.Equal(t, "All time depth", res.Data.Stats["s1_AllTimeDepth"].DisplayName)
	require.Equal(t, "Has tank", res.Data.Stats["s2_HasTank"].DisplayName)
}

func TestGetGameSchemaUnknownApp(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{schemaPath: ok(`{"game":{}}`)})

	res, err := client.GetGameSchema(t.Context(), 1)
	require.NoError(t, err)
	require.Equal(t, webapi.KindNotFound, res.Error.Kind)
}

func TestGetGameSchemaWithoutStats(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{schemaPath: ok(`{"game":{"gameName":"Garry's Mod","gameVersion":"1"}}`)})

	res, err := client.GetGameSchema(t.Context(), 4000)
	require.NoError(t, err)
	require.Nil(t, res.Error)
	require.Empty(t, res.Data.Achievements)
	require.Empty(t, res.Data.Stats)
	require.Zero(t, res.Data.StatCount)
}

func TestGetStatsCSGO(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{statsPath: loadFixture(t, "stats_csgo.json")})

	res, err := client.GetStats(t.Context(), testSteamID, 730)
	require.NoError(t, err)
	require.Nil(t, res.Error)
	require.Equal(t, "ValveTestApp260", res.Data.Name)
	require.Equal(t, 14, res.Data.Count)

	stats := res.Data.Stats
	require.InDelta(t, 10352, stats["kills"].Value, 0.001)
	require.InDelta(t, 2510, stats["kills"].Stats["ak47"].Value, 0.001)
	require.InDelta(t, 4012, stats["kills"].Stats["headshot"].Value, 0.001)
	require.InDelta(t, 139, stats["bombs"].Stats["defused"].Value, 0.001)
	require.InDelta(t, 411, stats["bombs"].Stats["planted"].Value, 0.001)
	require.InDelta(t, 9811, stats["deaths"].Value, 0.001)
	require.InDelta(t, 301234, stats["shots"].Value, 0.001)
	require.InDelta(t, 40231, stats["shots"].Stats["ak47"].Value, 0.001)
	require.InDelta(t, 512, stats["wins"].Stats["de_dust2"].Value, 0.001)
	require.InDelta(t, 4511, stats["rounds"].Value, 0.001)
	require.InDelta(t, 21, stats["lastMatch"].Stats["kills"].Value, 0.001)
	require.True(t, res.Data.Achievements["KILLING_SPREE"])
}

func TestGetStatsFlat(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{statsPath: loadFixture(t, "stats_subnautica.json")})

	res, err := client.GetStats(t.Context(), testSteamID, 264710)
	require.NoError(t, err)
	require.Nil(t, res.Error)
	require.Equal(t, "Subnautica", res.Data.Name)
	require.Equal(t, 2, res.Data.Count)
	require.InDelta(t, 1204.5, res.Data.Stats["s1_AllTimeDepth"].Value, 0.001)
	require.Nil(t, res.Data.Stats["s1_AllTimeDepth"].Stats)
	require.InDelta(t, 1, res.Data.Stats["s2_HasTank"].Value, 0.001)
	require.Empty(t, res.Data.Achievements)
}

func TestGetStatsEmpty(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{
		statsPath: ok(`{"playerstats":{"steamID":"76561198099490962","gameName":"Half-Life 2"}}`),
	})

	res, err := client.GetStats(t.Context(), testSteamID, 220)
	require.NoError(t, err)
	require.Nil(t, res.Error)
	require.NotNil(t, res.Data.Stats)
	require.Empty(t, res.Data.Stats)
	require.Zero(t, res.Data.Count)
}

func TestGetStatsUnknownApp(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{statsPath: ok(`{}`)})

	res, err := client.GetStats(t.Context(), testSteamID, 1)
	require.NoError(t, err)
	require.Nil(t, res.Data)
	require.Equal(t, webapi.KindNotFound, res.Error.Kind)

	client, _ = newTestClient(t, map[string]fixture{
		statsPath: {status: http.StatusForbidden, body: `<html><body>Forbidden</body></html>`},
	})

	res, err = client.GetStats(t.Context(), testSteamID, 1)
	require.NoError(t, err)
	require.Equal(t, webapi.KindAuth, res.Error.Kind)
}
