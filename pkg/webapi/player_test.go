package webapi_test

import (
	"testing"

	"github.com/leighmacdonald/steamweb/pkg/webapi"
	"github.com/stretchr/testify/require"
)

const (
	ownedGamesPath = "/IPlayerService/GetOwnedGames/v1/"
	badgesPath     = "/IPlayerService/GetBadges/v1/"
)

func TestGetOwnedGames(t *testing.T) {
	client, recorder := newTestClient(t, map[string]fixture{ownedGamesPath: loadFixture(t, "owned_games.json")})

	appIDs := []int{730, 4000, 220}
	res, err := client.GetOwnedGames(t.Context(), testSteamID, appIDs, true)
	require.NoError(t, err)
	require.Nil(t, res.Error)
	require.Equal(t, 3, res.Data.Count)
	require.Len(t, res.Data.Games, 3)

	for _, game := range res.Data.Games {
		require.Contains(t, appIDs, game.AppID)
		require.NotEmpty(t, game.Name)
	}

	require.Equal(t, webapi.Game{
		AppID:           730,
		Name:            "Counter-Strike: Global Offensive",
		Playtime2Weeks:  120,
		PlaytimeForever: 24012,
		Icon:            "https://media.steampowered.com/steamcommunity/public/images/apps/730/69f7ebe2735c366c65c0b33dae00e12dc40edbe4.jpg",
		LastPlayed:      1543000000,
	}, res.Data.Games[2])

	_, form := recorder.last(t)
	require.Equal(t, testSteamID, form.Get("steamid"))
	require.Equal(t, "true", form.Get("include_appinfo"))
	require.Equal(t, "730", form.Get("appids_filter[0]"))
	require.Equal(t, "4000", form.Get("appids_filter[1]"))
	require.Equal(t, "220", form.Get("appids_filter[2]"))
}

func TestGetOwnedGamesWithoutInfo(t *testing.T) {
	client, recorder := newTestClient(t, map[string]fixture{
		ownedGamesPath: ok(`{"response":{"game_count":1,"games":[{"appid":730,"playtime_forever":24012}]}}`),
	})

	res, err := client.GetOwnedGames(t.Context(), testSteamID, []int{730}, false)
	require.NoError(t, err)
	require.Equal(t, 1, res.Data.Count)
	require.Empty(t, res.Data.Games[0].Name)
	require.Empty(t, res.Data.Games[0].Icon)

	_, form := recorder.last(t)
	require.Equal(t, "false", form.Get("include_appinfo"))
}

func TestGetOwnedGamesInput(t *testing.T) {
	client, recorder := newTestClient(t, map[string]fixture{})

	for _, appIDs := range [][]int{nil, {}, {730, 0}, {-4}} {
		res, err := client.GetOwnedGames(t.Context(), testSteamID, appIDs, true)
		require.NoError(t, err)
		require.Equal(t, webapi.KindInput, res.Error.Kind)
	}

	require.Zero(t, recorder.count())
}

func TestGetOwnedGamesPrivate(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{ownedGamesPath: ok(`{"response":{}}`)})

	res, err := client.GetOwnedGames(t.Context(), testSteamID, []int{730}, true)
	require.NoError(t, err)
	require.Nil(t, res.Data)
	require.Equal(t, webapi.KindEmpty, res.Error.Kind)
}

func TestGetOwnedGamesNoneOwned(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{ownedGamesPath: ok(`{"response":{"game_count":0}}`)})

	res, err := client.GetOwnedGames(t.Context(), testSteamID, []int{730}, true)
	require.NoError(t, err)
	require.Nil(t, res.Error)
	require.Zero(t, res.Data.Count)
	require.Empty(t, res.Data.Games)
}

func TestGetRecentlyPlayedGames(t *testing.T) {
	client, recorder := newTestClient(t, map[string]fixture{
		"/IPlayerService/GetRecentlyPlayedGames/v1/": loadFixture(t, "recent_games.json"),
	})

	res, err := client.GetRecentlyPlayedGames(t.Context(), testSteamID, 0)
	require.NoError(t, err)
	require.Nil(t, res.Error)
	require.Equal(t, 2, res.Data.Count)
	require.Equal(t, "Subnautica", res.Data.Games[0].Name)
	require.Equal(t, 300, res.Data.Games[0].Playtime2Weeks)
	require.Empty(t, res.Data.Games[1].Icon)

	_, form := recorder.last(t)
	require.False(t, form.Has("count"))

	_, err = client.GetRecentlyPlayedGames(t.Context(), testSteamID, 1)
	require.NoError(t, err)

	_, form = recorder.last(t)
	require.Equal(t, "1", form.Get("count"))

	invalid, err := client.GetRecentlyPlayedGames(t.Context(), testSteamID, -1)
	require.NoError(t, err)
	require.Equal(t, webapi.KindInput, invalid.Error.Kind)
}

func TestGetRecentlyPlayedGamesPrivate(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{
		"/IPlayerService/GetRecentlyPlayedGames/v1/": ok(`{"response":{}}`),
	})

	res, err := client.GetRecentlyPlayedGames(t.Context(), testSteamID, 0)
	require.NoError(t, err)
	require.ErrorIs(t, res.Err(), webapi.ErrEmpty)
}

func TestGetSteamLevel(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{
		"/IPlayerService/GetSteamLevel/v1/": ok(`{"response":{"player_level":15}}`),
	})

	res, err := client.GetSteamLevel(t.Context(), testSteamID)
	require.NoError(t, err)
	require.Equal(t, webapi.SteamLevel{Level: 15}, *res.Data)
}

func TestGetSteamLevelPrivate(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{
		"/IPlayerService/GetSteamLevel/v1/": ok(`{"response":{}}`),
	})

	res, err := client.GetSteamLevel(t.Context(), testSteamID)
	require.NoError(t, err)
	require.Nil(t, res.Data)
	require.Equal(t, webapi.KindEmpty, res.Error.Kind)
}

func TestGetBadges(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{badgesPath: loadFixture(t, "badges.json")})

	res, err := client.GetBadges(t.Context(), testSteamID)
	require.NoError(t, err)
	require.Nil(t, res.Error)

	player := res.Data
	require.Equal(t, 15, player.Level)
	require.Equal(t, 1874, player.XP)
	require.Equal(t, 126, player.XPNeeded)
	require.Equal(t, 1800, player.XPCurrentLevel)

	badges := player.Badges
	require.Equal(t, 730, badges.Game["730"].AppID)
	require.False(t, badges.Game["730"].Foil)
	require.True(t, badges.Game["730-foil"].Foil)
	require.Equal(t, "1234567891", badges.Game["730-foil"].ItemID)

	require.Equal(t, 991980, badges.Event["winter-2018"].AppID)
	require.Equal(t, 3, badges.Event["winter-2018"].Level)
	require.Equal(t, 123456, badges.Event["event-123456"].AppID)

	require.Equal(t, int64(1374542223), badges.Special["years"].Earned)
	require.Equal(t, 5, badges.Special["years"].Level)
	require.Equal(t, 412, badges.Special["games"].Level)

	// Every upstream badge lands in exactly one bucket.
	require.Equal(t, 6, len(badges.Game)+len(badges.Event)+len(badges.Special))
}

func TestGetBadgesCollisions(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{badgesPath: ok(`{"response":{"player_level":3,"badges":[
		{"badgeid":1,"appid":991980,"level":1,"completion_time":1},
		{"badgeid":2,"appid":991980,"level":2,"completion_time":2},
		{"badgeid":2,"appid":991980,"level":3,"completion_time":3},
		{"badgeid":77,"level":1,"completion_time":4}
	]}}`)})

	res, err := client.GetBadges(t.Context(), testSteamID)
	require.NoError(t, err)
	require.Len(t, res.Data.Badges.Event, 3)
	require.Equal(t, 1, res.Data.Badges.Event["winter-2018"].Level)
	require.Equal(t, 2, res.Data.Badges.Event["winter-2018-2"].Level)
	require.Equal(t, 3, res.Data.Badges.Event["winter-2018-2-2"].Level)
	require.Equal(t, int64(4), res.Data.Badges.Special["badge-77"].Earned)
	require.Empty(t, res.Data.Badges.Game)
}

func TestGetBadgesPrivate(t *testing.T) {
	client, _ := newTestClient(t, map[string]fixture{badgesPath: ok(`{"response":{}}`)})

	res, err := client.GetBadges(t.Context(), testSteamID)
	require.NoError(t, err)
	require.Equal(t, webapi.KindEmpty, res.Error.Kind)
}

func TestGetBadgeProgress(t *testing.T) {
	client, recorder := newTestClient(t, map[string]fixture{
		"/IPlayerService/GetCommunityBadgeProgress/v1/": loadFixture(t, "badge_progress.json"),
	})

	res, err := client.GetBadgeProgress(t.Context(), testSteamID, "awards-2018")
	require.NoError(t, err)
	require.Nil(t, res.Error)
	require.Equal(t, 4, res.Data.Count)
	require.Equal(t, 0, res.Data.Completed)
	require.Contains(t, res.Data.Quests, "115")

	_, form := recorder.last(t)
	require.Equal(t, "46", form.Get("badgeid"))

	for badge, expected := range map[string]string{"": "2", "community": "2", "13": "13"} {
		_, err = client.GetBadgeProgress(t.Context(), testSteamID, badge)
		require.NoError(t, err)

		_, form = recorder.last(t)
		require.Equal(t, expected, form.Get("badgeid"), badge)
	}
}

func TestGetBadgeProgressInput(t *testing.T) {
	client, recorder := newTestClient(t, map[string]fixture{})

	for _, badge := range []string{"winter-2018", "no-such-event", "-3"} {
		res, err := client.GetBadgeProgress(t.Context(), testSteamID, badge)
		require.NoError(t, err)
		require.Equal(t, webapi.KindInput, res.Error.Kind, badge)
	}

	require.Zero(t, recorder.count())
}
