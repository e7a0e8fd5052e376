package webapi

import (
	"context"
	"sync"
)

var (
	defaultOnce   sync.Once
	defaultClient *Client
)

// Default returns the shared client used by the package level functions.
func Default() *Client {
	defaultOnce.Do(func() {
		client, err := New()
		if err != nil {
			panic(err)
		}

		defaultClient = client
	})

	return defaultClient
}

// SetKey sets the api key of the default client.
func SetKey(key string) {
	Default().SetKey(key)
}

func Key() string {
	return Default().Key()
}

func Request(ctx context.Context, path string, params Params) (RawResponse, error) {
	return Default().Request(ctx, path, params)
}

func ResolveName(ctx context.Context, vanity string) (Result[ResolvedName], error) {
	return Default().ResolveName(ctx, vanity)
}

func GetPlayerSummaries(ctx context.Context, steamIDs ...string) (Result[PlayerSummaries], error) {
	return Default().GetPlayerSummaries(ctx, steamIDs...)
}

func GetPlayerBans(ctx context.Context, steamIDs ...string) (Result[PlayerBans], error) {
	return Default().GetPlayerBans(ctx, steamIDs...)
}

func GetFriendList(ctx context.Context, steamID string, friendsOnly bool) (Result[FriendList], error) {
	return Default().GetFriendList(ctx, steamID, friendsOnly)
}

func GetUserGroups(ctx context.Context, steamID string) (Result[UserGroups], error) {
	return Default().GetUserGroups(ctx, steamID)
}

func GetRecentlyPlayedGames(ctx context.Context, steamID string, limit int) (Result[RecentGames], error) {
	return Default().GetRecentlyPlayedGames(ctx, steamID, limit)
}

func GetOwnedGames(ctx context.Context, steamID string, appIDs []int, includeInfo bool) (Result[OwnedGames], error) {
	return Default().GetOwnedGames(ctx, steamID, appIDs, includeInfo)
}

func GetSteamLevel(ctx context.Context, steamID string) (Result[SteamLevel], error) {
	return Default().GetSteamLevel(ctx, steamID)
}

func GetBadges(ctx context.Context, steamID string) (Result[PlayerBadges], error) {
	return Default().GetBadges(ctx, steamID)
}

func GetBadgeProgress(ctx context.Context, steamID string, badge string) (Result[BadgeProgress], error) {
	return Default().GetBadgeProgress(ctx, steamID, badge)
}

func GetGroupInfo(ctx context.Context, group string) (Result[Group], error) {
	return Default().GetGroupInfo(ctx, group)
}

func GetGlobalAchievements(ctx context.Context, appID int) (Result[GlobalAchievements], error) {
	return Default().GetGlobalAchievements(ctx, appID)
}

func GetCurrentPlayers(ctx context.Context, appID int) (Result[CurrentPlayers], error) {
	return Default().GetCurrentPlayers(ctx, appID)
}

func GetAchievements(ctx context.Context, steamID string, appID int) (Result[PlayerAchievements], error) {
	return Default().GetAchievements(ctx, steamID, appID)
}

func GetGameSchema(ctx context.Context, appID int) (Result[GameSchema], error) {
	return Default().GetGameSchema(ctx, appID)
}

func GetStats(ctx context.Context, steamID string, appID int) (Result[PlayerStats], error) {
	return Default().GetStats(ctx, steamID, appID)
}
