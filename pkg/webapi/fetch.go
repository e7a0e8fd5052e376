package webapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/leighmacdonald/steamid/v4/steamid"
	"github.com/leighmacdonald/steamweb/internal/encoding"
)

type apiEndpoint struct {
	Endpoint
	keyRequired bool
}

var (
	endpointResolveVanityURL    = apiEndpoint{Endpoint{"ISteamUser", "ResolveVanityURL", 1}, true}
	endpointPlayerSummaries     = apiEndpoint{Endpoint{"ISteamUser", "GetPlayerSummaries", 2}, true}
	endpointPlayerBans          = apiEndpoint{Endpoint{"ISteamUser", "GetPlayerBans", 1}, true}
	endpointFriendList          = apiEndpoint{Endpoint{"ISteamUser", "GetFriendList", 1}, true}
	endpointUserGroupList       = apiEndpoint{Endpoint{"ISteamUser", "GetUserGroupList", 1}, true}
	endpointRecentlyPlayedGames = apiEndpoint{Endpoint{"IPlayerService", "GetRecentlyPlayedGames", 1}, true}
	endpointOwnedGames          = apiEndpoint{Endpoint{"IPlayerService", "GetOwnedGames", 1}, true}
	endpointSteamLevel          = apiEndpoint{Endpoint{"IPlayerService", "GetSteamLevel", 1}, true}
	endpointBadges              = apiEndpoint{Endpoint{"IPlayerService", "GetBadges", 1}, true}
	endpointBadgeProgress       = apiEndpoint{Endpoint{"IPlayerService", "GetCommunityBadgeProgress", 1}, true}
	endpointGlobalAchievements  = apiEndpoint{Endpoint{"ISteamUserStats", "GetGlobalAchievementPercentagesForApp", 2}, false}
	endpointCurrentPlayers      = apiEndpoint{Endpoint{"ISteamUserStats", "GetNumberOfCurrentPlayers", 1}, false}
	endpointPlayerAchievements  = apiEndpoint{Endpoint{"ISteamUserStats", "GetPlayerAchievements", 1}, true}
	endpointSchemaForGame       = apiEndpoint{Endpoint{"ISteamUserStats", "GetSchemaForGame", 2}, true}
	endpointUserStatsForGame    = apiEndpoint{Endpoint{"ISteamUserStats", "GetUserStatsForGame", 2}, true}
)

// fetch performs a single api call and decodes a 200 response into the upstream schema T.
// Logical failures are returned as *Error, transport failures as is.
func fetch[T any](ctx context.Context, client *Client, endpoint apiEndpoint, params Params) (T, error) {
	var value T

	if endpoint.keyRequired && client.Key() == "" {
		return value, errNoKey()
	}

	raw, errRaw := client.do(ctx, request{
		method: http.MethodGet,
		base:   client.baseURL,
		path:   endpoint.Path() + "/",
		params: params,
		api:    true,
	})
	if errRaw != nil {
		return value, errRaw
	}

	if apiErr := classify(raw); apiErr != nil {
		return value, apiErr
	}

	decoded, errDecode := encoding.DecodeJSON[T](raw.Body)
	if errDecode != nil {
		return value, newError(KindUnexpectedShape, raw.StatusCode, "%s: %s", endpoint.Method, errDecode.Error())
	}

	return decoded, nil
}

func parseSteamID(value string) (steamid.SteamID, error) {
	var empty steamid.SteamID

	value = strings.TrimSpace(value)
	if value == "" {
		return empty, newError(KindInput, 0, "steam id is required")
	}

	sid := steamid.New(value)
	if !sid.Valid() {
		return empty, newError(KindInput, 0, "invalid steam id: %q", value)
	}

	return sid, nil
}

// parseSteamIDs validates and de-duplicates a list of steam ids, keeping the input order.
func parseSteamIDs(values []string, limit int) (steamid.Collection, error) {
	if len(values) == 0 {
		return nil, newError(KindInput, 0, "at least one steam id is required")
	}

	var ids steamid.Collection //nolint:prealloc
	seen := map[string]bool{}
	for _, value := range values {
		sid, errSID := parseSteamID(value)
		if errSID != nil {
			return nil, errSID
		}

		if seen[sid.String()] {
			continue
		}

		seen[sid.String()] = true
		ids = append(ids, sid)
	}

	if len(ids) > limit {
		return nil, newError(KindInput, 0, "at most %d steam ids can be requested at once, got %d", limit, len(ids))
	}

	return ids, nil
}

func validAppID(appID int) error {
	if appID <= 0 {
		return newError(KindInput, 0, "invalid app id: %d", appID)
	}

	return nil
}
