package webapi

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/leighmacdonald/steamweb/internal/encoding"
)

type Group struct {
	GID        string `json:"gid"`
	Name       string `json:"name"`
	VanityName string `json:"vanityName"`
	Headline   string `json:"headline"`
	Summary    string `json:"summary"`
	// Members is the total member count of the list, MembersReal the count reported in the
	// group details.
	Members       int    `json:"members"`
	MembersReal   int    `json:"membersReal"`
	MembersOnline int    `json:"membersOnline"`
	MembersGame   int    `json:"membersGame"`
	MembersChat   int    `json:"membersChat"`
	Logo          Images `json:"logo"`
}

// The group endpoint lives on the community site and only speaks xml.
type groupMemberList struct {
	XMLName      xml.Name `xml:"memberList"`
	GroupID64    string   `xml:"groupID64"`
	MemberCount  string   `xml:"memberCount"`
	GroupDetails struct {
		GroupName     string `xml:"groupName"`
		GroupURL      string `xml:"groupURL"`
		Headline      string `xml:"headline"`
		Summary       string `xml:"summary"`
		AvatarIcon    string `xml:"avatarIcon"`
		AvatarMedium  string `xml:"avatarMedium"`
		AvatarFull    string `xml:"avatarFull"`
		MemberCount   string `xml:"memberCount"`
		MembersInChat string `xml:"membersInChat"`
		MembersInGame string `xml:"membersInGame"`
		MembersOnline string `xml:"membersOnline"`
	} `xml:"groupDetails"`
}

type groupErrorResponse struct {
	XMLName xml.Name `xml:"response"`
	Error   string   `xml:"error"`
}

// GetGroupInfo fetches a group by 64 bit id or by vanity name. No api key is needed.
func (c *Client) GetGroupInfo(ctx context.Context, group string) (Result[Group], error) {
	return result(c.groupInfo(ctx, group))
}

func (c *Client) groupInfo(ctx context.Context, group string) (Group, error) {
	group = strings.TrimSpace(group)
	if group == "" {
		return Group{}, newError(KindInput, 0, "group id or name is required")
	}

	path := "groups/" + url.PathEscape(group) + "/memberslistxml/"
	if _, errID := strconv.ParseUint(group, 10, 64); errID == nil {
		path = "gid/" + group + "/memberslistxml/"
	}

	raw, errRaw := c.do(ctx, request{
		method: http.MethodGet,
		base:   c.communityURL,
		path:   path,
		params: Params{"xml": 1},
	})
	if errRaw != nil {
		return Group{}, errRaw
	}

	if raw.StatusCode != http.StatusOK {
		return Group{}, classify(raw)
	}

	list, errList := encoding.UnmarshalXML[groupMemberList](raw.Body)
	if errList != nil {
		if upstreamErr, errUpstream := encoding.UnmarshalXML[groupErrorResponse](raw.Body); errUpstream == nil && upstreamErr.Error != "" {
			return Group{}, newError(KindNotFound, raw.StatusCode, "%s", strings.TrimSpace(upstreamErr.Error))
		}

		return Group{}, newError(KindUnexpectedShape, raw.StatusCode, "group %s: %s", group, errList.Error())
	}

	if list.GroupID64 == "" {
		return Group{}, newError(KindUnexpectedShape, raw.StatusCode, "group %s: missing groupID64", group)
	}

	details := list.GroupDetails

	return Group{
		GID:           list.GroupID64,
		Name:          strings.TrimSpace(details.GroupName),
		VanityName:    strings.TrimSpace(details.GroupURL),
		Headline:      strings.TrimSpace(details.Headline),
		Summary:       strings.TrimSpace(details.Summary),
		Members:       parseCount(list.MemberCount),
		MembersReal:   parseCount(details.MemberCount),
		MembersOnline: parseCount(details.MembersOnline),
		MembersGame:   parseCount(details.MembersInGame),
		MembersChat:   parseCount(details.MembersInChat),
		Logo: Images{
			Small:  strings.TrimSpace(details.AvatarIcon),
			Medium: strings.TrimSpace(details.AvatarMedium),
			Large:  strings.TrimSpace(details.AvatarFull),
		},
	}, nil
}

// parseCount reads member counts which are occasionally sent with thousands separators.
func parseCount(value string) int {
	count, errCount := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(value), ",", ""))
	if errCount != nil {
		return 0
	}

	return count
}
