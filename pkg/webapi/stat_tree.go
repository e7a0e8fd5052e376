package webapi

import "strings"

const appCSGO = 730

// Stat is a stat value. Stats folded into a tree also carry their children.
type Stat struct {
	Value float64          `json:"value"`
	Stats map[string]*Stat `json:"stats,omitempty"`
}

type foldRule struct {
	prefix string
	suffix string
	group  string
}

// CS:GO reports a few hundred flat total_* stats. They are grouped by what they count, eg.
// total_kills_ak47 becomes kills.ak47 and total_defused_bombs becomes bombs.defused.
var csgoRules = []foldRule{
	{prefix: "last_match_", group: "lastMatch"},
	{prefix: "total_kills_", group: "kills"},
	{prefix: "total_shots_", group: "shots"},
	{prefix: "total_hits_", group: "hits"},
	{prefix: "total_wins_map_", group: "wins"},
	{prefix: "total_rounds_map_", group: "rounds"},
	{prefix: "total_", suffix: "_bombs", group: "bombs"},
}

var csgoTotals = map[string]string{
	"total_kills":         "kills",
	"total_wins":          "wins",
	"total_rounds_played": "rounds",
	"total_shots_fired":   "shots",
	"total_shots_hit":     "hits",
}

func statFolder(appID int) func(name string) []string {
	if appID != appCSGO {
		return func(name string) []string { return []string{name} }
	}

	return foldCSGO
}

func foldCSGO(name string) []string {
	if group, found := csgoTotals[name]; found {
		return []string{group}
	}

	for _, rule := range csgoRules {
		if len(name) <= len(rule.prefix)+len(rule.suffix) ||
			!strings.HasPrefix(name, rule.prefix) || !strings.HasSuffix(name, rule.suffix) {
			continue
		}

		return []string{rule.group, name[len(rule.prefix) : len(name)-len(rule.suffix)]}
	}

	if rest := strings.TrimPrefix(name, "total_"); rest != "" && rest != name {
		return []string{rest}
	}

	return []string{name}
}

// insertStat stores value at path, creating intermediate nodes. A node can hold both a value
// and children, eg. kills holds total_kills and kills.ak47 holds total_kills_ak47.
func insertStat(stats map[string]*Stat, path []string, value float64) {
	node, found := stats[path[0]]
	if !found {
		node = &Stat{}
		stats[path[0]] = node
	}

	if len(path) == 1 {
		node.Value = value

		return
	}

	if node.Stats == nil {
		node.Stats = map[string]*Stat{}
	}

	insertStat(node.Stats, path[1:], value)
}
