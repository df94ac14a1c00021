package spawnrule

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/osse101/MathCatch_Go/internal/domain"
)

type ruleFile struct {
	Rules map[string]ruleEntry `json:"rules"`
}

type ruleEntry struct {
	GuildID     string  `json:"guild_id"`
	Probability float64 `json:"probability"`
	Interval    int     `json:"interval"`
}

// ImportJSON reads a rule file of the form {"rules": {"<channel>": {"guild_id", "probability", "interval"}}}.
// Every rule is validated; rules that disable both mechanisms are skipped.
func ImportJSON(r io.Reader) ([]domain.SpawnRule, error) {
	var f ruleFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgImportDecode, err)
	}

	rules := make([]domain.SpawnRule, 0, len(f.Rules))
	for channelID, entry := range f.Rules {
		rule := domain.SpawnRule{
			ChannelID:   channelID,
			GuildID:     entry.GuildID,
			Probability: entry.Probability,
			Interval:    entry.Interval,
		}
		if !rule.HasProbability() && !rule.HasInterval() {
			continue
		}
		if err := Validate(rule); err != nil {
			return nil, fmt.Errorf(ErrMsgImportRuleFmt+": %w", channelID, err)
		}
		rules = append(rules, rule)
	}

	sort.Slice(rules, func(i, j int) bool { return rules[i].ChannelID < rules[j].ChannelID })
	return rules, nil
}
