package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"riotcli/internal/config"
	"riotcli/internal/domain"
)

// DDragonClient reads the public, versioned static data. No authentication.
type DDragonClient struct {
	baseURL   string
	transport *Transport
}

func NewDDragonClient(cfg *config.Config, transport *Transport) *DDragonClient {
	return &DDragonClient{
		baseURL:   strings.TrimRight(cfg.DDragonBaseURL, "/"),
		transport: transport,
	}
}

func (c *DDragonClient) GetVersions(ctx context.Context) ([]string, error) {
	versions, err := doRequest[[]string](ctx, c.transport, c.baseURL+"/api/versions.json", nil)
	if err != nil {
		return nil, err
	}
	return *versions, nil
}

func (c *DDragonClient) GetChampionList(ctx context.Context, version, locale string) (*ChampionListResponse, error) {
	u := fmt.Sprintf("%s/cdn/%s/data/%s/champion.json", c.baseURL, url.PathEscape(version), url.PathEscape(locale))
	return doRequest[ChampionListResponse](ctx, c.transport, u, nil)
}

func (c *DDragonClient) GetChampion(ctx context.Context, version, locale, championID string) (*ChampionEntry, error) {
	u := fmt.Sprintf("%s/cdn/%s/data/%s/champion/%s.json", c.baseURL, url.PathEscape(version), url.PathEscape(locale), url.PathEscape(championID))
	resp, err := doRequest[ChampionListResponse](ctx, c.transport, u, nil)
	if err != nil {
		return nil, err
	}
	for i := range resp.Entries {
		if resp.Entries[i].ID == championID {
			return &resp.Entries[i], nil
		}
	}
	return nil, domain.NotFound(fmt.Errorf("champion %s missing from %s", championID, u))
}

// ChampionListResponse keeps the entries of the "data" object in payload order.
type ChampionListResponse struct {
	Version string
	Entries []ChampionEntry
}

func (r *ChampionListResponse) UnmarshalJSON(b []byte) error {
	if !gjson.ValidBytes(b) {
		return errors.New("invalid champion payload")
	}
	root := gjson.ParseBytes(b)
	data := root.Get("data")
	if !data.IsObject() {
		return errors.New("champion payload has no data object")
	}

	entries := make([]ChampionEntry, 0, 200)
	var decodeErr error
	data.ForEach(func(key, value gjson.Result) bool {
		var entry ChampionEntry
		if err := sonic.UnmarshalString(value.Raw, &entry); err != nil {
			decodeErr = fmt.Errorf("champion %s: %w", key.String(), err)
			return false
		}
		if entry.ID == "" {
			entry.ID = key.String()
		}
		entries = append(entries, entry)
		return true
	})
	if decodeErr != nil {
		return decodeErr
	}

	r.Version = root.Get("version").String()
	r.Entries = entries
	return nil
}

type ChampionEntry struct {
	ID      string        `json:"id"`
	Key     string        `json:"key"`
	Name    string        `json:"name"`
	Title   string        `json:"title"`
	Stats   ChampionStats `json:"stats"`
	Passive Ability       `json:"passive"`
	Spells  []Ability     `json:"spells"`
}

type ChampionStats struct {
	HP                   float64 `json:"hp"`
	HPPerLevel           float64 `json:"hpperlevel"`
	MP                   float64 `json:"mp"`
	MPPerLevel           float64 `json:"mpperlevel"`
	MoveSpeed            float64 `json:"movespeed"`
	Armor                float64 `json:"armor"`
	ArmorPerLevel        float64 `json:"armorperlevel"`
	SpellBlock           float64 `json:"spellblock"`
	SpellBlockPerLevel   float64 `json:"spellblockperlevel"`
	AttackRange          float64 `json:"attackrange"`
	AttackDamage         float64 `json:"attackdamage"`
	AttackDamagePerLevel float64 `json:"attackdamageperlevel"`
	AttackSpeedPerLevel  float64 `json:"attackspeedperlevel"`
	AttackSpeed          float64 `json:"attackspeed"`
}

type Ability struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
