package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	goversion "github.com/hashicorp/go-version"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"

	"riotcli/internal/api"
	"riotcli/internal/config"
	"riotcli/internal/domain"
)

// ErrVersionOrder is returned when versions.json is not newest-first.
var ErrVersionOrder = errors.New("version list is not ordered newest-first")

type DDragonAPI interface {
	GetVersions(ctx context.Context) ([]string, error)
	GetChampionList(ctx context.Context, version, locale string) (*api.ChampionListResponse, error)
	GetChampion(ctx context.Context, version, locale, championID string) (*api.ChampionEntry, error)
}

type StaticDataService struct {
	ddragon     DDragonAPI
	indexLocale string
	logger      zerolog.Logger
}

func NewStaticDataService(ddragon *api.DDragonClient, cfg *config.Config, logger zerolog.Logger) *StaticDataService {
	return newStaticDataService(ddragon, cfg.IndexLocale, logger)
}

func newStaticDataService(ddragon DDragonAPI, indexLocale string, logger zerolog.Logger) *StaticDataService {
	return &StaticDataService{ddragon: ddragon, indexLocale: indexLocale, logger: logger}
}

// Session starts a fresh static data view. The version is resolved once per
// session and every catalog loaded through it stays fixed afterwards.
func (s *StaticDataService) Session() *StaticData {
	return &StaticData{
		ddragon:     s.ddragon,
		indexLocale: s.indexLocale,
		logger:      s.logger,
		catalogs:    make(map[string]*domain.ChampionCatalog),
	}
}

type StaticData struct {
	ddragon     DDragonAPI
	indexLocale string
	logger      zerolog.Logger

	version  string
	index    domain.ChampionIndex
	catalogs map[string]*domain.ChampionCatalog
}

func (d *StaticData) CurrentVersion(ctx context.Context) (string, error) {
	if d.version != "" {
		return d.version, nil
	}

	versions, err := d.ddragon.GetVersions(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch versions: %w", err)
	}
	version, err := latestVersion(versions)
	if err != nil {
		return "", domain.Unavailable(err)
	}

	d.logger.Debug().Str("version", version).Msg("static data version selected")
	d.version = version
	return version, nil
}

// latestVersion takes the first entry. When the first two both parse as
// dotted versions the first must not be older than the second.
func latestVersion(versions []string) (string, error) {
	if len(versions) == 0 || strings.TrimSpace(versions[0]) == "" {
		return "", errors.New("no versions available")
	}
	if len(versions) > 1 {
		first, errFirst := goversion.NewVersion(versions[0])
		second, errSecond := goversion.NewVersion(versions[1])
		if errFirst == nil && errSecond == nil && first.LessThan(second) {
			return "", fmt.Errorf("%s listed before %s: %w", versions[0], versions[1], ErrVersionOrder)
		}
	}
	return versions[0], nil
}

// ChampionCatalog loads the full champion list for locale, in payload order.
func (d *StaticData) ChampionCatalog(ctx context.Context, locale string) (*domain.ChampionCatalog, error) {
	if catalog, ok := d.catalogs[locale]; ok {
		return catalog, nil
	}

	version, err := d.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := d.ddragon.GetChampionList(ctx, version, locale)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch champion list: %w", err)
	}

	catalog := &domain.ChampionCatalog{
		Version: version,
		Locale:  locale,
		Order:   make([]string, 0, len(resp.Entries)),
		Records: make(map[string]domain.ChampionRecord, len(resp.Entries)),
	}
	for _, entry := range resp.Entries {
		if _, dup := catalog.Records[entry.ID]; dup {
			return nil, domain.Unavailable(fmt.Errorf("duplicate champion id %s", entry.ID))
		}
		catalog.Order = append(catalog.Order, entry.ID)
		catalog.Records[entry.ID] = toRecord(entry)
	}

	d.logger.Debug().Str("locale", locale).Int("champions", len(catalog.Order)).Msg("champion catalog loaded")
	d.catalogs[locale] = catalog
	return catalog, nil
}

// ChampionIndexByKey re-keys the index-locale catalog by numeric key. The
// index is only kept when every entry converts.
func (d *StaticData) ChampionIndexByKey(ctx context.Context) (domain.ChampionIndex, error) {
	if d.index != nil {
		return d.index, nil
	}

	catalog, err := d.ChampionCatalog(ctx, d.indexLocale)
	if err != nil {
		return nil, err
	}

	index, err := buildIndex(catalog)
	if err != nil {
		return nil, domain.Unavailable(err)
	}
	d.index = index
	return index, nil
}

func buildIndex(catalog *domain.ChampionCatalog) (domain.ChampionIndex, error) {
	index := make(domain.ChampionIndex, len(catalog.Order))
	for _, id := range catalog.Order {
		record := catalog.Records[id]
		key, err := strconv.Atoi(record.Key)
		if err != nil {
			return nil, fmt.Errorf("champion %s has non-numeric key %q", id, record.Key)
		}
		if prev, dup := index[key]; dup {
			return nil, fmt.Errorf("champion key %d shared by %s and %s", key, prev, id)
		}
		index[key] = record.Name
	}
	return index, nil
}

func (d *StaticData) ChampionDetail(ctx context.Context, locale, championID string) (*domain.ChampionRecord, error) {
	version, err := d.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	entry, err := d.ddragon.GetChampion(ctx, version, locale, championID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch champion %s: %w", championID, err)
	}
	record := toRecord(*entry)
	return &record, nil
}

// FindChampions returns every champion whose id or name contains query,
// ignoring case, in catalog order.
func FindChampions(catalog *domain.ChampionCatalog, query string) []domain.ChampionCandidate {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	if q == "" || catalog == nil {
		return nil
	}

	var out []domain.ChampionCandidate
	for _, id := range catalog.Order {
		record := catalog.Records[id]
		if strings.Contains(fold.String(record.Name), q) || strings.Contains(fold.String(record.ID), q) {
			out = append(out, domain.ChampionCandidate{ID: id, Name: record.Name})
		}
	}
	return out
}

func toRecord(e api.ChampionEntry) domain.ChampionRecord {
	spells := make([]domain.Ability, 0, len(e.Spells))
	for _, s := range e.Spells {
		spells = append(spells, domain.Ability{Name: s.Name, Description: s.Description})
	}
	return domain.ChampionRecord{
		ID:    e.ID,
		Key:   e.Key,
		Name:  e.Name,
		Title: e.Title,
		Stats: domain.ChampionStats{
			HP:                   e.Stats.HP,
			HPPerLevel:           e.Stats.HPPerLevel,
			MP:                   e.Stats.MP,
			MPPerLevel:           e.Stats.MPPerLevel,
			AttackDamage:         e.Stats.AttackDamage,
			AttackDamagePerLevel: e.Stats.AttackDamagePerLevel,
			Armor:                e.Stats.Armor,
			ArmorPerLevel:        e.Stats.ArmorPerLevel,
			SpellBlock:           e.Stats.SpellBlock,
			SpellBlockPerLevel:   e.Stats.SpellBlockPerLevel,
			AttackSpeed:          e.Stats.AttackSpeed,
			AttackSpeedPerLevel:  e.Stats.AttackSpeedPerLevel,
			MoveSpeed:            e.Stats.MoveSpeed,
			AttackRange:          e.Stats.AttackRange,
		},
		Passive: domain.Ability{Name: e.Passive.Name, Description: e.Passive.Description},
		Spells:  spells,
	}
}
