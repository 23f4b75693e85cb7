package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"riotcli/internal/api"
	"riotcli/internal/config"
	"riotcli/internal/constants"
	"riotcli/internal/domain"
	"riotcli/internal/regions"
)

type RiotAPI interface {
	GetAccountByRiotID(ctx context.Context, region domain.RegionCluster, gameName, tagLine string) (*api.AccountResponse, error)
	GetSummonerByPUUID(ctx context.Context, platform domain.PlatformCode, puuid string) (*api.SummonerResponse, error)
	GetLeagueEntriesByPUUID(ctx context.Context, platform domain.PlatformCode, puuid string) ([]api.LeagueEntryResponse, error)
	GetChampionMasteriesByPUUID(ctx context.Context, platform domain.PlatformCode, puuid string) ([]api.ChampionMasteryResponse, error)
	GetMatchIDsByPUUID(ctx context.Context, region domain.RegionCluster, puuid string, start, count int) ([]string, error)
	GetMatch(ctx context.Context, region domain.RegionCluster, matchID string) (*api.MatchResponse, error)
}

type ProfileService struct {
	riot         RiotAPI
	static       *StaticDataService
	masteryCount int
	matchCount   int
	logger       zerolog.Logger
}

func NewProfileService(riot *api.RiotClient, static *StaticDataService, cfg *config.Config, logger zerolog.Logger) *ProfileService {
	return newProfileService(riot, static, cfg.MasteryCount, cfg.MatchCount, logger)
}

func newProfileService(riot RiotAPI, static *StaticDataService, masteryCount, matchCount int, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		riot:         riot,
		static:       static,
		masteryCount: masteryCount,
		matchCount:   matchCount,
		logger:       logger,
	}
}

// Aggregate runs the lookup pipeline in order: account, summoner, rank,
// masteries, recent matches. Each step needs the PUUID from the first.
func (s *ProfileService) Aggregate(ctx context.Context, identity domain.PlayerIdentity, platform domain.PlatformCode) (*domain.AggregatedProfile, error) {
	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = &s.logger
	}

	region, err := regions.RegionOf(platform)
	if err != nil {
		return nil, err
	}
	accountRegion, err := regions.AccountRegionOf(platform)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("riot_id", identity.String()).
		Str("platform", string(platform)).
		Str("region", string(region)).
		Str("account_region", string(accountRegion)).
		Msg("aggregating profile")

	account, err := s.riot.GetAccountByRiotID(ctx, accountRegion, identity.GameName, identity.TagLine)
	if err != nil {
		logger.Error().Err(err).Str("riot_id", identity.String()).Msg("failed to resolve account")
		return nil, fmt.Errorf("failed to resolve %s: %w", identity, err)
	}
	if account.PUUID == "" {
		return nil, domain.NotFound(fmt.Errorf("no puuid returned for %s", identity))
	}
	puuid := account.PUUID

	summoner, err := s.riot.GetSummonerByPUUID(ctx, platform, puuid)
	if err != nil {
		logger.Error().Err(err).Str("puuid", puuid).Msg("failed to fetch summoner")
		return nil, fmt.Errorf("failed to fetch summoner: %w", err)
	}

	entries, err := s.riot.GetLeagueEntriesByPUUID(ctx, platform, puuid)
	if err != nil {
		logger.Error().Err(err).Str("puuid", puuid).Msg("failed to fetch league entries")
		return nil, fmt.Errorf("failed to fetch league entries: %w", err)
	}

	masteries, err := s.topMasteries(ctx, logger, platform, puuid)
	if err != nil {
		return nil, err
	}

	recent, err := s.recentResults(ctx, logger, region, puuid)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("puuid", puuid).Int("matches", len(recent.Outcomes)).Int("skipped", len(recent.Skipped)).Msg("profile aggregated")

	return &domain.AggregatedProfile{
		Identity:  identity,
		Platform:  platform,
		Region:    region,
		PUUID:     puuid,
		Summoner:  domain.SummonerProfile{Level: summoner.SummonerLevel},
		Rank:      SelectRank(entries),
		Masteries: masteries,
		Recent:    recent,
	}, nil
}

// SelectRank prefers the solo queue, then the first entry, then Unranked.
func SelectRank(entries []api.LeagueEntryResponse) domain.Rank {
	if len(entries) == 0 {
		return domain.Rank{}
	}
	chosen := entries[0]
	for _, e := range entries {
		if e.QueueType == constants.SoloQueueType {
			chosen = e
			break
		}
	}
	return domain.Rank{Entry: &domain.RankEntry{
		QueueType:    chosen.QueueType,
		Tier:         chosen.Tier,
		Division:     chosen.Rank,
		LeaguePoints: chosen.LeaguePoints,
	}}
}

// TopMasteries keeps the first n entries in provider order and resolves
// names through index. Unknown ids keep an empty name.
func TopMasteries(entries []api.ChampionMasteryResponse, n int, index domain.ChampionIndex) []domain.ResolvedMastery {
	if n < len(entries) {
		entries = entries[:n]
	}
	out := make([]domain.ResolvedMastery, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.ResolvedMastery{
			ChampionID: e.ChampionID,
			Name:       index[e.ChampionID],
			Points:     e.ChampionPoints,
		})
	}
	return out
}

func (s *ProfileService) topMasteries(ctx context.Context, logger *zerolog.Logger, platform domain.PlatformCode, puuid string) ([]domain.ResolvedMastery, error) {
	entries, err := s.riot.GetChampionMasteriesByPUUID(ctx, platform, puuid)
	if err != nil {
		logger.Error().Err(err).Str("puuid", puuid).Msg("failed to fetch masteries")
		return nil, fmt.Errorf("failed to fetch masteries: %w", err)
	}
	if len(entries) == 0 || s.masteryCount == 0 {
		return []domain.ResolvedMastery{}, nil
	}

	index, err := s.static.Session().ChampionIndexByKey(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("champion index unavailable, showing raw champion ids")
		index = nil
	}
	return TopMasteries(entries, s.masteryCount, index), nil
}

// OutcomeOf finds the win flag of puuid among the match participants.
func OutcomeOf(match *api.MatchResponse, puuid string) (bool, bool) {
	if match == nil {
		return false, false
	}
	for _, p := range match.Info.Participants {
		if p.PUUID == puuid {
			return p.Win, true
		}
	}
	return false, false
}

// recentResults skips any match whose detail fails or lacks the player and
// keeps going; skipped ids are reported alongside the outcomes.
func (s *ProfileService) recentResults(ctx context.Context, logger *zerolog.Logger, region domain.RegionCluster, puuid string) (domain.RecentResults, error) {
	results := domain.RecentResults{Outcomes: []domain.MatchOutcome{}}
	if s.matchCount == 0 {
		return results, nil
	}

	ids, err := s.riot.GetMatchIDsByPUUID(ctx, region, puuid, 0, s.matchCount)
	if err != nil {
		logger.Error().Err(err).Str("puuid", puuid).Msg("failed to fetch match ids")
		return results, fmt.Errorf("failed to fetch match ids: %w", err)
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return results, domain.Unavailable(err)
		}

		match, err := s.riot.GetMatch(ctx, region, id)
		if err != nil {
			logger.Warn().Err(err).Str("match_id", id).Msg("skipping match, detail unavailable")
			results.Skipped = append(results.Skipped, id)
			continue
		}

		win, ok := OutcomeOf(match, puuid)
		if !ok {
			logger.Warn().Str("match_id", id).Str("puuid", puuid).Msg("skipping match, player not among participants")
			results.Skipped = append(results.Skipped, id)
			continue
		}
		results.Outcomes = append(results.Outcomes, domain.MatchOutcome{MatchID: id, Win: win})
	}
	return results, nil
}
