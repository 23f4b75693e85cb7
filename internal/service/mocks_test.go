package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"riotcli/internal/api"
	"riotcli/internal/domain"
)

type mockRiotAPI struct {
	mock.Mock
}

func (m *mockRiotAPI) GetAccountByRiotID(ctx context.Context, region domain.RegionCluster, gameName, tagLine string) (*api.AccountResponse, error) {
	args := m.Called(ctx, region, gameName, tagLine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.AccountResponse), args.Error(1)
}

func (m *mockRiotAPI) GetSummonerByPUUID(ctx context.Context, platform domain.PlatformCode, puuid string) (*api.SummonerResponse, error) {
	args := m.Called(ctx, platform, puuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.SummonerResponse), args.Error(1)
}

func (m *mockRiotAPI) GetLeagueEntriesByPUUID(ctx context.Context, platform domain.PlatformCode, puuid string) ([]api.LeagueEntryResponse, error) {
	args := m.Called(ctx, platform, puuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.LeagueEntryResponse), args.Error(1)
}

func (m *mockRiotAPI) GetChampionMasteriesByPUUID(ctx context.Context, platform domain.PlatformCode, puuid string) ([]api.ChampionMasteryResponse, error) {
	args := m.Called(ctx, platform, puuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.ChampionMasteryResponse), args.Error(1)
}

func (m *mockRiotAPI) GetMatchIDsByPUUID(ctx context.Context, region domain.RegionCluster, puuid string, start, count int) ([]string, error) {
	args := m.Called(ctx, region, puuid, start, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockRiotAPI) GetMatch(ctx context.Context, region domain.RegionCluster, matchID string) (*api.MatchResponse, error) {
	args := m.Called(ctx, region, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.MatchResponse), args.Error(1)
}

type mockDDragonAPI struct {
	mock.Mock
}

func (m *mockDDragonAPI) GetVersions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockDDragonAPI) GetChampionList(ctx context.Context, version, locale string) (*api.ChampionListResponse, error) {
	args := m.Called(ctx, version, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ChampionListResponse), args.Error(1)
}

func (m *mockDDragonAPI) GetChampion(ctx context.Context, version, locale, championID string) (*api.ChampionEntry, error) {
	args := m.Called(ctx, version, locale, championID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ChampionEntry), args.Error(1)
}

func championList(entries ...api.ChampionEntry) *api.ChampionListResponse {
	return &api.ChampionListResponse{Entries: entries}
}

func match(id string, participants ...api.Participant) *api.MatchResponse {
	m := &api.MatchResponse{}
	m.Metadata.MatchID = id
	m.Info.Participants = participants
	return m
}
