package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"riotcli/internal/config"
	"riotcli/internal/domain"
)

type RiotClient struct {
	apiKey       string
	hostTemplate string
	transport    *Transport
}

func NewRiotClient(cfg *config.Config, transport *Transport) *RiotClient {
	return &RiotClient{
		apiKey:       cfg.RiotAPIKey,
		hostTemplate: strings.TrimRight(cfg.RiotHostTemplate, "/"),
		transport:    transport,
	}
}

func (c *RiotClient) baseURL(routing string) string {
	return fmt.Sprintf(c.hostTemplate, routing)
}

func (c *RiotClient) headers() map[string]string {
	return map[string]string{"X-Riot-Token": c.apiKey}
}

func (c *RiotClient) GetAccountByRiotID(ctx context.Context, region domain.RegionCluster, gameName, tagLine string) (*AccountResponse, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.baseURL(string(region)),
		url.PathEscape(gameName),
		url.PathEscape(tagLine),
	)
	return doRequest[AccountResponse](ctx, c.transport, u, c.headers())
}

func (c *RiotClient) GetSummonerByPUUID(ctx context.Context, platform domain.PlatformCode, puuid string) (*SummonerResponse, error) {
	u := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", c.baseURL(string(platform)), url.PathEscape(puuid))
	return doRequest[SummonerResponse](ctx, c.transport, u, c.headers())
}

func (c *RiotClient) GetLeagueEntriesByPUUID(ctx context.Context, platform domain.PlatformCode, puuid string) ([]LeagueEntryResponse, error) {
	u := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", c.baseURL(string(platform)), url.PathEscape(puuid))
	entries, err := doRequest[[]LeagueEntryResponse](ctx, c.transport, u, c.headers())
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

func (c *RiotClient) GetChampionMasteriesByPUUID(ctx context.Context, platform domain.PlatformCode, puuid string) ([]ChampionMasteryResponse, error) {
	u := fmt.Sprintf("%s/lol/champion-mastery/v4/champion-masteries/by-puuid/%s", c.baseURL(string(platform)), url.PathEscape(puuid))
	masteries, err := doRequest[[]ChampionMasteryResponse](ctx, c.transport, u, c.headers())
	if err != nil {
		return nil, err
	}
	return *masteries, nil
}

func (c *RiotClient) GetMatchIDsByPUUID(ctx context.Context, region domain.RegionCluster, puuid string, start, count int) ([]string, error) {
	q := url.Values{}
	q.Set("start", strconv.Itoa(start))
	q.Set("count", strconv.Itoa(count))
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?%s", c.baseURL(string(region)), url.PathEscape(puuid), q.Encode())
	ids, err := doRequest[[]string](ctx, c.transport, u, c.headers())
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

func (c *RiotClient) GetMatch(ctx context.Context, region domain.RegionCluster, matchID string) (*MatchResponse, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.baseURL(string(region)), url.PathEscape(matchID))
	return doRequest[MatchResponse](ctx, c.transport, u, c.headers())
}

type AccountResponse struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type SummonerResponse struct {
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int64  `json:"summonerLevel"`
}

type LeagueEntryResponse struct {
	LeagueID     string `json:"leagueId"`
	QueueType    string `json:"queueType"` // RANKED_SOLO_5x5, RANKED_FLEX_SR
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

type ChampionMasteryResponse struct {
	PUUID          string `json:"puuid"`
	ChampionID     int    `json:"championId"`
	ChampionLevel  int    `json:"championLevel"`
	ChampionPoints int    `json:"championPoints"`
}

type MatchResponse struct {
	Metadata struct {
		MatchID string `json:"matchId"`
	} `json:"metadata"`
	Info MatchInfo `json:"info"`
}

type MatchInfo struct {
	GameDuration int64         `json:"gameDuration"`
	GameMode     string        `json:"gameMode"`
	Participants []Participant `json:"participants"`
}

type Participant struct {
	PUUID        string `json:"puuid"`
	ChampionName string `json:"championName"`
	Win          bool   `json:"win"`
}
