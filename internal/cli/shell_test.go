package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"riotcli/internal/api"
	"riotcli/internal/domain"
)

type scriptedPrompter struct {
	lines     []string
	labels    []string
	deadlines []bool
}

func (p *scriptedPrompter) Prompt(ctx context.Context, label string) (string, error) {
	p.labels = append(p.labels, label)
	_, hasDeadline := ctx.Deadline()
	p.deadlines = append(p.deadlines, hasDeadline)
	if err := ctx.Err(); err != nil {
		return "", errors.Mark(err, domain.ErrCancelled)
	}
	if len(p.lines) == 0 {
		return "", fmt.Errorf("script exhausted: %w", domain.ErrCancelled)
	}
	line := p.lines[0]
	p.lines = p.lines[1:]
	return strings.TrimSpace(line), nil
}

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) Aggregate(ctx context.Context, identity domain.PlayerIdentity, platform domain.PlatformCode) (*domain.AggregatedProfile, error) {
	args := m.Called(ctx, identity, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AggregatedProfile), args.Error(1)
}

type mockChampions struct {
	mock.Mock
}

func (m *mockChampions) ChampionCatalog(ctx context.Context, locale string) (*domain.ChampionCatalog, error) {
	args := m.Called(ctx, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChampionCatalog), args.Error(1)
}

func (m *mockChampions) ChampionDetail(ctx context.Context, locale, championID string) (*domain.ChampionRecord, error) {
	args := m.Called(ctx, locale, championID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChampionRecord), args.Error(1)
}

type harness struct {
	shell     *Shell
	out       *bytes.Buffer
	prompter  *scriptedPrompter
	profiles  *mockProfiles
	champions *mockChampions
	sessions  int
}

func newHarness(lines ...string) *harness {
	h := &harness{
		out:       &bytes.Buffer{},
		prompter:  &scriptedPrompter{lines: lines},
		profiles:  new(mockProfiles),
		champions: new(mockChampions),
	}
	sessions := func() ChampionSource {
		h.sessions++
		return h.champions
	}
	h.shell = newShell(h.prompter, h.out, h.profiles, sessions, "ja_JP", zerolog.Nop())
	return h
}

func testCatalog() *domain.ChampionCatalog {
	c := &domain.ChampionCatalog{Version: "14.1.1", Locale: "ja_JP", Records: map[string]domain.ChampionRecord{}}
	for _, r := range []domain.ChampionRecord{
		{ID: "Ahri", Name: "アーリ"},
		{ID: "Viego", Name: "ヴィエゴ"},
		{ID: "Vi", Name: "ヴァイ"},
	} {
		c.Order = append(c.Order, r.ID)
		c.Records[r.ID] = r
	}
	return c
}

func TestRun_Quit(t *testing.T) {
	h := newHarness("0")
	require.NoError(t, h.shell.Run(context.Background()))
	assert.Contains(t, h.out.String(), "Bye.")
	assert.Len(t, h.prompter.labels, 1)
}

func TestRun_InvalidChoiceThenEndOfInput(t *testing.T) {
	h := newHarness("9", "abc")
	require.NoError(t, h.shell.Run(context.Background()))

	out := h.out.String()
	assert.Equal(t, 2, strings.Count(out, "Invalid choice. Enter 0, 1 or 2."))
	assert.Contains(t, out, "Bye.")
	assert.Len(t, h.prompter.labels, 3)
}

func TestRun_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := newHarness("1")
	require.NoError(t, h.shell.Run(ctx))
	assert.Contains(t, h.out.String(), "Interrupted (Ctrl-C), exiting.")
	h.profiles.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlayerLookup_RepromptsThenRenders(t *testing.T) {
	h := newHarness("1", "NoHash", "Hide on bush#KR1", "xx9", "KR", "0")
	identity := domain.PlayerIdentity{GameName: "Hide on bush", TagLine: "KR1"}
	h.profiles.On("Aggregate", mock.Anything, identity, domain.PlatformCode("kr")).Return(&domain.AggregatedProfile{
		Identity: identity,
		Platform: "kr",
		Region:   "asia",
		Summoner: domain.SummonerProfile{Level: 30},
		Rank:     domain.Rank{Entry: &domain.RankEntry{Tier: "GOLD", Division: "II", LeaguePoints: 40}},
		Recent:   domain.RecentResults{Outcomes: []domain.MatchOutcome{{MatchID: "KR_1", Win: true}}},
	}, nil).Once()

	require.NoError(t, h.shell.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "Malformed Riot ID, use name#tag.")
	assert.Contains(t, out, "Unknown platform code. Known: br1, eun1, euw1, jp1, kr,")
	assert.Contains(t, out, "SummonerName : Hide on bush")
	assert.Contains(t, out, "Rank         : GOLD II (40 LP)")
	assert.Contains(t, out, "Bye.")
	h.profiles.AssertExpectations(t)
}

func hasDeadline(ctx context.Context) bool {
	_, ok := ctx.Deadline()
	return ok
}

func TestPlayerLookup_DeadlineCoversOnlyNetwork(t *testing.T) {
	h := newHarness("1", "Faker#KR1", "kr", "0")
	h.profiles.On("Aggregate", mock.MatchedBy(hasDeadline), mock.Anything, mock.Anything).
		Return(&domain.AggregatedProfile{Identity: domain.PlayerIdentity{GameName: "Faker", TagLine: "KR1"}}, nil).Once()

	require.NoError(t, h.shell.Run(context.Background()))

	assert.Equal(t, []bool{false, false, false, false}, h.prompter.deadlines)
	h.profiles.AssertExpectations(t)
}

func TestPlayerLookup_TimesOut(t *testing.T) {
	h := newHarness("1", "Faker#KR1", "kr", "0")
	h.shell.timeout = 20 * time.Millisecond
	h.profiles.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, domain.Unavailable(errors.New("timeout")))

	require.NoError(t, h.shell.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "Lookup timed out, back to the menu.")
	assert.NotContains(t, out, "Invalid choice")
	assert.Contains(t, out, "Bye.")
}

func TestChampionLookup_CatalogTimesOut(t *testing.T) {
	h := newHarness("2", "ahri", "0")
	h.shell.timeout = 20 * time.Millisecond
	h.champions.On("ChampionCatalog", mock.Anything, "ja_JP").
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, domain.Unavailable(errors.New("timeout")))

	require.NoError(t, h.shell.Run(context.Background()))
	assert.Contains(t, h.out.String(), "Lookup timed out, back to the menu.")
	assert.Contains(t, h.out.String(), "Bye.")
}

func TestPlayerLookup_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "not found",
			err:  domain.NotFound(&api.Error{StatusCode: 404, Body: "Data not found"}),
			want: "Player not found: Faker#KR1 (kr)",
		},
		{
			name: "api error",
			err:  domain.Unavailable(&api.Error{StatusCode: 503, Body: "down"}),
			want: "Network or API error: API error 503: down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness("1", "Faker#KR1", "kr", "0")
			h.profiles.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			require.NoError(t, h.shell.Run(context.Background()))
			assert.Contains(t, h.out.String(), tt.want)
			// the menu comes back after the failure
			assert.Contains(t, h.out.String(), "Bye.")
		})
	}
}

func TestPlayerLookup_TooManyAttempts(t *testing.T) {
	h := newHarness("1", "a", "b", "c", "d", "e", "0")
	require.NoError(t, h.shell.Run(context.Background()))

	out := h.out.String()
	assert.Equal(t, 5, strings.Count(out, "Malformed Riot ID"))
	assert.Contains(t, out, "Too many invalid attempts, back to the menu.")
	assert.Contains(t, out, "Bye.")
	h.profiles.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything, mock.Anything)
}

func TestChampionLookup_EmptyQuery(t *testing.T) {
	h := newHarness("2", "  ", "0")
	require.NoError(t, h.shell.Run(context.Background()))
	assert.Contains(t, h.out.String(), "Input is empty.")
	assert.Zero(t, h.sessions)
}

func TestChampionLookup_NoMatch(t *testing.T) {
	h := newHarness("2", "teemo", "0")
	h.champions.On("ChampionCatalog", mock.Anything, "ja_JP").Return(testCatalog(), nil)

	require.NoError(t, h.shell.Run(context.Background()))
	assert.Contains(t, h.out.String(), "No matching champion found.")
	h.champions.AssertNotCalled(t, "ChampionDetail", mock.Anything, mock.Anything, mock.Anything)
}

func TestChampionLookup_SingleMatch(t *testing.T) {
	h := newHarness("2", "AHRI", "0")
	h.champions.On("ChampionCatalog", mock.Anything, "ja_JP").Return(testCatalog(), nil)
	h.champions.On("ChampionDetail", mock.Anything, "ja_JP", "Ahri").Return(&domain.ChampionRecord{
		ID: "Ahri", Name: "アーリ", Title: "九尾の狐",
		Passive: domain.Ability{Name: "P", Description: "<b>bold</b>"},
	}, nil)

	require.NoError(t, h.shell.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "=== アーリ – 九尾の狐 ===")
	assert.Contains(t, out, "Passive – P\n  bold\n")
	assert.NotContains(t, out, "Candidates:")
	assert.Equal(t, 1, h.sessions)
}

func TestChampionLookup_Ambiguous(t *testing.T) {
	h := newHarness("2", "vi", "2", "0")
	h.champions.On("ChampionCatalog", mock.Anything, "ja_JP").Return(testCatalog(), nil)
	h.champions.On("ChampionDetail", mock.Anything, "ja_JP", "Vi").Return(&domain.ChampionRecord{
		ID: "Vi", Name: "ヴァイ", Title: "ピルトーヴァーの執行者",
	}, nil)

	require.NoError(t, h.shell.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "Candidates:\n1) ヴィエゴ\n2) ヴァイ\n")
	assert.Contains(t, out, "=== ヴァイ – ピルトーヴァーの執行者 ===")
	h.champions.AssertExpectations(t)
}

func TestChampionLookup_InvalidNumber(t *testing.T) {
	for _, sel := range []string{"0", "3", "two", ""} {
		t.Run(fmt.Sprintf("%q", sel), func(t *testing.T) {
			h := newHarness("2", "vi", sel, "0")
			h.champions.On("ChampionCatalog", mock.Anything, "ja_JP").Return(testCatalog(), nil)

			require.NoError(t, h.shell.Run(context.Background()))
			assert.Contains(t, h.out.String(), "Invalid number.")
			h.champions.AssertNotCalled(t, "ChampionDetail", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestChampionLookup_DataUnavailable(t *testing.T) {
	h := newHarness("2", "ahri", "0")
	h.champions.On("ChampionCatalog", mock.Anything, "ja_JP").
		Return(nil, domain.Unavailable(errors.New("dial tcp: connection refused")))

	require.NoError(t, h.shell.Run(context.Background()))
	assert.Contains(t, h.out.String(), "Network or API error: dial tcp: connection refused")
}

func TestChampionLookup_DetailNotFound(t *testing.T) {
	h := newHarness("2", "ahri", "0")
	h.champions.On("ChampionCatalog", mock.Anything, "ja_JP").Return(testCatalog(), nil)
	h.champions.On("ChampionDetail", mock.Anything, "ja_JP", "Ahri").
		Return(nil, domain.NotFound(errors.New("champion Ahri missing")))

	require.NoError(t, h.shell.Run(context.Background()))
	assert.Contains(t, h.out.String(), "Champion not found: Ahri")
}

func TestLinePrompter(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("first\n  second  \n"), &out)
	ctx := context.Background()

	line, err := p.Prompt(ctx, "a > ")
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = p.Prompt(ctx, "b > ")
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	_, err = p.Prompt(ctx, "c > ")
	assert.True(t, errors.Is(err, domain.ErrCancelled))
	assert.Equal(t, "a > b > c > ", out.String())
}

func TestLinePrompter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	blocked := &blockingReader{release: make(chan struct{})}
	defer close(blocked.release)

	_, err := NewLinePrompter(blocked, &bytes.Buffer{}).Prompt(ctx, "> ")
	assert.True(t, errors.Is(err, domain.ErrCancelled))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLinePrompter_AbandonedPromptNeverLeaksLine(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	p := NewLinePrompter(pr, &bytes.Buffer{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := p.Prompt(ctx, "Riot ID > ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	written := make(chan struct{})
	go func() {
		defer close(written)
		_, _ = io.WriteString(pw, "Faker#KR1\n")
	}()

	line, err := p.Prompt(context.Background(), "menu > ")
	assert.Empty(t, line)
	assert.True(t, errors.Is(err, domain.ErrCancelled))

	select {
	case <-written:
	case <-time.After(time.Second):
		t.Fatal("reader did not stop after the abandoned prompt")
	}
}

type blockingReader struct {
	release chan struct{}
}

func (r *blockingReader) Read([]byte) (int, error) {
	<-r.release
	return 0, fmt.Errorf("closed")
}
