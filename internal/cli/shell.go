package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"riotcli/internal/config"
	"riotcli/internal/constants"
	"riotcli/internal/domain"
	"riotcli/internal/middleware"
	"riotcli/internal/presenter"
	"riotcli/internal/regions"
	"riotcli/internal/service"
)

const menu = `
=== Riot API CLI ===
1) Summoner lookup
2) Champion lookup
0) Quit
Enter a number > `

var errTooManyAttempts = errors.New("too many invalid attempts")

type ProfileAggregator interface {
	Aggregate(ctx context.Context, identity domain.PlayerIdentity, platform domain.PlatformCode) (*domain.AggregatedProfile, error)
}

type ChampionSource interface {
	ChampionCatalog(ctx context.Context, locale string) (*domain.ChampionCatalog, error)
	ChampionDetail(ctx context.Context, locale, championID string) (*domain.ChampionRecord, error)
}

type Shell struct {
	prompter Prompter
	out      io.Writer
	profiles ProfileAggregator
	sessions func() ChampionSource
	locale   string
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewShell(profiles *service.ProfileService, static *service.StaticDataService, cfg *config.Config, logger zerolog.Logger) *Shell {
	sessions := func() ChampionSource { return static.Session() }
	return newShell(NewLinePrompter(os.Stdin, os.Stdout), os.Stdout, profiles, sessions, cfg.ChampionLocale, logger)
}

func newShell(prompter Prompter, out io.Writer, profiles ProfileAggregator, sessions func() ChampionSource, locale string, logger zerolog.Logger) *Shell {
	return &Shell{
		prompter: prompter,
		out:      out,
		profiles: profiles,
		sessions: sessions,
		locale:   locale,
		timeout:  constants.LookupTimeout,
		logger:   logger,
	}
}

// Run loops over the menu until the user quits, input ends or ctx is cancelled.
// Lookup failures are reported and never end the loop.
func (s *Shell) Run(ctx context.Context) error {
	ctx = middleware.Session(ctx, s.logger)
	zerolog.Ctx(ctx).Info().Msg("shell started")

	player := middleware.Lookup("player", s.PlayerLookup)
	champion := middleware.Lookup("champion", s.ChampionLookup)

	for {
		choice, err := s.prompter.Prompt(ctx, menu)
		if err != nil {
			return s.finish(ctx, err)
		}

		switch choice {
		case "0":
			s.println("Bye.")
			return nil
		case "1":
			err = player(ctx)
		case "2":
			err = champion(ctx)
		default:
			s.println("Invalid choice. Enter 0, 1 or 2.\n")
			continue
		}

		if err != nil {
			return s.finish(ctx, err)
		}
	}
}

func (s *Shell) finish(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		s.println("\nInterrupted (Ctrl-C), exiting.")
		return nil
	}
	if errors.Is(err, domain.ErrCancelled) {
		s.println("\nBye.")
		return nil
	}
	return err
}

// PlayerLookup asks for a Riot ID and platform, then prints the aggregated profile.
// Only cancellation is returned; every other failure is printed.
func (s *Shell) PlayerLookup(ctx context.Context) error {
	identity, err := promptValid(ctx, s, "Riot ID (e.g. Hide on bush#JP1) > ",
		"Malformed Riot ID, use name#tag.", service.ParseRiotID)
	if err != nil {
		return s.inputFailure(err)
	}

	platform, err := promptValid(ctx, s, "Platform code (e.g. jp1 / kr / na1 ...) > ",
		"Unknown platform code. Known: "+platformList()+".", service.ChoosePlatform)
	if err != nil {
		return s.inputFailure(err)
	}

	lookupCtx, cancel := middleware.Deadline(ctx, s.timeout)
	defer cancel()

	profile, err := s.profiles.Aggregate(lookupCtx, identity, platform)
	if err != nil {
		if errors.Is(err, domain.ErrLookupNotFound) && lookupCtx.Err() == nil {
			s.printf("Player not found: %s (%s)\n\n", identity, platform)
			return nil
		}
		return s.lookupFailure(ctx, lookupCtx, err)
	}

	s.println(presenter.RenderProfile(profile))
	return nil
}

// ChampionLookup searches the champion catalog by partial name or id and
// prints the chosen champion's stats and skills.
func (s *Shell) ChampionLookup(ctx context.Context) error {
	query, err := s.prompter.Prompt(ctx, "Champion name (localized or English, partial ok) > ")
	if err != nil {
		return s.inputFailure(err)
	}
	if query == "" {
		s.println("Input is empty.\n")
		return nil
	}

	session := s.sessions()
	catalogCtx, cancelCatalog := middleware.Deadline(ctx, s.timeout)
	defer cancelCatalog()

	catalog, err := session.ChampionCatalog(catalogCtx, s.locale)
	if err != nil {
		return s.lookupFailure(ctx, catalogCtx, err)
	}

	candidates := service.FindChampions(catalog, query)
	var chosen domain.ChampionCandidate
	switch len(candidates) {
	case 0:
		s.println("No matching champion found.\n")
		return nil
	case 1:
		chosen = candidates[0]
	default:
		s.printf("%s", presenter.RenderCandidates(candidates))
		sel, err := s.prompter.Prompt(ctx, "Select a number > ")
		if err != nil {
			return s.inputFailure(err)
		}
		n, convErr := strconv.Atoi(sel)
		if convErr != nil || n < 1 || n > len(candidates) {
			s.println("Invalid number.\n")
			return nil
		}
		chosen = candidates[n-1]
	}

	detailCtx, cancelDetail := middleware.Deadline(ctx, s.timeout)
	defer cancelDetail()

	record, err := session.ChampionDetail(detailCtx, s.locale, chosen.ID)
	if err != nil {
		if errors.Is(err, domain.ErrLookupNotFound) && detailCtx.Err() == nil {
			s.printf("Champion not found: %s\n\n", chosen.ID)
			return nil
		}
		return s.lookupFailure(ctx, detailCtx, err)
	}

	s.println(presenter.RenderChampion(record))
	return nil
}

// lookupFailure reports a failed network step. ctx is the flow context and
// bounded the deadline-limited context the step ran under.
func (s *Shell) lookupFailure(ctx, bounded context.Context, err error) error {
	switch {
	case ctx.Err() != nil:
		return errors.Mark(err, domain.ErrCancelled)
	case errors.Is(bounded.Err(), context.DeadlineExceeded):
		zerolog.Ctx(ctx).Warn().Err(err).Dur("timeout", s.timeout).Msg("lookup timed out")
		s.println("Lookup timed out, back to the menu.\n")
	default:
		s.printf("Network or API error: %v\n\n", err)
	}
	return nil
}

func (s *Shell) inputFailure(err error) error {
	if errors.Is(err, errTooManyAttempts) {
		s.println("Too many invalid attempts, back to the menu.\n")
		return nil
	}
	return err
}

// promptValid re-prompts while parse reports ErrInputMalformed, up to
// MaxPromptAttempts times.
func promptValid[T any](ctx context.Context, s *Shell, label, retry string, parse func(string) (T, error)) (T, error) {
	var zero T
	for attempt := 1; attempt <= constants.MaxPromptAttempts; attempt++ {
		raw, err := s.prompter.Prompt(ctx, label)
		if err != nil {
			return zero, err
		}
		v, err := parse(raw)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, domain.ErrInputMalformed) {
			return zero, err
		}
		zerolog.Ctx(ctx).Debug().Err(err).Int("attempt", attempt).Msg("invalid input")
		s.println(retry)
	}
	return zero, errors.Mark(errTooManyAttempts, domain.ErrInputMalformed)
}

func platformList() string {
	platforms := regions.Platforms()
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func (s *Shell) println(text string) {
	fmt.Fprintln(s.out, text)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
