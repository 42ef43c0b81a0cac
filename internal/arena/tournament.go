package arena

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ResultSink receives every finished match, for example to persist it.
type ResultSink interface {
	Save(ctx context.Context, result *Result) error
}

// Tournament plays a series of matches between two player configurations, alternating colors.
type Tournament struct {
	// Configs holds the two player configurations. The first one plays black in even matches.
	Configs [2]string

	// Matches is the number of matches to play.
	Matches int

	// Parallelism is the number of matches played at the same time. Zero means GOMAXPROCS.
	Parallelism int

	Options Options

	// Sink is optional.
	Sink ResultSink

	// OnResult is called after every match, if set. Calls are serialized.
	OnResult func(result *Result, standings []Standing)
}

// Standing aggregates the results of one player configuration.
type Standing struct {
	Player       string `json:"player" db:"player"`
	Played       int    `json:"played" db:"played"`
	Wins         int    `json:"wins" db:"wins"`
	Losses       int    `json:"losses" db:"losses"`
	Draws        int    `json:"draws" db:"draws"`
	Forfeits     int    `json:"forfeits" db:"forfeits"`
	DiscsFor     int    `json:"discs_for" db:"discs_for"`
	DiscsAgainst int    `json:"discs_against" db:"discs_against"`
}

// Points returns the tournament score: one per win, half per draw.
func (s Standing) Points() float64 {
	return float64(s.Wins) + float64(s.Draws)/2
}

// Standings accumulates standings from results. It is safe for concurrent use.
type Standings struct {
	mu      sync.Mutex
	players map[string]*Standing
}

// NewStandings creates empty Standings.
func NewStandings() *Standings {
	return &Standings{players: make(map[string]*Standing)}
}

// Add records a result for both of its players.
func (s *Standings) Add(result *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	black := s.get(result.Black)
	white := s.get(result.White)

	black.Played++
	white.Played++

	black.DiscsFor += result.BlackDiscs
	black.DiscsAgainst += result.WhiteDiscs
	white.DiscsFor += result.WhiteDiscs
	white.DiscsAgainst += result.BlackDiscs

	switch result.Outcome {
	case BlackWins:
		black.Wins++
		white.Losses++
		if result.Forfeit != "" {
			white.Forfeits++
		}
	case WhiteWins:
		white.Wins++
		black.Losses++
		if result.Forfeit != "" {
			black.Forfeits++
		}
	default:
		black.Draws++
		white.Draws++
	}
}

func (s *Standings) get(player string) *Standing {
	standing, ok := s.players[player]
	if !ok {
		standing = &Standing{Player: player}
		s.players[player] = standing
	}
	return standing
}

// List returns a copy of all standings, best first. Ties are broken by disc difference, then name.
func (s *Standings) List() []Standing {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]Standing, 0, len(s.players))
	for _, standing := range s.players {
		list = append(list, *standing)
	}

	SortStandings(list)
	return list
}

// SortStandings sorts standings best first.
func SortStandings(list []Standing) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Points() != list[j].Points() {
			return list[i].Points() > list[j].Points()
		}

		diffI := list[i].DiscsFor - list[i].DiscsAgainst
		diffJ := list[j].DiscsFor - list[j].DiscsAgainst
		if diffI != diffJ {
			return diffI > diffJ
		}

		return list[i].Player < list[j].Player
	})
}

// Run plays all matches and returns the final standings.
// When ctx is cancelled, matches in progress are dropped and the standings so far are returned with ctx.Err().
func (t *Tournament) Run(ctx context.Context) ([]Standing, error) {
	if t.Matches <= 0 {
		return nil, fmt.Errorf("invalid number of matches: %d", t.Matches)
	}

	parallelism := t.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	standings := NewStandings()
	var callbackLock sync.Mutex

	start := time.Now()

	var group errgroup.Group
	group.SetLimit(parallelism)

	for matchIndex := range t.Matches {
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			black, white := t.Configs[0], t.Configs[1]
			if matchIndex%2 == 1 {
				black, white = white, black
			}

			result, err := RunMatch(ctx, black, white, t.Options)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("match %d failed: %w", matchIndex, err)
			}

			if t.Sink != nil {
				if err = t.Sink.Save(ctx, result); err != nil {
					return fmt.Errorf("failed to save match %d: %w", matchIndex, err)
				}
			}

			standings.Add(result)

			if t.OnResult != nil {
				callbackLock.Lock()
				defer callbackLock.Unlock()
				t.OnResult(result, standings.List())
			}

			return nil
		})
	}

	err := group.Wait()

	slog.Info("Tournament finished",
		"players", fmt.Sprintf("%s vs %s", t.Configs[0], t.Configs[1]),
		"matches", t.Matches,
		"parallelism", parallelism,
		"duration", time.Since(start),
	)

	if err != nil {
		return standings.List(), err
	}

	return standings.List(), ctx.Err()
}
