package indexer

import (
	"github.com/discochess/polybook/internal/board"
	"github.com/discochess/polybook/internal/pgn"
	"github.com/discochess/polybook/internal/position"
	"github.com/discochess/polybook/internal/resolver"
	"github.com/discochess/polybook/internal/stats"
)

// maxPlyPerGame bounds the StateInfo arena per game, matching the
// position package's own per-game ply limit.
const maxPlyPerGame = 1024

// ReplayGame replays one scanned game's SAN tokens against a fresh or
// FEN-seeded Position, appending one Record per successfully resolved,
// non-null move to out. Resolution failures (illegal or ambiguous SAN,
// malformed FEN header, or exceeding the ply limit) abandon the rest of
// the game; records already appended for it are kept, per §4.F.
func ReplayGame(game pgn.Game, collector stats.Collector) []Record {
	if collector == nil {
		collector = stats.NewNoop()
	}

	pos := position.New()
	if game.FEN != "" {
		if err := pos.Set(game.FEN); err != nil {
			collector.IncCounter(stats.MetricAbandoned, 1)
			return nil
		}
	}

	var out []Record
	for _, tok := range game.Tokens() {
		if len(tok) == 0 {
			continue
		}
		if pos.Ply() >= maxPlyPerGame {
			collector.IncCounter(stats.MetricAbandoned, 1)
			break
		}

		m, ambiguous := resolver.Resolve(pos, tok)
		if m == board.MoveNull {
			pos.DoNullMove()
			continue
		}
		if m == board.MoveNone {
			if ambiguous {
				collector.IncCounter(stats.MetricRepaired, 1)
			}
			collector.IncCounter(stats.MetricAbandoned, 1)
			break
		}

		out = append(out, Record{
			Key:    pos.Key(),
			Move:   m.PolyglotMove(),
			Weight: 1,
			Learn:  packLearn(game.Result, game.ResultOffset),
		})
		collector.IncCounter(stats.MetricMoves, 1)
		pos.DoMove(m)
	}

	collector.IncCounter(stats.MetricGames, 1)
	return out
}
