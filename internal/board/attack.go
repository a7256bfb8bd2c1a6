package board

import "chessclick/internal/core"

var (
	knightJumps = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	straight    = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal    = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// kingAttacked reports whether c's king stands on a square attacked by the
// other side. A board without that king is never in check.
func kingAttacked(b core.Board, c core.Color) bool {
	for i, p := range b {
		if p.Kind == core.King && p.Color == c {
			return attacked(b, core.SquareFromIndex(i), core.OppositeColor(c))
		}
	}
	return false
}

func attacked(b core.Board, sq core.Square, by core.Color) bool {
	at := func(df, dr int, kinds ...core.PieceKind) bool {
		s := core.NewSquare(sq.File+df, sq.Rank+dr)
		if !s.Valid() {
			return false
		}
		p := b[s.Index()]
		if p.Color != by {
			return false
		}
		for _, k := range kinds {
			if p.Kind == k {
				return true
			}
		}
		return false
	}

	// Pawns attack diagonally forward, so look backwards from sq
	dir := -1
	if by == core.ColorBlack {
		dir = 1
	}
	if at(-1, dir, core.Pawn) || at(1, dir, core.Pawn) {
		return true
	}
	for _, d := range knightJumps {
		if at(d[0], d[1], core.Knight) {
			return true
		}
	}
	for _, d := range kingSteps {
		if at(d[0], d[1], core.King) {
			return true
		}
	}
	return slides(b, sq, by, straight[:], core.Rook) || slides(b, sq, by, diagonal[:], core.Bishop)
}

// slides walks each ray until the first piece; kind or a queen there attacks sq
func slides(b core.Board, sq core.Square, by core.Color, rays [][2]int, kind core.PieceKind) bool {
	for _, d := range rays {
		s := core.NewSquare(sq.File+d[0], sq.Rank+d[1])
		for s.Valid() {
			p := b[s.Index()]
			if !p.Empty() {
				if p.Color == by && (p.Kind == kind || p.Kind == core.Queen) {
					return true
				}
				break
			}
			s = core.NewSquare(s.File+d[0], s.Rank+d[1])
		}
	}
	return false
}
