package board

import (
	"chessclick/internal/core"

	"github.com/notnil/chess"
)

// chess.Square shares the rank*8+file layout
func toChessSquare(sq core.Square) chess.Square {
	return chess.Square(sq.Index())
}

func fromChessSquare(sq chess.Square) core.Square {
	return core.SquareFromIndex(int(sq))
}

func fromChessColor(c chess.Color) core.Color {
	switch c {
	case chess.White:
		return core.ColorWhite
	case chess.Black:
		return core.ColorBlack
	}
	return 0
}

func fromChessKind(t chess.PieceType) core.PieceKind {
	switch t {
	case chess.Pawn:
		return core.Pawn
	case chess.Knight:
		return core.Knight
	case chess.Bishop:
		return core.Bishop
	case chess.Rook:
		return core.Rook
	case chess.Queen:
		return core.Queen
	case chess.King:
		return core.King
	}
	return core.NoKind
}

func fromChessPiece(p chess.Piece) core.Piece {
	if p == chess.NoPiece {
		return core.Piece{}
	}
	return core.Piece{Kind: fromChessKind(p.Type()), Color: fromChessColor(p.Color())}
}

func fromChessMove(m *chess.Move) core.Move {
	return core.Move{
		From:      fromChessSquare(m.S1()),
		To:        fromChessSquare(m.S2()),
		Promotion: fromChessKind(m.Promo()),
	}
}
