package movegen

import (
	"github.com/discochess/polybook/internal/board"
	"github.com/discochess/polybook/internal/position"
)

// generateCastles appends pseudo-legal castling moves (encoded
// king-captures-own-rook); Legal's later filter step verifies the king does
// not pass through or land on an attacked square.
func generateCastles(p *position.Position, buf []board.Move, n int) int {
	us := p.SideToMove()
	occ := p.Pieces()
	rights := p.CastleRights()

	if us == board.White {
		king := board.Square(4)
		if p.PieceOn(king) == board.MakePiece(board.White, board.King) {
			if rights&position.WhiteKingSide != 0 && p.PieceOn(7) == board.MakePiece(board.White, board.Rook) {
				if !occ.Has(5) && !occ.Has(6) {
					n = appendMove(buf, n, board.NewCastle(king, 7))
				}
			}
			if rights&position.WhiteQueenSide != 0 && p.PieceOn(0) == board.MakePiece(board.White, board.Rook) {
				if !occ.Has(1) && !occ.Has(2) && !occ.Has(3) {
					n = appendMove(buf, n, board.NewCastle(king, 0))
				}
			}
		}
		return n
	}

	king := board.Square(60)
	if p.PieceOn(king) == board.MakePiece(board.Black, board.King) {
		if rights&position.BlackKingSide != 0 && p.PieceOn(63) == board.MakePiece(board.Black, board.Rook) {
			if !occ.Has(61) && !occ.Has(62) {
				n = appendMove(buf, n, board.NewCastle(king, 63))
			}
		}
		if rights&position.BlackQueenSide != 0 && p.PieceOn(56) == board.MakePiece(board.Black, board.Rook) {
			if !occ.Has(57) && !occ.Has(58) && !occ.Has(59) {
				n = appendMove(buf, n, board.NewCastle(king, 56))
			}
		}
	}
	return n
}
