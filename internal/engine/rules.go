package engine

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
)

// FiftyMoveLimit is the halfmove clock value at which either player may
// claim a draw.
const FiftyMoveLimit = 100

// HasInsufficientMaterial returns true if the position has insufficient
// mating material for either side.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+B vs K+B (same color bishops)
func HasInsufficientMaterial(board *chess.Board) bool {
	var whitePieces, blackPieces []chess.Kind
	var whiteBishopOnLight, blackBishopOnLight bool

	for _, piece := range append(board.WhitePieces(), board.BlackPieces()...) {
		// Kings don't count for material
		if piece.IsKing() {
			continue
		}

		// Any pawn, rook, or queen means sufficient material
		if piece.Kind == chess.Pawn || piece.Kind == chess.Rook || piece.Kind == chess.Queen {
			return false
		}

		if piece.Colour == chess.White {
			whitePieces = append(whitePieces, piece.Kind)
			if piece.Kind == chess.Bishop {
				whiteBishopOnLight = isLightSquare(piece.Position)
			}
		} else {
			blackPieces = append(blackPieces, piece.Kind)
			if piece.Kind == chess.Bishop {
				blackBishopOnLight = isLightSquare(piece.Position)
			}
		}
	}

	// K vs K
	if len(whitePieces) == 0 && len(blackPieces) == 0 {
		return true
	}

	// K+B vs K or K+N vs K
	if len(whitePieces) == 0 && len(blackPieces) == 1 {
		return blackPieces[0] == chess.Bishop || blackPieces[0] == chess.Knight
	}
	if len(blackPieces) == 0 && len(whitePieces) == 1 {
		return whitePieces[0] == chess.Bishop || whitePieces[0] == chess.Knight
	}

	// K+B vs K+B (same color bishops)
	if len(whitePieces) == 1 && len(blackPieces) == 1 {
		if whitePieces[0] == chess.Bishop && blackPieces[0] == chess.Bishop {
			return whiteBishopOnLight == blackBishopOnLight
		}
	}

	return false
}

// isLightSquare returns true if the given square is a light square.
// a8 (index 0) is light.
func isLightSquare(p chess.Position) bool {
	return (p.Row()+p.Column())%2 == 0
}

// CanClaimFiftyMoves reports whether the halfmove clock allows a fifty-move
// draw claim.
func CanClaimFiftyMoves(clocks Clocks) bool {
	return clocks.HalfmoveClock >= FiftyMoveLimit
}
