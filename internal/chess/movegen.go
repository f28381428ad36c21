package chess

// generators holds the movement rule of each piece kind.
var generators = [numKinds]func(Piece, *Board) []Move{
	Pawn:   pawnMoves,
	Knight: knightMoves,
	Bishop: bishopMoves,
	Rook:   rookMoves,
	Queen:  queenMoves,
	King:   kingMoves,
}

func knightMoves(p Piece, b *Board) []Move {
	return stepMoves(p, b, KnightVectors, knightWraps)
}

func kingMoves(p Piece, b *Board) []Move {
	return stepMoves(p, b, KingVectors, kingWraps)
}

func bishopMoves(p Piece, b *Board) []Move {
	return slideMoves(p, b, BishopVectors, bishopWraps)
}

func rookMoves(p Piece, b *Board) []Move {
	return slideMoves(p, b, RookVectors, rookWraps)
}

func queenMoves(p Piece, b *Board) []Move {
	return slideMoves(p, b, QueenVectors, kingWraps)
}

// stepMoves generates single-offset moves (knight, king).
func stepMoves(p Piece, b *Board, vectors []int, wraps func(Position, int) bool) []Move {
	var moves []Move
	for _, v := range vectors {
		if wraps(p.Position, v) {
			continue
		}
		dest := p.Position + Position(v)
		if !dest.Valid() {
			continue
		}
		sq := b.squares[dest]
		if !sq.occupied {
			moves = append(moves, Move{Kind: NormalMove, Piece: p, Destination: dest})
		} else if sq.piece.Colour != p.Colour {
			moves = append(moves, Move{Kind: AttackMove, Piece: p, Destination: dest, Captured: sq.piece})
		}
	}
	return moves
}

// slideMoves walks each ray until the edge or the first occupied square.
func slideMoves(p Piece, b *Board, vectors []int, wraps func(Position, int) bool) []Move {
	var moves []Move
	for _, v := range vectors {
		cur := p.Position
		for {
			// Edge test runs on the square we are leaving.
			if wraps(cur, v) {
				break
			}
			cur += Position(v)
			if !cur.Valid() {
				break
			}
			sq := b.squares[cur]
			if !sq.occupied {
				moves = append(moves, Move{Kind: NormalMove, Piece: p, Destination: cur})
				continue
			}
			if sq.piece.Colour != p.Colour {
				moves = append(moves, Move{Kind: AttackMove, Piece: p, Destination: cur, Captured: sq.piece})
			}
			break
		}
	}
	return moves
}

func pawnMoves(p Piece, b *Board) []Move {
	var moves []Move
	dir := p.Colour.Direction()

	for _, v := range PawnVectors {
		dest := p.Position + Position(v*dir)
		if !dest.Valid() {
			continue
		}
		switch v {
		case 8:
			if !b.squares[dest].occupied {
				moves = append(moves, Move{Kind: PawnMove, Piece: p, Destination: dest})
			}
		case 16:
			if p.Moved || !onPawnHomeRank(p) {
				continue
			}
			between := p.Position + Position(8*dir)
			if !b.squares[between].occupied && !b.squares[dest].occupied {
				moves = append(moves, Move{Kind: PawnJump, Piece: p, Destination: dest})
			}
		case 7, 9:
			if pawnDiagonalWraps(p.Position, p.Colour, v) {
				continue
			}
			sq := b.squares[dest]
			if sq.occupied && sq.piece.Colour != p.Colour {
				moves = append(moves, Move{Kind: PawnAttackMove, Piece: p, Destination: dest, Captured: sq.piece})
			}
		}
	}

	if m, ok := enPassantMove(p, b); ok {
		moves = append(moves, m)
	}
	return moves
}

func onPawnHomeRank(p Piece) bool {
	if p.Colour == White {
		return IsSeventhRow(p.Position)
	}
	return IsSecondRow(p.Position)
}

// enPassantMove captures the board's registered pawn when it is an enemy pawn
// standing directly beside p.
func enPassantMove(p Piece, b *Board) (Move, bool) {
	if !b.hasEnPassant {
		return Move{}, false
	}
	target := b.enPassant
	if target.Colour == p.Colour || target.Position.Row() != p.Position.Row() {
		return Move{}, false
	}
	if d := target.Position.Column() - p.Position.Column(); d != 1 && d != -1 {
		return Move{}, false
	}
	dest := target.Position + Position(8*p.Colour.Direction())
	if !dest.Valid() || b.squares[dest].occupied {
		return Move{}, false
	}
	return Move{Kind: PawnEnPassantAttackMove, Piece: p, Destination: dest, Captured: target}, true
}
