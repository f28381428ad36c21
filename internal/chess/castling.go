package chess

// castleRule describes one castle for one colour by fixed board indices.
type castleRule struct {
	kind        MoveKind
	king        Position
	rook        Position
	kingDest    Position
	rookDest    Position
	mustBeEmpty []Position
	mustBeSafe  []Position
}

var castleRules = [2][]castleRule{
	White: {
		{kind: KingSideCastleMove, king: 60, rook: 63, kingDest: 62, rookDest: 61,
			mustBeEmpty: []Position{61, 62}, mustBeSafe: []Position{61, 62}},
		{kind: QueenSideCastleMove, king: 60, rook: 56, kingDest: 58, rookDest: 59,
			mustBeEmpty: []Position{57, 58, 59}, mustBeSafe: []Position{59, 58}},
	},
	Black: {
		{kind: KingSideCastleMove, king: 4, rook: 7, kingDest: 6, rookDest: 5,
			mustBeEmpty: []Position{5, 6}, mustBeSafe: []Position{5, 6}},
		{kind: QueenSideCastleMove, king: 4, rook: 0, kingDest: 2, rookDest: 3,
			mustBeEmpty: []Position{1, 2, 3}, mustBeSafe: []Position{3, 2}},
	},
}

// calculateKingCastles returns the castles colour c may make on b. It relies
// on candidates, king and inCheck already being set for both sides.
func (b *Board) calculateKingCastles(c Colour) []Move {
	s := &b.sides[c]
	if s.king.Moved || s.inCheck {
		return nil
	}

	var attacked [BoardSize]bool
	b.markAttacks(c.Opposite(), &attacked)

	var castles []Move
	for _, r := range castleRules[c] {
		if s.king.Position != r.king {
			continue
		}
		sq := b.squares[r.rook]
		if !sq.occupied || !sq.piece.IsRook() || sq.piece.Colour != c || sq.piece.Moved {
			continue
		}
		if !b.allEmpty(r.mustBeEmpty) || anyMarked(&attacked, r.mustBeSafe) {
			continue
		}
		castles = append(castles, Move{
			Kind:            r.kind,
			Piece:           s.king,
			Destination:     r.kingDest,
			Rook:            sq.piece,
			RookDestination: r.rookDest,
		})
	}
	return castles
}

// markAttacks marks every square colour c attacks. Pawn pushes do not attack;
// pawns mark both diagonals whether or not anything stands there.
func (b *Board) markAttacks(c Colour, attacked *[BoardSize]bool) {
	for _, m := range b.sides[c].candidates {
		if m.Piece.Kind == Pawn {
			continue
		}
		attacked[m.Destination] = true
	}
	for _, p := range b.sides[c].pieces {
		if p.Kind != Pawn {
			continue
		}
		for _, v := range []int{7, 9} {
			if pawnDiagonalWraps(p.Position, p.Colour, v) {
				continue
			}
			if dest := p.Position + Position(v*p.Colour.Direction()); dest.Valid() {
				attacked[dest] = true
			}
		}
	}
}

func (b *Board) allEmpty(positions []Position) bool {
	for _, p := range positions {
		if b.squares[p].occupied {
			return false
		}
	}
	return true
}

func anyMarked(attacked *[BoardSize]bool, positions []Position) bool {
	for _, p := range positions {
		if attacked[p] {
			return true
		}
	}
	return false
}

// HasCastlingRights reports whether colour c still has the king and the rook
// for the given castle unmoved on their home squares. It ignores check,
// blocking pieces and attacked squares.
func (b *Board) HasCastlingRights(c Colour, kind MoveKind) bool {
	for _, r := range castleRules[c] {
		if r.kind != kind {
			continue
		}
		k, rk := b.squares[r.king], b.squares[r.rook]
		return k.occupied && k.piece.IsKing() && k.piece.Colour == c && !k.piece.Moved &&
			rk.occupied && rk.piece.IsRook() && rk.piece.Colour == c && !rk.piece.Moved
	}
	return false
}
