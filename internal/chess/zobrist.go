package chess

// 固定种子，哈希在不同进程间一致（测试里会比对具体局面的哈希）
const zobristSeed uint64 = 0x9E3779B97F4A7C15

// splitmix64
type keyStream struct{ state uint64 }

func (s *keyStream) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// 下标：[颜色][PieceType][格子]，PieceType 0 不用
type zobristKeys struct {
	pieces    [2][King + 1][NumSquares]uint64
	castling  [AllCastling + 1]uint64
	enPassant [Cols]uint64
	blackMove uint64
}

func newZobristKeys(seed uint64) *zobristKeys {
	ks := &keyStream{state: seed}
	z := &zobristKeys{}
	for c := range z.pieces {
		for pt := Pawn; pt <= King; pt++ {
			for sq := range z.pieces[c][pt] {
				z.pieces[c][pt][sq] = ks.next()
			}
		}
	}
	for i := range z.castling {
		z.castling[i] = ks.next()
	}
	for i := range z.enPassant {
		z.enPassant[i] = ks.next()
	}
	z.blackMove = ks.next()
	return z
}

var zobrist = newZobristKeys(zobristSeed)

func (z *zobristKeys) piece(pc Piece, sq Square) uint64 {
	c := pc.Color()
	if c == NoColor || !sq.Valid() {
		return 0
	}
	return z.pieces[c][pc.Type()][sq]
}

func (z *zobristKeys) rights(cr CastlingRights) uint64 {
	return z.castling[cr&AllCastling]
}

// 过路兵只按列区分
func (z *zobristKeys) epFile(sq Square) uint64 {
	if !sq.Valid() {
		return 0
	}
	return z.enPassant[sq.Col()]
}

// CalculateHash 从头算整个局面的哈希；ApplyMove 里是增量更新
func (p *Position) CalculateHash() uint64 {
	var h uint64
	for sq, pc := range p.Board.Squares {
		h ^= zobrist.piece(pc, Square(sq))
	}
	h ^= zobrist.rights(p.Castling) ^ zobrist.epFile(p.EnPassant)
	if p.SideToMove == Black {
		h ^= zobrist.blackMove
	}
	return h
}

// 手工拼出来的 Position 没有哈希，用到时补上
func (p *Position) hashOrCompute() uint64 {
	if p.Hash == 0 {
		p.Hash = p.CalculateHash()
	}
	return p.Hash
}
