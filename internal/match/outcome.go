package match

import (
	"fmt"

	"chessmatch/internal/chess"
)

type OutcomeKind int8

const (
	Applied OutcomeKind = iota
	PromotionRequired
	Illegal
	Rejected
)

var outcomeKindNames = [...]string{"applied", "promotion-required", "illegal", "rejected"}

func (k OutcomeKind) String() string {
	if k < 0 || int(k) >= len(outcomeKindNames) {
		return "unknown"
	}
	return outcomeKindNames[k]
}

// Reason 说明 Rejected 的原因
type Reason string

const (
	NoReason             Reason = ""
	ReasonNotYourTurn    Reason = "not-your-turn"
	ReasonSearching      Reason = "search-in-progress"
	ReasonGameOver       Reason = "game-over"
	ReasonPromotion      Reason = "promotion-pending"
	ReasonInvalidSquare  Reason = "invalid-square"
	ReasonNoPromotion    Reason = "no-promotion-pending"
	ReasonInvalidPromote Reason = "invalid-promotion"
)

// Outcome 所有对外操作的结果。非法输入和非法着法都用它表达，不返回 error。
type Outcome struct {
	Kind     OutcomeKind
	Reason   Reason
	Move     chess.Move   // Applied 时是实际走的着法；PromotionRequired 时是待定的那步
	Notation string       // Applied 时的记谱
	Status   chess.Status // 操作之后的局面状态
}

func (o Outcome) OK() bool { return o.Kind == Applied }

func (o Outcome) String() string {
	switch o.Kind {
	case Applied:
		return fmt.Sprintf("applied %s (%s)", o.Notation, o.Status)
	case Rejected:
		return fmt.Sprintf("rejected: %s", o.Reason)
	}
	return fmt.Sprintf("%s %v", o.Kind, o.Move)
}

func rejected(r Reason, st chess.Status) Outcome {
	return Outcome{Kind: Rejected, Reason: r, Move: chess.NullMove, Status: st}
}
