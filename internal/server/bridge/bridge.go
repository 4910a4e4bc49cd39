//go:build cgo

package main

/*
#include <stdbool.h>
#include <stdint.h>
*/
import "C"
import (
	"time"
	"unsafe"

	"go.uber.org/zap"

	"chessmatch/internal/chess"
)

//export IsLegal
func IsLegal(fen, uci *C.char) C.bool {
	return C.bool(isLegalUCI(C.GoString(fen), C.GoString(uci)))
}

// GetLegalBitmask maskOut 至少 64 字节；from<0 标出可动的子。返回标记数，FEN 错误返回 -1
//
//export GetLegalBitmask
func GetLegalBitmask(fen *C.char, from C.int, maskOut *C.int8_t) C.int {
	sq := chess.Square(from)
	if from < 0 || from >= chess.NumSquares {
		sq = chess.NoSquare
	}
	mask, count, err := legalMask(C.GoString(fen), sq)
	if err != nil {
		zap.L().Warn("GetLegalBitmask", zap.Error(err))
		return -1
	}
	out := unsafe.Slice((*int8)(unsafe.Pointer(maskOut)), chess.NumSquares)
	copy(out, mask[:])
	return C.int(count)
}

//export CheckWinner
func CheckWinner(fen *C.char) C.int8_t {
	return C.int8_t(winnerCode(C.GoString(fen)))
}

// BestMove 把 UCI 着法写进 out（带结尾 0），返回写入长度，出错返回 -1
//
//export BestMove
func BestMove(fen *C.char, depth, timeMs C.int, out *C.char, outLen C.int) C.int {
	uci, err := bestMoveUCI(C.GoString(fen), int(depth), time.Duration(timeMs)*time.Millisecond)
	if err != nil {
		zap.L().Warn("BestMove", zap.Error(err))
		return -1
	}
	if int(outLen) < len(uci)+1 {
		return -1
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(out)), int(outLen))
	n := copy(buf, uci)
	buf[n] = 0
	return C.int(n)
}
