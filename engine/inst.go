package engine

import "fmt"

// BinOp is the opcode of a binary arithmetic instruction.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
)

// Name renders the opcode the way assembly source and the timing log spell
// it.
func (op BinOp) Name() string {
	switch op {
	case Add:
		return "ADD"
	case Sub:
		return "SUB"
	case Mul:
		return "MUL"
	case Div:
		return "DIV"
	default:
		return "???"
	}
}

// delay is the number of cycles the op spends with remain.started &&
// remain.cycles > 0, i.e. the execution latency from §4.1.
func (op BinOp) delay() uint8 {
	switch op {
	case Add, Sub:
		return 3
	case Mul:
		return 12
	case Div:
		return 40
	default:
		panic("engine: unknown BinOp")
	}
}

// eval computes the result of the op over two 32-bit unsigned bit patterns.
// ADD/SUB/MUL wrap per normal Go unsigned-integer semantics. DIV treats both
// operands as int32: divide-by-zero yields 0 (not the dividend, not a trap),
// and INT_MIN / -1 wraps to INT_MIN rather than panicking.
func (op BinOp) eval(l, r uint32) uint32 {
	switch op {
	case Add:
		return l + r
	case Sub:
		return l - r
	case Mul:
		return l * r
	case Div:
		li, ri := int32(l), int32(r)
		if ri == 0 {
			return 0
		}
		if li == -2147483648 && ri == -1 {
			return uint32(li) // wraps back to INT_MIN
		}
		return uint32(li / ri)
	default:
		panic("engine: unknown BinOp")
	}
}

// InstKind distinguishes the three instruction shapes the language supports.
type InstKind int

const (
	KindBin InstKind = iota
	KindLoad
	KindJump
)

// Inst is a decoded instruction. Which fields are meaningful depends on
// Kind: Bin uses Op/Dst/SrcL/SrcR, Load uses Dst/Imm, Jump uses Cmp/Cond/Off.
type Inst struct {
	Kind InstKind

	Op         BinOp
	Dst        int
	SrcL, SrcR int

	Imm uint32

	Cmp  uint32
	Cond int
	Off  uint32
}

// BinInst builds a BIN instruction.
func BinInst(op BinOp, dst, srcL, srcR int) Inst {
	return Inst{Kind: KindBin, Op: op, Dst: dst, SrcL: srcL, SrcR: srcR}
}

// LoadInst builds an LD instruction.
func LoadInst(dst int, imm uint32) Inst {
	return Inst{Kind: KindLoad, Dst: dst, Imm: imm}
}

// JumpInst builds a JUMP instruction. off is the raw, unadjusted branch
// offset as written in source; the issue phase applies the -1 convention.
func JumpInst(cmp uint32, cond int, off uint32) Inst {
	return Inst{Kind: KindJump, Cmp: cmp, Cond: cond, Off: off}
}

func (i Inst) String() string {
	switch i.Kind {
	case KindLoad:
		return fmt.Sprintf("LD %d,%d", i.Dst, i.Imm)
	case KindJump:
		return fmt.Sprintf("JUMP %d,%d,%d", i.Cmp, i.Cond, i.Off)
	default:
		return fmt.Sprintf("%s %d,%d,%d", i.Op.Name(), i.Dst, i.SrcL, i.SrcR)
	}
}
