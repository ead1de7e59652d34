package engine

import "strconv"

// RegSnapshot renders one register-file slot: either a concrete value, or
// the name of the station tag that will eventually produce it.
type RegSnapshot struct {
	Waiting bool
	Value   uint32
	Tag     string
}

// OperandSnapshot renders one reservation-station operand slot.
type OperandSnapshot struct {
	Waiting bool
	Value   uint32
	Tag     string
}

// StationSnapshot renders one reservation station (adder or multiplier).
type StationSnapshot struct {
	Name      string
	Busy      bool
	Op        string // "ADD"/"SUB"/"MUL"/"DIV"/"JUMP"
	Remain    string // "" if not yet executing, else the cycle count
	Vj, Vk    OperandSnapshot
	IssueTime uint32
}

// LoadBufferSnapshot renders one load buffer.
type LoadBufferSnapshot struct {
	Name      string
	Busy      bool
	Remain    string
	Imm       uint32
	IssueTime uint32
}

// TimingSnapshot is the (issue-cycle, execute-complete-cycle) pair recorded
// for one instruction. A zero field means that phase hasn't happened yet.
type TimingSnapshot struct {
	Issue    uint32
	Complete uint32
}

// Snapshot is an immutable, plain-data view of the simulator's entire
// state, meant for the presentation layer (TUI, JSON, or anything else) to
// render without reaching into engine internals.
type Snapshot struct {
	Clock uint32
	PC    uint32
	Done  bool

	Regs [numRegs]RegSnapshot
	RS   [numRS]StationSnapshot
	LB   [numLB]LoadBufferSnapshot

	Insts  []string
	Timing []TimingSnapshot
}

// Snapshot captures the current simulator state. Calling it repeatedly
// without stepping returns equal values.
func (s *Simulator) Snapshot() Snapshot {
	var out Snapshot
	out.Clock = s.clk
	out.PC = s.pc
	out.Done = s.Done()

	for i, r := range s.regs {
		out.Regs[i] = renderReg(r)
	}
	for i, rs := range s.rs {
		out.RS[i] = renderStation(i, rs)
	}
	for i, lb := range s.lb {
		out.LB[i] = renderLoadBuffer(i, lb)
	}

	out.Insts = make([]string, len(s.insts))
	for i, inst := range s.insts {
		out.Insts[i] = inst.String()
	}
	out.Timing = make([]TimingSnapshot, len(s.times))
	for i, t := range s.times {
		out.Timing[i] = TimingSnapshot{Issue: t.issue, Complete: t.complete}
	}

	return out
}

func renderReg(r slot) RegSnapshot {
	if r.waiting {
		return RegSnapshot{Waiting: true, Tag: TagName(r.tag)}
	}
	return RegSnapshot{Value: r.value}
}

func renderOperand(o slot) OperandSnapshot {
	if o.waiting {
		return OperandSnapshot{Waiting: true, Tag: TagName(o.tag)}
	}
	return OperandSnapshot{Value: o.value}
}

func renderRemain(r remain) string {
	if !r.started {
		return ""
	}
	return strconv.Itoa(int(r.cycles))
}

func renderStation(idx int, rs station) StationSnapshot {
	op := "JUMP"
	if !rs.op.isJump {
		op = rs.op.bin.Name()
	}
	return StationSnapshot{
		Name:      TagName(idx),
		Busy:      rs.busy,
		Op:        op,
		Remain:    renderRemain(rs.remain),
		Vj:        renderOperand(rs.qv[0]),
		Vk:        renderOperand(rs.qv[1]),
		IssueTime: rs.issueTime,
	}
}

func renderLoadBuffer(idx int, lb loadBuffer) LoadBufferSnapshot {
	return LoadBufferSnapshot{
		Name:      TagName(idx + numRS),
		Busy:      lb.busy,
		Remain:    renderRemain(lb.remain),
		Imm:       lb.imm,
		IssueTime: lb.issueTime,
	}
}
