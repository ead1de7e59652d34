// Package engine implements the micro-architectural core of a cycle-accurate
// Tomasulo simulator: register renaming, reservation stations, load buffers,
// function-unit arbitration, and the common data bus. It has no notion of
// assembly text or presentation; it consumes an already-decoded instruction
// list and advances a clock one tick at a time.
package engine

const (
	numRegs = 32

	numAdderRS = 6
	numMulRS   = 3
	numRS      = numAdderRS + numMulRS
	numLB      = 3
	numTags    = numRS + numLB

	adderCap = 3
	mulCap   = 2
	loadCap  = 2
)

// tagNames is the fixed rendering table for station tags, shared by the
// snapshot and the presentation layer.
var tagNames = [numTags]string{
	"Ars1", "Ars2", "Ars3", "Ars4", "Ars5", "Ars6",
	"Mrs1", "Mrs2", "Mrs3",
	"LB1", "LB2", "LB3",
}

// TagName renders a station tag (0..11) using the fixed naming table.
func TagName(tag int) string { return tagNames[tag] }

// slot is the sum type `Value(u32) | Tag(tag)` used for both register-file
// entries and reservation-station operand slots. A zero slot is Value(0),
// matching the register file's initial state.
type slot struct {
	waiting bool
	value   uint32
	tag     int
}

func valueOf(v uint32) slot   { return slot{value: v} }
func waitingOn(tag int) slot  { return slot{waiting: true, tag: tag} }
func (s slot) isWaitingOn(tag int) bool { return s.waiting && s.tag == tag }

// remain is `Option<u8>`: NotStarted means no function unit has been granted
// yet; Started tracks the countdown, reaching zero the cycle execution
// completes.
type remain struct {
	started bool
	cycles  uint8
}

// timing is the (issue-cycle, execute-complete-cycle) pair recorded per
// instruction, consumed by the presentation layer.
type timing struct {
	issue    uint32
	complete uint32
}

type stationOp struct {
	isJump  bool
	bin     BinOp
	jumpOff uint32 // pre-adjusted (off-1); see issue.go
}

// station is a reservation station entry, used for both the adder and
// multiplier partitions (indices 0..5 adder, 6..8 multiplier).
type station struct {
	busy      bool
	op        stationOp
	qv        [2]slot
	issueTime uint32
	remain    remain
	instIdx   int
}

// loadBuffer holds a pending immediate load.
type loadBuffer struct {
	busy      bool
	imm       uint32
	issueTime uint32
	remain    remain
	instIdx   int
}

// Simulator is the Tomasulo core. It is a value-owned object: no global
// state, no goroutines, no channels. Step and RunN run to completion within
// a tick; there are no suspension points.
type Simulator struct {
	insts []Inst
	times []timing

	pc  uint32
	clk uint32

	regs [numRegs]slot
	rs   [numRS]station
	lb   [numLB]loadBuffer
}

// New constructs a Simulator from an already-decoded instruction list.
// Construction never fails: validating assembly text is asm.Parse's job.
func New(insts []Inst) *Simulator {
	s := &Simulator{
		insts: insts,
		times: make([]timing, len(insts)),
	}
	return s
}

// Reset returns the simulator to its initial state (PC, clock, registers,
// stations, buffers, timing log) while keeping the loaded program.
func (s *Simulator) Reset() {
	insts := s.insts
	*s = Simulator{
		insts: insts,
		times: make([]timing, len(insts)),
	}
}

// Done reports whether the program has been fully retired: PC past the end
// of the program, and no station or load buffer still busy.
func (s *Simulator) Done() bool {
	if int(s.pc) < len(s.insts) {
		return false
	}
	for _, r := range s.rs {
		if r.busy {
			return false
		}
	}
	for _, l := range s.lb {
		if l.busy {
			return false
		}
	}
	return true
}

// Step advances the clock by one tick, running write-back, issue, and
// execute in that order.
func (s *Simulator) Step() {
	s.clk++
	s.writeBack()
	s.issue()
	s.execute()
}

// RunN advances the clock up to n ticks, stopping early once Done holds.
func (s *Simulator) RunN(n uint32) {
	for i := uint32(0); i < n; i++ {
		s.Step()
		if s.Done() {
			return
		}
	}
}

// Clock reports the current tick count.
func (s *Simulator) Clock() uint32 { return s.clk }

// PC reports the current program counter.
func (s *Simulator) PC() uint32 { return s.pc }
