package engine

// writeBack retires every station/buffer whose execution finished last
// cycle, broadcasting results over the common data bus. Order is fixed:
// adders by index, then multipliers by index, then load buffers by index.
func (s *Simulator) writeBack() {
	for i := 0; i < numRS; i++ {
		rs := &s.rs[i]
		if !rs.busy || !rs.remain.started || rs.remain.cycles != 0 {
			continue
		}
		rs.busy = false
		if rs.op.isJump {
			if rs.qv[0] == rs.qv[1] {
				s.pc += rs.op.jumpOff
			}
			continue
		}
		v := rs.op.bin.eval(rs.qv[0].value, rs.qv[1].value)
		s.broadcast(i, v)
	}

	for i := range s.lb {
		lb := &s.lb[i]
		if !lb.busy || !lb.remain.started || lb.remain.cycles != 0 {
			continue
		}
		lb.busy = false
		s.broadcast(i+numRS, lb.imm)
	}
}

// broadcast drives the CDB with (tag, v): every operand slot waiting on tag
// becomes Value(v), and any register slot naming tag does too.
func (s *Simulator) broadcast(tag int, v uint32) {
	for i := range s.rs {
		if s.rs[i].qv[0].isWaitingOn(tag) {
			s.rs[i].qv[0] = valueOf(v)
		}
		if s.rs[i].qv[1].isWaitingOn(tag) {
			s.rs[i].qv[1] = valueOf(v)
		}
	}
	for i := range s.regs {
		if s.regs[i].isWaitingOn(tag) {
			s.regs[i] = valueOf(v)
		}
	}
}
