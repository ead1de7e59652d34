package engine

// issue attempts to dispatch the instruction at pc into a free station. It
// is a no-op (pc unchanged) if a JUMP is still in flight, or if no suitable
// slot is free this cycle -- the instruction is simply retried next tick.
func (s *Simulator) issue() {
	for i := range s.rs {
		if s.rs[i].busy && s.rs[i].op.isJump {
			return
		}
	}

	if int(s.pc) >= len(s.insts) {
		return
	}
	inst := s.insts[s.pc]

	switch inst.Kind {
	case KindBin:
		beg, end := 0, numAdderRS
		if inst.Op == Mul || inst.Op == Div {
			beg, end = numAdderRS, numRS
		}
		for idx := beg; idx < end; idx++ {
			rs := &s.rs[idx]
			if rs.busy {
				continue
			}
			rs.busy = true
			rs.remain = remain{}
			rs.issueTime = s.clk
			rs.instIdx = int(s.pc)
			rs.op = stationOp{bin: inst.Op}
			rs.qv[0] = s.regs[inst.SrcL]
			rs.qv[1] = s.regs[inst.SrcR]
			s.regs[inst.Dst] = waitingOn(idx)
			s.recordIssue(int(s.pc))
			s.pc++
			return
		}

	case KindLoad:
		for idx := range s.lb {
			lb := &s.lb[idx]
			if lb.busy {
				continue
			}
			lb.busy = true
			lb.remain = remain{}
			lb.issueTime = s.clk
			lb.instIdx = int(s.pc)
			lb.imm = inst.Imm
			s.regs[inst.Dst] = waitingOn(idx + numRS)
			s.recordIssue(int(s.pc))
			s.pc++
			return
		}

	case KindJump:
		for idx := 0; idx < numAdderRS; idx++ {
			rs := &s.rs[idx]
			if rs.busy {
				continue
			}
			rs.busy = true
			rs.remain = remain{}
			rs.issueTime = s.clk
			rs.instIdx = int(s.pc)
			// PC has already been (about to be) advanced below, so the
			// offset is pre-decremented by 1 to compensate.
			rs.op = stationOp{isJump: true, jumpOff: inst.Off - 1}
			rs.qv[0] = s.regs[inst.Cond]
			rs.qv[1] = valueOf(inst.Cmp)
			s.recordIssue(int(s.pc))
			s.pc++
			return
		}
	}
}

// recordIssue sets the issue-cycle in the timing log, but only the first
// time instIdx is issued -- preserves the original issue cycle even if an
// instruction were ever re-issued.
func (s *Simulator) recordIssue(instIdx int) {
	if s.times[instIdx].issue == 0 {
		s.times[instIdx].issue = s.clk
	}
}
