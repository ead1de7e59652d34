package engine

// execute advances every busy station's and load buffer's execution timer,
// and grants function units to newly-ready stations. The two reservation
// partitions (adder, multiplier) and the load-buffer partition arbitrate
// independently.
func (s *Simulator) execute() {
	s.executeRS(0, numAdderRS, adderCap)
	s.executeRS(numAdderRS, numRS, mulCap)
	s.executeLB()
}

func (s *Simulator) executeRS(beg, end, capacity int) {
	for i := beg; i < end; i++ {
		rs := &s.rs[i]
		if !rs.busy {
			continue
		}
		if rs.remain.started {
			s.tickDown(&rs.remain, rs.instIdx)
			continue
		}
		if rs.qv[0].waiting || rs.qv[1].waiting {
			continue
		}
		if s.grantFU(beg, end, capacity, i) {
			latency := uint8(1)
			if !rs.op.isJump {
				latency = rs.op.bin.delay()
			}
			rs.remain = remain{started: true, cycles: latency}
		}
	}
}

func (s *Simulator) executeLB() {
	for i := range s.lb {
		lb := &s.lb[i]
		if !lb.busy {
			continue
		}
		if lb.remain.started {
			s.tickDown(&lb.remain, lb.instIdx)
			continue
		}
		if s.grantLoadFU(i) {
			lb.remain = remain{started: true, cycles: 3}
		}
	}
}

// tickDown decrements an in-flight station's timer, recording the
// execute-complete cycle in the timing log the moment it reaches zero.
func (s *Simulator) tickDown(r *remain, instIdx int) {
	r.cycles--
	if r.cycles == 0 {
		if s.times[instIdx].complete == 0 {
			s.times[instIdx].complete = s.clk
		}
	}
}

// grantFU decides, without sorting, whether station i (within [beg,end))
// wins a function unit this cycle: it counts rivals that already hold a FU
// or are also ready with a strictly older issue time, and grants one iff
// that count is under the partition's capacity.
func (s *Simulator) grantFU(beg, end, capacity, i int) bool {
	issueTime := s.rs[i].issueTime
	count := 0
	for j := beg; j < end; j++ {
		rival := &s.rs[j]
		if !rival.busy {
			continue
		}
		hasFU := rival.remain.started
		readyOlder := !rival.remain.started &&
			!rival.qv[0].waiting && !rival.qv[1].waiting &&
			rival.issueTime < issueTime
		if hasFU || readyOlder {
			count++
		}
	}
	return count < capacity
}

func (s *Simulator) grantLoadFU(i int) bool {
	issueTime := s.lb[i].issueTime
	count := 0
	for j := range s.lb {
		rival := &s.lb[j]
		if !rival.busy {
			continue
		}
		hasFU := rival.remain.started
		readyOlder := !rival.remain.started && rival.issueTime < issueTime
		if hasFU || readyOlder {
			count++
		}
	}
	return count < loadCap
}
