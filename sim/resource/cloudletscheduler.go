package resource

// CloudletSchedulerSpaceShared is the VM-level space-shared scheduler of
// §4.2: cloudlets in `exec` each get a dedicated PE share; cloudlets that
// don't fit wait in FIFO order.
//
// Invariant: sum of pes(job) for job in exec <= currentCPUs.
type CloudletSchedulerSpaceShared struct {
	exec     []*ResCloudlet
	waiting  []*ResCloudlet
	paused   []*ResCloudlet
	finished []*ResCloudlet

	usedPEs     int
	currentCPUs int

	previousTime    float64
	currentMIPShare []float64
}

// NewCloudletSchedulerSpaceShared creates an empty space-shared scheduler.
func NewCloudletSchedulerSpaceShared() *CloudletSchedulerSpaceShared {
	return &CloudletSchedulerSpaceShared{}
}

func averageCapacity(mipsShare []float64) (capacity float64, cpus int) {
	for _, mips := range mipsShare {
		capacity += mips
		if mips > 0 {
			cpus++
		}
	}
	if cpus > 0 {
		capacity /= float64(cpus)
	}
	return capacity, cpus
}

// Submit admits job to the scheduler. If enough free PEs are available it
// enters INEXEC immediately with an amortized file-transfer cost folded
// into its length; otherwise it is enqueued QUEUED and Submit returns 0
// (§4.2 cloudlet_submit).
func (s *CloudletSchedulerSpaceShared) Submit(job Cloudlet, arrivalTime, fileTransferTime float64) float64 {
	rcl := NewResCloudlet(job, arrivalTime)

	if s.currentCPUs-s.usedPEs >= job.NumPEs() {
		rcl.SetStatus(StatusInExec, arrivalTime)
		for i := 0; i < job.NumPEs(); i++ {
			rcl.PEIDs = append(rcl.PEIDs, i)
		}
		s.exec = append(s.exec, rcl)
		s.usedPEs += job.NumPEs()
	} else {
		rcl.Status = StatusQueued
		s.waiting = append(s.waiting, rcl)
		return 0
	}

	capacity, cpus := averageCapacity(s.currentMIPShare)
	s.currentCPUs = cpus
	if capacity == 0 {
		return 0
	}

	extra := capacity * fileTransferTime
	job.SetLength(job.Length() + extra)

	if rcl.RemainingInstructions() == 0 {
		rcl.SetStatus(StatusSuccess, arrivalTime)
		rcl.FinishTime = arrivalTime
		s.exec = s.exec[:len(s.exec)-1]
		s.finished = append(s.finished, rcl)
		s.usedPEs -= job.NumPEs()
		return 0
	}

	return job.Length() / capacity
}

// UpdateVMProcessing advances every executing cloudlet's work-done-so-far
// and admits waiting cloudlets into freed slots, per the 5-step algorithm
// of §4.2. minTimeBetweenEvents is the floor applied to estimated
// completion times.
func (s *CloudletSchedulerSpaceShared) UpdateVMProcessing(now float64, mipsShare []float64, minTimeBetweenEvents float64) float64 {
	s.currentMIPShare = mipsShare
	deltaT := now - s.previousTime

	capacity, cpus := averageCapacity(mipsShare)
	s.currentCPUs = cpus

	for _, rcl := range s.exec {
		increment := int64(capacity * deltaT * float64(rcl.Job.NumPEs()) * MILLION)
		rcl.FinishedSoFar += float64(increment)
	}

	if len(s.exec) == 0 && len(s.waiting) == 0 {
		s.previousTime = now
		return 0
	}

	finishedCount := 0
	remainingExec := s.exec[:0:0]
	for _, rcl := range s.exec {
		if rcl.RemainingInstructions() == 0 {
			rcl.SetStatus(StatusSuccess, now)
			rcl.FinishTime = now
			s.finished = append(s.finished, rcl)
			s.usedPEs -= rcl.Job.NumPEs()
			finishedCount++
		} else {
			remainingExec = append(remainingExec, rcl)
		}
	}
	s.exec = remainingExec

	for i := 0; i < finishedCount && len(s.waiting) > 0; i++ {
		var promoted = -1
		for idx, rcl := range s.waiting {
			if s.currentCPUs-s.usedPEs >= rcl.Job.NumPEs() {
				promoted = idx
				break
			}
		}
		if promoted < 0 {
			break
		}
		rcl := s.waiting[promoted]
		s.waiting = append(s.waiting[:promoted], s.waiting[promoted+1:]...)
		rcl.SetStatus(StatusInExec, now)
		s.usedPEs += rcl.Job.NumPEs()
		s.exec = append(s.exec, rcl)
	}

	nextEvent := -1.0
	for _, rcl := range s.exec {
		est := rcl.EstimatedFinish(now, capacity)
		est = clampFloor(est, now+minTimeBetweenEvents)
		if nextEvent < 0 || est < nextEvent {
			nextEvent = est
		}
	}
	s.previousTime = now
	if nextEvent < 0 {
		return 0
	}
	return nextEvent
}

func clampFloor(v, floor float64) float64 {
	if v-floor < 0 {
		return floor
	}
	return v
}

// Pause moves jobID from exec or waiting into the paused list. Returns
// false if not found in either.
func (s *CloudletSchedulerSpaceShared) Pause(jobID string, now float64) bool {
	for i, rcl := range s.exec {
		if rcl.Job.CloudletID() == jobID {
			s.exec = append(s.exec[:i], s.exec[i+1:]...)
			s.usedPEs -= rcl.Job.NumPEs()
			if rcl.RemainingInstructions() == 0 {
				rcl.SetStatus(StatusSuccess, now)
				rcl.FinishTime = now
				s.finished = append(s.finished, rcl)
			} else {
				rcl.SetStatus(StatusPaused, now)
				s.paused = append(s.paused, rcl)
			}
			return true
		}
	}
	for i, rcl := range s.waiting {
		if rcl.Job.CloudletID() == jobID {
			s.waiting = append(s.waiting[:i], s.waiting[i+1:]...)
			rcl.SetStatus(StatusPaused, now)
			s.paused = append(s.paused, rcl)
			return true
		}
	}
	return false
}

// Resume moves jobID from paused back into exec (if PEs are free) or
// waiting otherwise, returning the estimated completion time (0 if queued).
func (s *CloudletSchedulerSpaceShared) Resume(jobID string, now float64) float64 {
	idx := -1
	for i, rcl := range s.paused {
		if rcl.Job.CloudletID() == jobID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0
	}
	rcl := s.paused[idx]
	s.paused = append(s.paused[:idx], s.paused[idx+1:]...)

	if s.currentCPUs-s.usedPEs >= rcl.Job.NumPEs() {
		rcl.SetStatus(StatusResumed, now)
		rcl.SetStatus(StatusInExec, now)
		s.usedPEs += rcl.Job.NumPEs()
		s.exec = append(s.exec, rcl)
		capacity, cpus := averageCapacity(s.currentMIPShare)
		s.currentCPUs = cpus
		return rcl.EstimatedFinish(now, capacity)
	}
	rcl.Status = StatusQueued
	s.waiting = append(s.waiting, rcl)
	return 0
}

// Cancel removes jobID from whichever list holds it, marking it CANCELED
// unless it had already finished. Returns the ResCloudlet, or nil if not
// found (§7 "Cloudlet already finished on submit").
func (s *CloudletSchedulerSpaceShared) Cancel(jobID string, now float64) *ResCloudlet {
	for i, rcl := range s.finished {
		if rcl.Job.CloudletID() == jobID {
			s.finished = append(s.finished[:i], s.finished[i+1:]...)
			return rcl
		}
	}
	for i, rcl := range s.exec {
		if rcl.Job.CloudletID() == jobID {
			s.exec = append(s.exec[:i], s.exec[i+1:]...)
			s.usedPEs -= rcl.Job.NumPEs()
			if rcl.RemainingInstructions() == 0 {
				rcl.SetStatus(StatusSuccess, now)
				rcl.FinishTime = now
			} else {
				rcl.SetStatus(StatusCanceled, now)
			}
			return rcl
		}
	}
	for i, rcl := range s.paused {
		if rcl.Job.CloudletID() == jobID {
			rcl.SetStatus(StatusCanceled, now)
			s.paused = append(s.paused[:i], s.paused[i+1:]...)
			return rcl
		}
	}
	for i, rcl := range s.waiting {
		if rcl.Job.CloudletID() == jobID {
			rcl.SetStatus(StatusCanceled, now)
			s.waiting = append(s.waiting[:i], s.waiting[i+1:]...)
			return rcl
		}
	}
	return nil
}

// NextFinished pops the oldest finished cloudlet, or nil if none.
func (s *CloudletSchedulerSpaceShared) NextFinished() *ResCloudlet {
	if len(s.finished) == 0 {
		return nil
	}
	rcl := s.finished[0]
	s.finished = s.finished[1:]
	return rcl
}

// HasFinished reports whether any cloudlet is waiting to be drained.
func (s *CloudletSchedulerSpaceShared) HasFinished() bool { return len(s.finished) > 0 }

// ExecCount returns the number of cloudlets currently executing.
func (s *CloudletSchedulerSpaceShared) ExecCount() int { return len(s.exec) }

// WaitingCount returns the number of cloudlets waiting for free PEs.
func (s *CloudletSchedulerSpaceShared) WaitingCount() int { return len(s.waiting) }

// UsedPEs returns the number of PEs currently claimed by executing cloudlets.
func (s *CloudletSchedulerSpaceShared) UsedPEs() int { return s.usedPEs }

// Status returns the current status of jobID across all lists, and
// whether it was found at all.
func (s *CloudletSchedulerSpaceShared) Status(jobID string) (CloudletStatus, bool) {
	for _, rcl := range s.exec {
		if rcl.Job.CloudletID() == jobID {
			return rcl.Status, true
		}
	}
	for _, rcl := range s.paused {
		if rcl.Job.CloudletID() == jobID {
			return rcl.Status, true
		}
	}
	for _, rcl := range s.waiting {
		if rcl.Job.CloudletID() == jobID {
			return rcl.Status, true
		}
	}
	for _, rcl := range s.finished {
		if rcl.Job.CloudletID() == jobID {
			return rcl.Status, true
		}
	}
	return 0, false
}

// TotalUtilizationOfCPU returns the sum of PEs held by executing cloudlets.
func (s *CloudletSchedulerSpaceShared) TotalUtilizationOfCPU() int {
	total := 0
	for _, rcl := range s.exec {
		total += rcl.Job.NumPEs()
	}
	return total
}
