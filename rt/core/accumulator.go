package core

// Accumulator counts the samples averaged into the current image. The value
// Begin returns is what the kernel sees as accumulated_frames: the number of
// samples already in the history, so the new sample weighs 1/(n+1) and n == 0
// discards the history.
type Accumulator struct {
	Frames uint32
	resets uint64
}

// Begin returns the count for the frame about to be encoded. A disturbed
// frame restarts the average. Nothing is counted until Commit, so a frame
// that never reaches the GPU repeats the same count.
func (a *Accumulator) Begin(disturbed bool) uint32 {
	if disturbed {
		a.Reset()
	}
	return a.Frames
}

// Commit records that the frame begun last was submitted.
func (a *Accumulator) Commit() {
	if a.Frames < ^uint32(0) {
		a.Frames++
	}
}

// Advance is Begin followed by Commit.
func (a *Accumulator) Advance(disturbed bool) uint32 {
	n := a.Begin(disturbed)
	a.Commit()
	return n
}

// Reset makes the next Begin return 0.
func (a *Accumulator) Reset() {
	a.Frames = 0
	a.resets++
}

// Resets reports how many times the average was restarted.
func (a *Accumulator) Resets() uint64 {
	return a.resets
}
