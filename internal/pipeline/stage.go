package pipeline

// StageResult is the tagged outcome of one stage execution. A degraded stage
// has still written a placeholder into every field it owns; the reason is
// recorded in the claim trace.
type StageResult struct {
	Degraded bool
	Reason   string
}

// Ok marks a stage as completed normally
func Ok() StageResult {
	return StageResult{}
}

// Degraded marks a stage as completed with a placeholder result
func Degraded(reason string) StageResult {
	return StageResult{Degraded: true, Reason: reason}
}

// Stage is one unit of the pipeline. Reads and Writes declare the
// ClaimRecord fields the stage touches; a stage may read only fields
// finalized by earlier stages plus original intake fields, and writes a
// disjoint set exactly once. The declarations make the sequential dependency
// chain explicit so independent stages could later run concurrently without
// changing the contract.
type Stage struct {
	Name   string
	Reads  []string
	Writes []string
	Run    func() StageResult
}
