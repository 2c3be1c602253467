// Package participant describes where this process sits in a multi-process
// run. Only the participant with rank 0 prints diagnostics and reports.
package participant

import (
	"fmt"
	"strconv"
)

// Participant is the rank of this process and the number of processes in the
// run.
type Participant struct {
	Rank int
	Size int
}

// Single is the participant of a run with one process.
var Single = Participant{Rank: 0, Size: 1}

// IsReporter reports whether this participant prints and publishes results.
func (p Participant) IsReporter() bool {
	return p.Rank == 0
}

// launcherVars pairs the rank and size variables exported by common launchers,
// checked in order.
var launcherVars = [][2]string{
	{"OMPI_COMM_WORLD_RANK", "OMPI_COMM_WORLD_SIZE"},
	{"PMI_RANK", "PMI_SIZE"},
	{"PMIX_RANK", "PMIX_SIZE"},
	{"SLURM_PROCID", "SLURM_NTASKS"},
}

// FromEnv derives the participant from launcher environment variables using
// lookup (typically os.LookupEnv). Without any launcher variables the process
// is the single participant of its run.
func FromEnv(lookup func(string) (string, bool)) (Participant, error) {
	for _, pair := range launcherVars {
		rankStr, hasRank := lookup(pair[0])
		sizeStr, hasSize := lookup(pair[1])
		if !hasRank || !hasSize {
			continue
		}
		rank, err := strconv.Atoi(rankStr)
		if err != nil {
			return Participant{}, fmt.Errorf("invalid %s %q: %w", pair[0], rankStr, err)
		}
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return Participant{}, fmt.Errorf("invalid %s %q: %w", pair[1], sizeStr, err)
		}
		if size <= 0 || rank < 0 || rank >= size {
			return Participant{}, fmt.Errorf("inconsistent %s=%d and %s=%d", pair[0], rank, pair[1], size)
		}
		return Participant{Rank: rank, Size: size}, nil
	}
	return Single, nil
}
