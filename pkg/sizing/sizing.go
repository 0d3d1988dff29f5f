// Package sizing maps a pull request's line footprint to an ordered size label.
package sizing

import (
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/codeGROOVE-dev/triage/pkg/types"
)

// Threshold pairs a size label with the largest change count it covers.
// Boundaries are inclusive: TotalChanges == MaxChanges stays in this bucket.
type Threshold struct {
	Label      string
	MaxChanges int
}

// DefaultThresholds returns the standard XS..XL bucket boundaries.
func DefaultThresholds() []Threshold {
	return []Threshold{
		{Label: "XS", MaxChanges: 10},
		{Label: "S", MaxChanges: 40},
		{Label: "M", MaxChanges: 150},
		{Label: "L", MaxChanges: 600},
		{Label: "XL", MaxChanges: 2000},
	}
}

// Label returns the size label for a change count. Thresholds are evaluated
// ascending by boundary; when no boundary covers the count, the
// largest-boundary label wins (open-ended top bucket). An empty threshold
// list yields "".
func Label(totalChanges int, thresholds []Threshold) string {
	if len(thresholds) == 0 {
		return ""
	}
	ordered := make([]Threshold, len(thresholds))
	copy(ordered, thresholds)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MaxChanges < ordered[j].MaxChanges
	})
	for _, t := range ordered {
		if totalChanges <= t.MaxChanges {
			return t.Label
		}
	}
	return ordered[len(ordered)-1].Label
}

// BlockKind distinguishes the three diff block shapes.
type BlockKind int

// Diff block kinds.
const (
	BlockAdd BlockKind = iota
	BlockDelete
	BlockEdit
)

// DiffBlock is one contiguous change region inside a file diff.
type DiffBlock struct {
	Kind          BlockKind
	OriginalLines int // lines removed from the original side
	ModifiedLines int // lines present on the modified side
}

// FileDiff is the line-level diff of one changed file. An empty Blocks slice
// means line data was unavailable for the file.
type FileDiff struct {
	Path   string
	Blocks []DiffBlock
}

// Config controls measurement: which files to skip and which label
// boundaries to apply.
type Config struct {
	ExcludeGlobs []string
	Thresholds   []Threshold
}

// DefaultConfig returns a Config with no exclusions and default thresholds.
func DefaultConfig() Config {
	return Config{Thresholds: DefaultThresholds()}
}

// Measure accumulates added/deleted line counts across the diffs of all
// files not matching an exclusion glob. Add blocks count toward added,
// delete blocks toward deleted, and edit blocks toward both sides. When no
// included file carries line data, the file count itself is used as a rough
// proxy (added = file count, deleted = 0); degraded accuracy, never an error.
func Measure(files []FileDiff, cfg Config) types.SizeInfo {
	var added, deleted, included int
	haveLineData := false
	for _, file := range files {
		if excluded(file.Path, cfg.ExcludeGlobs) {
			continue
		}
		included++
		for _, block := range file.Blocks {
			haveLineData = true
			switch block.Kind {
			case BlockAdd:
				added += block.ModifiedLines
			case BlockDelete:
				deleted += block.OriginalLines
			case BlockEdit:
				added += block.ModifiedLines
				deleted += block.OriginalLines
			}
		}
	}
	if !haveLineData {
		added, deleted = included, 0
	}
	total := added + deleted
	return types.SizeInfo{
		LinesAdded:   added,
		LinesDeleted: deleted,
		TotalChanges: total,
		Label:        Label(total, cfg.Thresholds),
	}
}

func excluded(path string, globs []string) bool {
	for _, glob := range globs {
		if ok, err := doublestar.Match(glob, path); err == nil && ok {
			return true
		}
	}
	return false
}
