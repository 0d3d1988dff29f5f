package sizing

import "strings"

// ParsePatch converts a unified diff patch into diff blocks. A run of
// deletions immediately followed by a run of additions forms a single edit
// block; isolated runs form add or delete blocks. Context lines and hunk
// headers terminate the current run.
func ParsePatch(patch string) []DiffBlock {
	var blocks []DiffBlock
	var pendingDel, pendingAdd int

	flush := func() {
		switch {
		case pendingDel > 0 && pendingAdd > 0:
			blocks = append(blocks, DiffBlock{Kind: BlockEdit, OriginalLines: pendingDel, ModifiedLines: pendingAdd})
		case pendingAdd > 0:
			blocks = append(blocks, DiffBlock{Kind: BlockAdd, ModifiedLines: pendingAdd})
		case pendingDel > 0:
			blocks = append(blocks, DiffBlock{Kind: BlockDelete, OriginalLines: pendingDel})
		}
		pendingDel, pendingAdd = 0, 0
	}

	for _, line := range strings.Split(patch, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			flush()
		case strings.HasPrefix(line, "@@"):
			flush()
		case strings.HasPrefix(line, "-"):
			// A deletion after additions starts a new block; deletions
			// only extend a run that has not seen additions yet.
			if pendingAdd > 0 {
				flush()
			}
			pendingDel++
		case strings.HasPrefix(line, "+"):
			pendingAdd++
		case strings.HasPrefix(line, "\\"):
			// "\ No newline at end of file" markers carry no line counts.
		default:
			flush()
		}
	}
	flush()
	return blocks
}
