package kit

import (
	"regexp"
	"strconv"
)

// filenameGrammar matches a stem of the form N(_vV)?(_rrR)?: a MIDI note
// number, an optional velocity tier, an optional round-robin index.
var filenameGrammar = regexp.MustCompile(`^(\d+)(?:_v(\d+))?(?:_rr(\d+))?$`)

// parsedName is the result of matching one file's stem against the
// filename grammar.
type parsedName struct {
	Note        int
	HasTier     bool
	Tier        int
	HasRR       bool
	RR          int
}

// parseFilename matches stem against the grammar, returning ok=false for
// anything that doesn't fit (including out-of-range note numbers), which
// the kit loader then ignores silently.
func parseFilename(stem string) (parsedName, bool) {
	m := filenameGrammar.FindStringSubmatch(stem)
	if m == nil {
		return parsedName{}, false
	}

	note, err := strconv.Atoi(m[1])
	if err != nil || note < 0 || note > 127 {
		return parsedName{}, false
	}

	var pn parsedName
	pn.Note = note

	if m[2] != "" {
		tier, err := strconv.Atoi(m[2])
		if err != nil || tier < 1 {
			return parsedName{}, false
		}
		pn.HasTier = true
		pn.Tier = tier
	}
	if m[3] != "" {
		rr, err := strconv.Atoi(m[3])
		if err != nil || rr < 1 {
			return parsedName{}, false
		}
		pn.HasRR = true
		pn.RR = rr
	}
	return pn, true
}
