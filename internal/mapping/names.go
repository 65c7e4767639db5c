package mapping

import (
	"fmt"
	"strings"
)

var noteNames = []string{"c", "c#", "d", "d#", "e", "f", "f#", "g", "g#", "a", "a#", "b"}

// noteName formats a MIDI number as a short note name like "c-4" or "f#1",
// the teacher's note-name convention reused here to label the built-in
// default mappings instead of a tracker's note column.
func noteName(midiNote int) string {
	if midiNote < 0 || midiNote > 127 {
		return "---"
	}
	octave := (midiNote / 12) - 1
	name := noteNames[midiNote%12]
	if strings.Contains(name, "#") {
		if octave < 0 {
			return fmt.Sprintf("%s%d", name, -octave)
		}
		return fmt.Sprintf("%s%d", name, octave)
	}
	if octave < 0 {
		return fmt.Sprintf("%s-%d", name, -octave)
	}
	return fmt.Sprintf("%s-%d", name, octave)
}
