package mapping

// gmPercussion is the standard General MIDI percussion key map, note number
// to drum name, 35 through 81.
var gmPercussion = map[int]string{
	35: "Acoustic Bass Drum", 36: "Bass Drum 1", 37: "Side Stick", 38: "Acoustic Snare",
	39: "Hand Clap", 40: "Electric Snare", 41: "Low Floor Tom", 42: "Closed Hi Hat",
	43: "High Floor Tom", 44: "Pedal Hi-Hat", 45: "Low Tom", 46: "Open Hi-Hat",
	47: "Low-Mid Tom", 48: "Hi-Mid Tom", 49: "Crash Cymbal 1", 50: "High Tom",
	51: "Ride Cymbal 1", 52: "Chinese Cymbal", 53: "Ride Bell", 54: "Tambourine",
	55: "Splash Cymbal", 56: "Cowbell", 57: "Crash Cymbal 2", 58: "Vibraslap",
	59: "Ride Cymbal 2", 60: "Hi Bongo", 61: "Low Bongo", 62: "Mute Hi Conga",
	63: "Open Hi Conga", 64: "Low Conga", 65: "High Timbale", 66: "Low Timbale",
	67: "High Agogo", 68: "Low Agogo", 69: "Cabasa", 70: "Maracas",
	71: "Short Whistle", 72: "Long Whistle", 73: "Short Guiro", 74: "Long Guiro",
	75: "Claves", 76: "Hi Wood Block", 77: "Low Wood Block", 78: "Mute Cuica",
	79: "Open Cuica", 80: "Mute Triangle", 81: "Open Triangle",
}

// GeneralMIDI returns the built-in General MIDI percussion mapping, note
// labels sourced from the standard and choke table empty (GM defines no
// choke relationships).
func GeneralMIDI() *Mapping {
	notes := make(map[int]string, len(gmPercussion))
	for k, v := range gmPercussion {
		notes[k] = v
	}
	return &Mapping{
		Name:   "General MIDI",
		Notes:  notes,
		Chokes: map[int][]int{},
	}
}

// Vendor returns a compact electronic-kit mapping with the closed/open
// hi-hat pair and a crash choke pre-wired. Default layers it over
// GeneralMIDI to form the fallback for kits without a usable mapping.toml.
func Vendor() *Mapping {
	notes := map[int]string{
		36: "Kick", 38: "Snare", 40: "Snare Rim", 42: "Hi-Hat Closed",
		44: "Hi-Hat Pedal", 46: "Hi-Hat Open", 49: "Crash", 51: "Ride",
		55: "Crash Choke", 45: "Tom Low", 48: "Tom High",
	}
	return &Mapping{
		Name:   "Vendor Electronic Kit",
		Notes:  notes,
		Chokes: map[int][]int{
			42: {46}, // closed hi-hat chokes the open hi-hat
			55: {49}, // crash choke chokes the crash
		},
	}
}

// Default returns the mapping a kit falls back to when it ships no
// mapping.toml of its own: the Vendor choke table (a real drum-sampler kit
// needs a working hi-hat choke out of the box) layered over the full GM
// percussion name range, so any note outside Vendor's compact label set
// still gets a sensible name instead of going blank. Notes that fall
// outside both tables are named by their raw pitch via noteName.
func Default() *Mapping {
	v := Vendor()
	gm := GeneralMIDI()

	notes := make(map[int]string, len(gm.Notes)+len(v.Notes))
	for k, n := range gm.Notes {
		notes[k] = n
	}
	for k, n := range v.Notes {
		notes[k] = n
	}

	return &Mapping{Name: v.Name, Notes: notes, Chokes: v.Chokes}
}

// LabelFor returns m's name for note, falling back to a plain note name
// (e.g. "f#1") when the mapping has none.
func LabelFor(m *Mapping, note int) string {
	if m != nil {
		if name, ok := m.Notes[note]; ok {
			return name
		}
	}
	return noteName(note)
}
