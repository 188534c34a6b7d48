package bootscene

// Checklist is the boot-time asset loading list, driven one entry per tick
// so decoding and asset I/O never stall the intro animation. The concrete
// loader lives with the application's asset manifest; the scene only
// observes progress and gates the continue prompt on completion.
type Checklist interface {
	// Len returns the total number of entries.
	Len() int
	// Loaded returns how many entries have completed.
	Loaded() int
	// Current names the entry about to load, for the progress readout.
	Current() string
	// LoadNext loads one entry, returning false when none remain.
	LoadNext() bool
}

// NopChecklist is an empty checklist for callers with nothing to preload.
type NopChecklist struct{}

func (NopChecklist) Len() int { return 0 }

func (NopChecklist) Loaded() int { return 0 }

func (NopChecklist) Current() string { return "" }

func (NopChecklist) LoadNext() bool { return false }
