package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded engine event.
type SimLogEntry struct {
	Tick     int
	Entity   string  // "P" for the player, "E0".."En" for enemies, "--" for level events
	Category string  // level, player, answer, combat, powerup, enemy, move
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] E1   enemy     path             len=9
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Entity, e.Category, e.Key, e.Value)
}

// SimLog collects structured events while the engine runs. It is
// machine-readable and, unless a limit is set, unbounded.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
	limit   int
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position entries
// are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// NewBoundedSimLog keeps only the most recent limit entries. The interactive
// game uses this so a long session does not grow without bound.
func NewBoundedSimLog(limit int, verbose bool) *SimLog {
	return &SimLog{verbose: verbose, limit: limit}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, entity, category, key, value string, numVal float64) {
	if sl == nil {
		return
	}
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Entity:   entity,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
	// Slide the window forward; append reallocates once capacity runs out.
	if sl.limit > 0 && len(sl.entries) > sl.limit {
		sl.entries = sl.entries[len(sl.entries)-sl.limit:]
	}
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, entity, category, key, value string, numVal float64) {
	if sl == nil || !sl.verbose {
		return
	}
	sl.Add(tick, entity, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Len returns the number of retained entries.
func (sl *SimLog) Len() int { return len(sl.entries) }

// Reset drops every entry.
func (sl *SimLog) Reset() { sl.entries = nil }

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterEntity returns entries for a specific entity label.
func (sl *SimLog) FilterEntity(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Entity == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		e := sl.entries[i]
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Tail returns a copy of at most n of the most recent entries.
func (sl *SimLog) Tail(n int) []SimLogEntry {
	from := 0
	if n > 0 && n < len(sl.entries) {
		from = len(sl.entries) - n
	}
	return append([]SimLogEntry(nil), sl.entries[from:]...)
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	return formatEntries(sl.entries)
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(sl.FilterTickRange(fromTick, toTick))
}

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short count of the notable events in the log.
func (sl *SimLog) Summary(tick int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", tick)
	rows := []struct {
		label, cat, key string
	}{
		{"deaths", "player", "death"},
		{"correct", "answer", "correct"},
		{"incorrect", "answer", "incorrect"},
		{"shots", "combat", "fire"},
		{"hits", "combat", "hit"},
		{"pickups", "powerup", "pickup"},
		{"respawns", "enemy", "respawn"},
	}
	for _, r := range rows {
		fmt.Fprintf(&sb, "%-10s %d\n", r.label, sl.CountCategory(r.cat, r.key))
	}
	return sb.String()
}
