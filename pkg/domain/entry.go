package domain

import "fmt"

// Override defines the enablement override for an entry.
// A forced entry displays a fixed state and cannot be toggled by the user.
type Override int

const (
	// UserControlled leaves the checked state to the bound value and the user.
	UserControlled Override = iota
	// ForcedChecked pins the entry to checked and disables it.
	ForcedChecked
	// ForcedUnchecked pins the entry to unchecked and disables it.
	ForcedUnchecked
)

func (o Override) String() string {
	switch o {
	case ForcedChecked:
		return "forced_checked"
	case ForcedUnchecked:
		return "forced_unchecked"
	default:
		return "user_controlled"
	}
}

// ParseOverride converts a manifest string to an Override.
// The empty string means UserControlled.
func ParseOverride(s string) (Override, error) {
	switch s {
	case "", "user_controlled":
		return UserControlled, nil
	case "forced_checked":
		return ForcedChecked, nil
	case "forced_unchecked":
		return ForcedUnchecked, nil
	}
	return 0, fmt.Errorf("unknown override: %q", s)
}

// Entry is a single toggle in a bound option list.
// It is owned by the list that created it and becomes invalid after Release.
type Entry struct {
	// Key uniquely identifies the entry ("group/name" by convention).
	// It is the handle for links, toggles and policy lookups.
	Key string

	// Group is the visual section the entry belongs to.
	Group string

	// Label is the user-visible text.
	Label string

	// Tooltip holds optional markdown help text.
	Tooltip string

	// Checked is the current displayed state.
	Checked bool

	// Override pins the state and disables user toggling when not UserControlled.
	Override Override

	// Locked reports that an enforcement policy marked the bound value
	// read-only. Locked entries render disabled and are skipped at write-back.
	Locked bool

	// Binding is the accessor/mutator pair for the bound value.
	Binding Binding
}

// Enabled reports whether the user may toggle this entry.
func (e *Entry) Enabled() bool {
	return !e.Locked && e.Override == UserControlled
}

// View is a read-only snapshot of an entry, safe to hand to surfaces
// and wire adapters without exposing the binding.
type View struct {
	Key     string `json:"key"`
	Group   string `json:"group"`
	Label   string `json:"label"`
	Tooltip string `json:"tooltip,omitempty"`
	Checked bool   `json:"checked"`
	Enabled bool   `json:"enabled"`
	Locked  bool   `json:"locked"`
}

// Snapshot captures the entry's current public state.
func (e *Entry) Snapshot() View {
	return View{
		Key:     e.Key,
		Group:   e.Group,
		Label:   e.Label,
		Tooltip: e.Tooltip,
		Checked: e.Checked,
		Enabled: e.Enabled(),
		Locked:  e.Locked,
	}
}
