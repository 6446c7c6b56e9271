package domain

import "fmt"

// LinkType enumerates the four (trigger state, forced state) combinations.
type LinkType int

const (
	// LinkUncheckedUnchecked forces the target unchecked when the source is unchecked.
	LinkUncheckedUnchecked LinkType = iota
	// LinkCheckedChecked forces the target checked when the source is checked.
	LinkCheckedChecked
	// LinkUncheckedChecked forces the target checked when the source is unchecked.
	LinkUncheckedChecked
	// LinkCheckedUnchecked forces the target unchecked when the source is checked.
	LinkCheckedUnchecked
)

var linkTypeNames = map[LinkType]string{
	LinkUncheckedUnchecked: "unchecked_unchecked",
	LinkCheckedChecked:     "checked_checked",
	LinkUncheckedChecked:   "unchecked_checked",
	LinkCheckedUnchecked:   "checked_unchecked",
}

func (t LinkType) String() string {
	if name, ok := linkTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("link_type(%d)", int(t))
}

// ParseLinkType converts a manifest string to a LinkType.
func ParseLinkType(s string) (LinkType, error) {
	for t, name := range linkTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown link type: %q", s)
}

// Link is a directed implication between two entries.
// Registration order is resolution order: when two links force the same
// target within one sweep, the later-registered one wins.
type Link struct {
	Source string   `json:"source" yaml:"source"`
	Target string   `json:"target" yaml:"target"`
	Type   LinkType `json:"type" yaml:"type"`
}

// Apply returns the state to force on the target, if the source's new
// state matches the link's trigger.
func (l Link) Apply(sourceChecked bool) (forced bool, ok bool) {
	switch l.Type {
	case LinkUncheckedUnchecked:
		return false, !sourceChecked
	case LinkCheckedChecked:
		return true, sourceChecked
	case LinkUncheckedChecked:
		return true, !sourceChecked
	case LinkCheckedUnchecked:
		return false, sourceChecked
	}
	return false, false
}
