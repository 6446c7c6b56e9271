package engine

import (
	"time"

	"github.com/dwilhelm/optlist/pkg/domain"
)

// firing records a link that matched during a sweep, by registration index.
type firing struct {
	index int
	state bool
}

// propagate runs one bounded implication sweep starting from origin and
// returns the number of link firings.
//
// The sweep is a FIFO over affected entries. Each entry's outgoing links
// are evaluated at most once per sweep, which guarantees termination even
// on cyclic link sets: the sweep is bounded by the number of entries, not
// by a fixed point. Forced states apply immediately so transitive links
// see them; after the sweep, targets hit by conflicting links are settled
// in favor of the latest-registered one, so the visibly retained state
// never depends on queue order.
func (l *List) propagate(origin *domain.Entry) int {
	if len(l.links) == 0 {
		return 0
	}

	fired := 0
	swept := map[string]bool{}
	latest := map[string]firing{}
	queue := []*domain.Entry{origin}

	for len(queue) > 0 {
		src := queue[0]
		queue = queue[1:]

		if swept[src.Key] {
			continue
		}
		swept[src.Key] = true

		for i, link := range l.links {
			if link.Source != src.Key {
				continue
			}
			forcedState, match := link.Apply(src.Checked)
			if !match {
				continue
			}

			target := l.byKey[link.Target]
			fired++

			if prev, ok := latest[link.Target]; !ok || i > prev.index {
				latest[link.Target] = firing{index: i, state: forcedState}
			}

			// A forced set overrides the displayed state even when the
			// target is policy-locked; the lock only guards write-back.
			l.force(target, forcedState)

			l.logger.Debug("link fired",
				"source", link.Source, "target", link.Target,
				"link", link.Type.String(), "checked", forcedState)

			if l.hooks.OnForce != nil {
				l.hooks.OnForce(&domain.ForceEvent{
					EventBase: domain.EventBase{Timestamp: time.Now().UTC(), Type: domain.EventForce},
					Source:    link.Source,
					Target:    link.Target,
					Link:      link.Type,
					Checked:   forcedState,
				})
			}

			if !swept[target.Key] {
				queue = append(queue, target)
			}
		}
	}

	// Conflict settlement: the latest-registered firing per target wins.
	for key, f := range latest {
		l.force(l.byKey[key], f.state)
	}

	return fired
}

// force sets an entry's displayed state, notifying the surface on change.
func (l *List) force(e *domain.Entry, state bool) {
	if e.Checked == state {
		return
	}
	e.Checked = state
	l.surface.CheckedChanged(e.Key, state)
}
