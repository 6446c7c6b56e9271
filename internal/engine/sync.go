package engine

import (
	"time"

	"github.com/dwilhelm/optlist/pkg/domain"
)

// UpdateData is the two-way sync point between entries and their bound
// values.
//
// With writeBack false it re-reads every bound value into the entry's
// displayed state and refreshes policy locks (the load path). With
// writeBack true it writes each entry's displayed state back to its bound
// value in entry-creation order; policy-locked entries are skipped, and a
// failing entry never blocks the rest; failures are aggregated into a
// *domain.CommitError returned at the end.
func (l *List) UpdateData(writeBack bool) error {
	if l.released {
		return domain.ErrReleased
	}
	if writeBack {
		return l.writeBack()
	}
	return l.reload()
}

func (l *List) reload() error {
	for _, e := range l.entries {
		value, err := e.Binding.Get()
		if err != nil {
			return &domain.BindingError{Field: e.Key, Reason: err.Error()}
		}

		switch e.Override {
		case domain.ForcedChecked:
			value = true
		case domain.ForcedUnchecked:
			value = false
		}
		l.force(e, value)

		wasEnabled := e.Enabled()
		e.Locked = l.policy.IsLocked(e.Key)
		if e.Enabled() != wasEnabled {
			l.surface.EnabledChanged(e.Key, e.Enabled())
		}
	}

	l.emitSync(false, 0, 0)
	return nil
}

func (l *List) writeBack() error {
	var failures []domain.WriteFailure
	skipped := 0

	for _, e := range l.entries {
		if e.Locked {
			// Enforced values stay untouched no matter what is displayed.
			skipped++
			continue
		}
		if err := e.Binding.Set(e.Checked); err != nil {
			l.logger.Warn("write-back failed", "key", e.Key, "err", err)
			failures = append(failures, domain.WriteFailure{Key: e.Key, Err: err})
		}
	}

	l.emitSync(true, skipped, len(failures))

	if len(failures) > 0 {
		return &domain.CommitError{Failures: failures}
	}
	return nil
}

// States returns the displayed states keyed by entry, for drafts and
// wire adapters.
func (l *List) States() map[string]bool {
	states := make(map[string]bool, len(l.entries))
	for _, e := range l.entries {
		states[e.Key] = e.Checked
	}
	return states
}

// Restore applies a draft's displayed states to matching enabled entries.
// Unknown keys are ignored; no propagation runs, the draft is taken as
// the already-settled result of earlier toggles.
func (l *List) Restore(draft *domain.Draft) error {
	if l.released {
		return domain.ErrReleased
	}
	if draft == nil {
		return nil
	}
	for key, state := range draft.States {
		e, ok := l.byKey[key]
		if !ok || !e.Enabled() {
			continue
		}
		l.force(e, state)
	}
	return nil
}

func (l *List) emitSync(writeBack bool, skipped, failed int) {
	l.logger.Debug("sync pass",
		"write_back", writeBack, "entries", len(l.entries), "skipped", skipped, "failed", failed)

	if l.hooks.OnSync != nil {
		l.hooks.OnSync(&domain.SyncEvent{
			EventBase: domain.EventBase{Timestamp: time.Now().UTC(), Type: syncEventType(writeBack)},
			WriteBack: writeBack,
			Entries:   len(l.entries),
			Skipped:   skipped,
			Failed:    failed,
		})
	}
}

func syncEventType(writeBack bool) domain.EventType {
	if writeBack {
		return domain.EventCommit
	}
	return domain.EventLoad
}
