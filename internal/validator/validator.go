// Package validator lints panel manifests before they are applied:
// duplicate keys, dangling or malformed links, bad enum values.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dwilhelm/optlist/pkg/domain"
	"github.com/dwilhelm/optlist/pkg/manifest"
)

// Validate checks a manifest for structural problems. All findings are
// collected and reported together.
func Validate(m *manifest.Manifest) error {
	var errors []string

	keys := make(map[string]bool, len(m.Entries))
	for _, def := range m.Entries {
		if def.Key == "" {
			errors = append(errors, "entry with empty key")
			continue
		}
		if keys[def.Key] {
			errors = append(errors, fmt.Sprintf("duplicate entry key: '%s'", def.Key))
			continue
		}
		keys[def.Key] = true

		if def.Label == "" {
			errors = append(errors, fmt.Sprintf("entry '%s' has no label", def.Key))
		}
		if _, err := domain.ParseOverride(def.Override); err != nil {
			errors = append(errors, fmt.Sprintf("entry '%s': %v", def.Key, err))
		}
	}

	seenLinks := make(map[string]bool, len(m.Links))
	for _, link := range m.Links {
		if !keys[link.Source] {
			errors = append(errors, fmt.Sprintf("link source does not exist: '%s'", link.Source))
		}
		if !keys[link.Target] {
			errors = append(errors, fmt.Sprintf("link target does not exist: '%s'", link.Target))
		}
		if link.Source != "" && link.Source == link.Target {
			errors = append(errors, fmt.Sprintf("self link on '%s'", link.Source))
		}
		if _, err := domain.ParseLinkType(link.Type); err != nil {
			errors = append(errors, fmt.Sprintf("link %s -> %s: %v", link.Source, link.Target, err))
		}

		id := link.Source + "\x00" + link.Target + "\x00" + link.Type
		if seenLinks[id] {
			errors = append(errors, fmt.Sprintf("duplicate link %s -> %s (%s)", link.Source, link.Target, link.Type))
		}
		seenLinks[id] = true
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}

// Cycles returns the entry keys that sit on at least one implication
// cycle, sorted. Cycles are legal (the sweep is bounded) but worth
// surfacing: a contradictory cycle settles on registration order.
func Cycles(m *manifest.Manifest) []string {
	next := make(map[string][]string)
	for _, link := range m.Links {
		next[link.Source] = append(next[link.Source], link.Target)
	}

	inCycle := make(map[string]bool)

	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int)
	var stack []string

	var visit func(key string)
	visit = func(key string) {
		state[key] = inStack
		stack = append(stack, key)

		for _, target := range next[key] {
			switch state[target] {
			case unvisited:
				visit(target)
			case inStack:
				// Everything from target up the stack is on a cycle.
				for i := len(stack) - 1; i >= 0; i-- {
					inCycle[stack[i]] = true
					if stack[i] == target {
						break
					}
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[key] = done
	}

	for key := range next {
		if state[key] == unvisited {
			visit(key)
		}
	}

	keys := make([]string, 0, len(inCycle))
	for key := range inCycle {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
