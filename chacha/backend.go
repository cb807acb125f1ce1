package chacha

import "sync"

// backendKind distinguishes which concrete keystream routine the
// generator (keystream.go) should call; it is the "value-typed enum of
// backends selected once at init and invoked via direct call" spec.md §9
// calls for, in place of per-block dynamic dispatch.
type backendKind int

const (
	kindScalar backendKind = iota
	kindSIMD128
	kindSIMD256
)

type candidate interface {
	priority() int
	isSupported() bool
	name() string
}

// selectBackend probes CPU features and returns the highest-priority
// supported backend, caching the result for the lifetime of the process
// (spec.md §4.1: "Selection is a one-shot operation cached for the
// lifetime of the process"). The scalar backend always qualifies, so
// this never fails; if none of the three candidates reports supported
// (which cannot happen given scalar's unconditional isSupported), that
// would be the "internal assertion failure is fatal" case spec.md §4.1
// describes.
func selectBackend() (backendKind, string) {
	selectOnce.Do(func() {
		candidates := []struct {
			kind backendKind
			c    candidate
		}{
			{kindSIMD256, simd256Backend{}},
			{kindSIMD128, simd128Backend{}},
			{kindScalar, scalarBackend{}},
		}

		bestPriority := -1
		for _, cand := range candidates {
			if !cand.c.isSupported() {
				continue
			}
			if cand.c.priority() > bestPriority {
				bestPriority = cand.c.priority()
				selectedKind = cand.kind
				selectedName = cand.c.name()
			}
		}
		if bestPriority < 0 {
			panic("chacha: no backend reported as supported, not even scalar")
		}
	})
	return selectedKind, selectedName
}

// SelectedBackend reports the name of the backend chosen for this
// process ("scalar", "simd128", or "simd256"), for diagnostics and
// tests.
func SelectedBackend() string {
	_, name := selectBackend()
	return name
}

var (
	selectOnce   sync.Once
	selectedKind backendKind
	selectedName string
)
