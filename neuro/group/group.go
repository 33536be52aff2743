// Package group orders and partitions trials before aggregation.
//
// Sorting uses event-relative keys so that the order matches what a raster
// aligned to the same event shows. Partitioning keeps trials without a label
// in an explicit group instead of silently dropping them.
package group

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/cwbudde/algo-spikes/neuro/signal"
)

// Errors returned by grouping.
var (
	ErrLengthMismatch = errors.New("group: length mismatch")
	ErrConfigMismatch = errors.New("group: configuration mismatch")
)

// UnlabeledGray is the color used for trials without a split label.
var UnlabeledGray = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}

// RelativeKeys returns sortTimes[i] - alignTimes[i]. The key is NaN when
// either time is missing.
func RelativeKeys(sortTimes, alignTimes []float64) ([]float64, error) {
	if len(sortTimes) != len(alignTimes) {
		return nil, fmt.Errorf("%w: %d sort times, %d alignment times", ErrLengthMismatch, len(sortTimes), len(alignTimes))
	}

	keys := make([]float64, len(sortTimes))
	for i := range keys {
		if signal.IsMissing(sortTimes[i]) || signal.IsMissing(alignTimes[i]) {
			keys[i] = math.NaN()
			continue
		}
		keys[i] = sortTimes[i] - alignTimes[i]
	}
	return keys, nil
}

// Sort returns the trial order that sorts keys ascending. Equal keys keep
// their original order; NaN keys go last.
func Sort(keys []float64) []int {
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		ka, kb := keys[order[a]], keys[order[b]]
		if math.IsNaN(kb) {
			return !math.IsNaN(ka)
		}
		return ka < kb
	})
	return order
}

// Reorder returns trials and keys sorted by key (see [Sort]).
func Reorder[T any](trials []T, keys []float64) ([]T, []float64, error) {
	if len(trials) != len(keys) {
		return nil, nil, fmt.Errorf("%w: %d trials, %d keys", ErrLengthMismatch, len(trials), len(keys))
	}

	order := Sort(keys)
	return Subset(trials, order), Subset(keys, order), nil
}

// Subset returns items[idx[0]], items[idx[1]], ...
func Subset[T any](items []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}

// Group is a set of trial indices sharing a label.
type Group struct {
	Label     string
	Indices   []int
	Unlabeled bool
}

// Len returns the number of trials in the group.
func (g Group) Len() int {
	return len(g.Indices)
}

// Partition groups trial indices by label, in order of first appearance.
// Trials with an empty label are collected in one trailing group marked
// Unlabeled. Every trial appears in exactly one group.
func Partition(labels []string) []Group {
	var (
		groups    []Group
		byLabel   = make(map[string]int)
		unlabeled []int
	)

	for i, l := range labels {
		if l == "" {
			unlabeled = append(unlabeled, i)
			continue
		}
		gi, ok := byLabel[l]
		if !ok {
			gi = len(groups)
			byLabel[l] = gi
			groups = append(groups, Group{Label: l})
		}
		groups[gi].Indices = append(groups[gi].Indices, i)
	}

	if len(unlabeled) > 0 {
		groups = append(groups, Group{Indices: unlabeled, Unlabeled: true})
	}
	return groups
}

// Labeled returns the number of groups that carry a label.
func Labeled(groups []Group) int {
	n := 0
	for _, g := range groups {
		if !g.Unlabeled {
			n++
		}
	}
	return n
}

// ConfigMismatchError reports a split whose color list does not match its
// number of distinct labels.
type ConfigMismatchError struct {
	Split  string
	Colors int
	Groups int
}

func (e *ConfigMismatchError) Error() string {
	return fmt.Sprintf("group: split %q: %d colors for %d groups", e.Split, e.Colors, e.Groups)
}

// Is makes errors.Is(err, ErrConfigMismatch) match.
func (e *ConfigMismatchError) Is(target error) bool {
	return target == ErrConfigMismatch
}

// MatchColors assigns colors[i] to the i-th labelled group. The number of
// colors must equal the number of labelled groups. The unlabeled group, if
// any, is mapped from the empty label to [UnlabeledGray].
func MatchColors(split string, groups []Group, colors []color.Color) (map[string]color.Color, error) {
	n := Labeled(groups)
	if len(colors) != n {
		return nil, &ConfigMismatchError{Split: split, Colors: len(colors), Groups: n}
	}

	out := make(map[string]color.Color, len(groups))
	i := 0
	for _, g := range groups {
		if g.Unlabeled {
			out[""] = UnlabeledGray
			continue
		}
		out[g.Label] = colors[i]
		i++
	}
	return out, nil
}
