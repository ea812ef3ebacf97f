// Package searches keeps the list of past photo searches, most recent first.
// Each row is a search term with the photos it returned. A repeated search
// moves its term back to the top with the fresh results.
package searches

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/amp-labs/searchhistory/logger"
	"github.com/amp-labs/searchhistory/optional"
	"github.com/amp-labs/searchhistory/ordered"
	"gopkg.in/yaml.v3"
)

// ErrEmptyTerm is returned when a search term is blank.
var ErrEmptyTerm = errors.New("search term is empty")

// Row is one line of the history.
type Row struct {
	Term   string
	Photos []Photo
}

// Label is the text shown for the row, e.g. "sunset (12)".
func (r Row) Label() string {
	return fmt.Sprintf("%s (%d)", r.Term, len(r.Photos))
}

// History is an ordered record of searches. It is not safe for concurrent
// use; hand a Snapshot to other goroutines instead.
type History struct {
	entries *ordered.Dict[string, []Photo]
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{entries: ordered.New[string, []Photo](0)}
}

// Len returns the number of rows.
func (h *History) Len() int {
	return h.entries.Count()
}

// Record puts term at the top of the history with the given photos. It
// reports whether the term was already present (and therefore moved).
func (h *History) Record(ctx context.Context, term string, photos []Photo) (bool, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return false, ErrEmptyTerm
	}

	previous, err := h.entries.Insert(slices.Clone(photos), term, 0)
	if err != nil {
		return false, err
	}

	repeated := previous.NonEmpty()
	if repeated {
		searchesRecorded.WithLabelValues(kindRepeat).Inc()
	} else {
		searchesRecorded.WithLabelValues(kindNew).Inc()
	}

	logger.Get(ctx).Debug("recorded search",
		"term", term,
		"photos", len(photos),
		"repeated", repeated,
		"rows", h.Len())

	return repeated, nil
}

// Search runs term through searcher and records the results. On a searcher
// error the history is left as it was.
func (h *History) Search(ctx context.Context, searcher Searcher, term string) ([]Photo, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyTerm
	}

	photos, err := searcher.Search(ctx, term)
	if err != nil {
		searchesFailed.Inc()
		logger.Get(ctx).Warn("search failed", "term", term, "error", err)

		return nil, fmt.Errorf("searching for %q: %w", term, err)
	}

	if _, err := h.Record(ctx, term, photos); err != nil {
		return nil, err
	}

	return photos, nil
}

// Row returns the row at index.
func (h *History) Row(index int) (Row, error) {
	term, photos, err := h.entries.At(index)
	if err != nil {
		return Row{}, err
	}

	return Row{Term: term, Photos: slices.Clone(photos)}, nil
}

// Rows iterates over the rows from most to least recent. Each row carries its
// own copy of the photos.
func (h *History) Rows() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i, entry := range h.entries.Seq() {
			if !yield(i, Row{Term: entry.Key, Photos: slices.Clone(entry.Value)}) {
				return
			}
		}
	}
}

// Photos returns a copy of the photos at index, for handing to a detail view.
func (h *History) Photos(index int) ([]Photo, error) {
	row, err := h.Row(index)
	if err != nil {
		return nil, err
	}

	return row.Photos, nil
}

// Lookup returns the photos recorded for term.
func (h *History) Lookup(term string) optional.Value[[]Photo] {
	return optional.Map(h.entries.Get(strings.TrimSpace(term)), slices.Clone[[]Photo])
}

// Delete removes the row at index and returns it.
func (h *History) Delete(ctx context.Context, index int) (Row, error) {
	term, photos, err := h.entries.RemoveAt(index)
	if err != nil {
		return Row{}, err
	}

	searchesDeleted.Inc()
	logger.Get(ctx).Debug("deleted search", "term", term, "index", index, "rows", h.Len())

	return Row{Term: term, Photos: slices.Clone(photos)}, nil
}

// Snapshot returns an independent copy of the history. Rows handed out by
// either copy are clones, so neither can change the photos the other sees.
func (h *History) Snapshot() *History {
	return &History{entries: h.entries.Clone()}
}

// MarshalYAML writes the history as a mapping of term to photos, most recent first.
func (h *History) MarshalYAML() (any, error) {
	return h.entries.MarshalYAML()
}

var _ yaml.Marshaler = (*History)(nil)
