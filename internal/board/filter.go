package board

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/ackboard/ackboard/internal/ack"
)

// Field selects which record field the text filter's pattern runs against.
type Field int

const (
	FieldNumber Field = iota
	FieldTitle
	FieldAuthor
	FieldLabels
	FieldAckers
	FieldStaleAckers
	FieldNackers
	FieldConceptAckers
)

// Filter is the combined type and text predicate applied to the ranked list.
// The zero value hides everything; use NewFilter for the show-all default.
type Filter struct {
	Pattern     string
	Field       Field
	Regular     bool
	Draft       bool
	NeedsRebase bool
	RFMOnly     bool
}

// NewFilter returns the default filter: every PR type visible, match-all
// pattern against the PR number.
func NewFilter() Filter {
	return Filter{
		Pattern:     ".*",
		Field:       FieldNumber,
		Regular:     true,
		Draft:       true,
		NeedsRebase: true,
	}
}

// ClearText resets only the text predicate.
func (f Filter) ClearText() Filter {
	f.Pattern = ".*"
	f.Field = FieldNumber
	return f
}

// ClearTypes resets only the type toggles, keeping the text predicate.
func (f Filter) ClearTypes() Filter {
	f.Regular = true
	f.Draft = true
	f.NeedsRebase = true
	return f
}

// candidates are the strings the pattern is searched in for one record.
func (f Filter) candidates(r Record) []string {
	switch f.Field {
	case FieldTitle:
		return []string{r.Title}
	case FieldAuthor:
		return []string{r.Author}
	case FieldLabels:
		return r.Labels
	case FieldAckers:
		return r.Acks.Reviewers(ack.Ack)
	case FieldStaleAckers:
		return r.Acks.Reviewers(ack.StaleAck)
	case FieldNackers:
		return r.Acks.Reviewers(ack.Nack)
	case FieldConceptAckers:
		return r.Acks.Reviewers(ack.ConceptAck)
	default:
		return []string{strconv.Itoa(r.Number)}
	}
}

// Apply returns the records passing both the type toggles and the text
// pattern, preserving their order. A pattern that does not compile is
// reported without touching the view. The input is never mutated.
func (f Filter) Apply(records []Record) ([]Record, error) {
	re, err := regexp.Compile(strings.ToLower(f.Pattern))
	if err != nil {
		return nil, err
	}

	out := []Record{}
	for _, r := range records {
		switch {
		case !f.Draft && r.Draft:
			continue
		case !f.NeedsRebase && r.NeedsRebase:
			continue
		case !f.Regular:
			continue
		case f.RFMOnly && r.RFM != ack.RFMYes:
			continue
		}
		for _, s := range f.candidates(r) {
			if re.MatchString(strings.ToLower(s)) {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

// ViewState is the immutable derivation recipe for the visible list: the
// primary sort key, the filter, and an optional shuffle seed. A nonzero seed
// replaces ranking with a deterministic shuffle of the filtered set.
type ViewState struct {
	SortKey     ack.Category
	Filter      Filter
	ShuffleSeed int64
}

// NewViewState returns the startup view: ranked by ACK count, nothing hidden.
func NewViewState() ViewState {
	return ViewState{SortKey: ack.Ack, Filter: NewFilter()}
}

// Derive computes the visible slice from the full record set. It is called
// on every state change so the view never drifts from the underlying data.
func (v ViewState) Derive(records []Record) ([]Record, error) {
	visible, err := v.Filter.Apply(Rank(records, v.SortKey))
	if err != nil {
		return nil, err
	}
	if v.ShuffleSeed != 0 {
		rng := rand.New(rand.NewSource(v.ShuffleSeed))
		rng.Shuffle(len(visible), func(i, j int) {
			visible[i], visible[j] = visible[j], visible[i]
		})
	}
	return visible, nil
}
