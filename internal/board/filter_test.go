package board

import (
	"reflect"
	"testing"

	"github.com/ackboard/ackboard/internal/ack"
)

func TestFilterTypeToggles(t *testing.T) {
	regular := Record{Number: 1}
	draft := Record{Number: 2, Draft: true}
	rebase := Record{Number: 3, NeedsRebase: true}
	draftRebase := Record{Number: 4, Draft: true, NeedsRebase: true}
	all := []Record{regular, draft, rebase, draftRebase}

	tests := []struct {
		name   string
		modify func(*Filter)
		want   []int
	}{
		{"default shows all", func(*Filter) {}, []int{1, 2, 3, 4}},
		{"hide drafts", func(f *Filter) { f.Draft = false }, []int{1, 3}},
		{"hide needs rebase", func(f *Filter) { f.NeedsRebase = false }, []int{1, 2}},
		{"hide both", func(f *Filter) { f.Draft = false; f.NeedsRebase = false }, []int{1}},
		{"regular off hides everything", func(f *Filter) { f.Regular = false }, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter()
			tt.modify(&f)
			got, err := f.Apply(all)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if !reflect.DeepEqual(numbers(got), tt.want) {
				t.Errorf("visible = %v, want %v", numbers(got), tt.want)
			}
		})
	}
}

func TestFilterRFMOnly(t *testing.T) {
	all := []Record{
		{Number: 1, RFM: ack.RFMYes},
		{Number: 2, RFM: ack.RFMNo},
		{Number: 3, RFM: ack.RFMUnknown},
	}
	f := NewFilter()
	f.RFMOnly = true
	got, err := f.Apply(all)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !reflect.DeepEqual(numbers(got), []int{1}) {
		t.Errorf("visible = %v, want [1] (unknown is not ready)", numbers(got))
	}
}

func TestFilterFields(t *testing.T) {
	rec := recWithAcks(1234, map[ack.Category]int{ack.Ack: 1, ack.Nack: 1})
	rec.Title = "Fix Widget Overflow"
	rec.Author = "CarolJones"
	rec.Labels = []string{"bug", "P1"}

	tests := []struct {
		name    string
		field   Field
		pattern string
		match   bool
	}{
		{"number match", FieldNumber, "12", true},
		{"number miss", FieldNumber, "^9", false},
		{"title case-insensitive", FieldTitle, "widget over", true},
		{"title miss", FieldTitle, "gadget", false},
		{"author case-insensitive", FieldAuthor, "caroljones", true},
		{"labels any", FieldLabels, "p1", true},
		{"labels miss", FieldLabels, "p2", false},
		{"ackers", FieldAckers, "rev-1234", true},
		{"nackers", FieldNackers, "rev-1234", true},
		{"stale ackers empty", FieldStaleAckers, "rev", false},
		{"concept ackers empty", FieldConceptAckers, "rev", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter()
			f.Field = tt.field
			f.Pattern = tt.pattern
			got, err := f.Apply([]Record{rec})
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if (len(got) == 1) != tt.match {
				t.Errorf("match = %v, want %v", len(got) == 1, tt.match)
			}
		})
	}
}

func TestFilterBadPattern(t *testing.T) {
	f := NewFilter()
	f.Pattern = "("
	if _, err := f.Apply([]Record{{Number: 1}}); err == nil {
		t.Fatal("expected compile error for unbalanced pattern")
	}
}

func TestFilterPreservesOrderAndInput(t *testing.T) {
	all := []Record{{Number: 3}, {Number: 1}, {Number: 2, Draft: true}}
	f := NewFilter()
	f.Draft = false
	got, err := f.Apply(all)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !reflect.DeepEqual(numbers(got), []int{3, 1}) {
		t.Errorf("visible = %v, want [3 1]", numbers(got))
	}
	if !reflect.DeepEqual(numbers(all), []int{3, 1, 2}) {
		t.Errorf("input mutated: %v", numbers(all))
	}
}

func TestFilterClearHelpers(t *testing.T) {
	f := NewFilter()
	f.Pattern = "carol"
	f.Field = FieldAuthor
	f.Draft = false
	f.RFMOnly = true

	text := f.ClearText()
	if text.Pattern != ".*" || text.Field != FieldNumber {
		t.Errorf("ClearText = %+v", text)
	}
	if text.Draft || !text.RFMOnly {
		t.Error("ClearText touched the type toggles")
	}

	types := f.ClearTypes()
	if !types.Draft || !types.NeedsRebase || !types.Regular {
		t.Errorf("ClearTypes = %+v", types)
	}
	if types.Pattern != "carol" || !types.RFMOnly {
		t.Error("ClearTypes touched the text predicate or rfm flag")
	}
}

func TestViewStateDerive(t *testing.T) {
	records := []Record{
		recWithAcks(1, map[ack.Category]int{ack.Ack: 1}),
		recWithAcks(2, map[ack.Category]int{ack.Ack: 3}),
		recWithAcks(3, map[ack.Category]int{ack.Nack: 2}),
	}

	v := NewViewState()
	got, err := v.Derive(records)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if !reflect.DeepEqual(numbers(got), []int{2, 1, 3}) {
		t.Errorf("visible = %v, want ranked [2 1 3]", numbers(got))
	}

	v.SortKey = ack.Nack
	got, err = v.Derive(records)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if got[0].Number != 3 {
		t.Errorf("visible = %v, want 3 first under Nack sort", numbers(got))
	}
}

func TestViewStateDeriveShuffleDeterministic(t *testing.T) {
	var records []Record
	for i := 1; i <= 20; i++ {
		records = append(records, recWithAcks(i, nil))
	}

	v := NewViewState()
	v.ShuffleSeed = 42
	first, err := v.Derive(records)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	second, err := v.Derive(records)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if !reflect.DeepEqual(numbers(first), numbers(second)) {
		t.Error("same seed produced different orders")
	}
	if reflect.DeepEqual(numbers(first), numbers(records)) {
		t.Error("shuffle left 20 records in input order")
	}
}
