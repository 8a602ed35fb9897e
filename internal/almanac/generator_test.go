package almanac

import (
	"context"
	"testing"
	"time"
)

func TestGeneratorYear(t *testing.T) {
	g := NewGenerator()

	// Published almanac instants, China Standard Time.
	tests := []struct {
		year int
		term Term
		want time.Time
	}{
		{2019, StartOfSpring, time.Date(2019, 2, 4, 11, 14, 14, 0, time.UTC)},
		{2019, SummerSolstice, time.Date(2019, 6, 21, 23, 54, 9, 0, time.UTC)},
		{2019, MinorHeat, time.Date(2019, 7, 7, 17, 20, 25, 0, time.UTC)},
		{2020, WinterSolstice, time.Date(2020, 12, 21, 18, 2, 12, 0, time.UTC)},
		{2021, StartOfSpring, time.Date(2021, 2, 3, 22, 58, 39, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.want.Format(time.DateOnly), func(t *testing.T) {
			rec := g.Year(tt.year)[tt.term]
			if rec.Term != tt.term {
				t.Fatalf("Year(%d)[%d].Term = %v, want %v", tt.year, tt.term, rec.Term, tt.term)
			}
			diff := rec.At.Sub(tt.want)
			if diff < 0 {
				diff = -diff
			}
			if diff > 15*time.Minute {
				t.Errorf("%v %d at %v, want within 15m of %v", tt.term, tt.year, rec.At, tt.want)
			}
		})
	}
}

func TestGeneratorOrdering(t *testing.T) {
	g := NewGenerator()
	records := g.Range(1900, 2100)

	if len(records) != 201*TermCount {
		t.Fatalf("len(Range) = %d, want %d", len(records), 201*TermCount)
	}
	for i := 1; i < len(records); i++ {
		gap := records[i].At.Sub(records[i-1].At)
		if gap < 14*24*time.Hour || gap > 16*24*time.Hour {
			t.Fatalf("%v -> %v: gap %v out of range", records[i-1], records[i], gap)
		}
	}
}

func TestGeneratorWindow(t *testing.T) {
	g := NewGenerator()
	ctx := context.Background()

	tests := []struct {
		date           time.Time
		previous, next Term
	}{
		{time.Date(2019, 7, 7, 0, 0, 0, 0, time.UTC), SummerSolstice, MinorHeat},
		{time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), WinterSolstice, MinorCold},
		{time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC), WinterSolstice, MinorCold},
		{time.Date(2021, 2, 13, 0, 0, 0, 0, time.UTC), StartOfSpring, RainWater},
	}

	for _, tt := range tests {
		t.Run(tt.date.Format(time.DateOnly), func(t *testing.T) {
			w, err := Lookup(ctx, g, tt.date)
			if err != nil {
				t.Fatalf("Lookup() error = %v", err)
			}
			if w.Previous.Term != tt.previous || w.Next.Term != tt.next {
				t.Errorf("window = %v, %v, want %v, %v", w.Previous.Term, w.Next.Term, tt.previous, tt.next)
			}
		})
	}
}
