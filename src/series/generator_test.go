package series

import (
	"math/rand"
	"testing"
	"time"
)

func TestGenerate_ShapeAndSpan(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	cases := []time.Time{
		time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC),
		time.Date(2024, 2, 29, 23, 59, 0, 0, loc), // leap day: AddDate normalizes to Mar 1
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.Local),
	}
	for _, now := range cases {
		for _, sym := range []string{"IBM", "", "BRK.A"} {
			s := Generate(sym, now, rand.New(rand.NewSource(7)))
			if s.Symbol != sym {
				t.Fatalf("symbol=%q want %q", s.Symbol, sym)
			}
			if len(s.Points) != Points {
				t.Fatalf("points=%d want %d", len(s.Points), Points)
			}
			start, end := Span(now)
			if !s.Points[0].Date.Equal(start) || !s.Points[Points-1].Date.Equal(end) {
				t.Fatalf("span %v..%v want %v..%v", s.Points[0].Date, s.Points[Points-1].Date, start, end)
			}
			if !end.AddDate(-Years, 0, 0).Equal(start) {
				t.Fatalf("span not %d years: %v..%v", Years, start, end)
			}
			y, m, d := now.Date()
			if ey, em, ed := end.Date(); ey != y || em != m || ed != d || end.Hour() != 0 {
				t.Fatalf("series should end at today's midnight, got %v for now=%v", end, now)
			}
			for i, p := range s.Points {
				if p.Close < MinPrice || p.Close >= MaxPrice {
					t.Fatalf("close %v out of range at %d", p.Close, i)
				}
				if i > 0 && !p.Date.After(s.Points[i-1].Date) {
					t.Fatalf("dates not increasing at %d", i)
				}
			}
		}
	}
}

func TestGenerate_EvenSpacing(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	s := Generate("X", now, rand.New(rand.NewSource(1)))
	step := s.Points[1].Date.Sub(s.Points[0].Date)
	for i := 2; i < Points; i++ {
		d := s.Points[i].Date.Sub(s.Points[i-1].Date)
		if diff := d - step; diff > time.Second || diff < -time.Second {
			t.Fatalf("uneven step at %d: %v vs %v", i, d, step)
		}
	}
}

func TestGenerate_ValuesRegeneratedEachCall(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	a := Generate("IBM", now, nil)
	b := Generate("IBM", now, nil)
	same := true
	for i := range a.Points {
		if a.Points[i].Close != b.Points[i].Close {
			same = false
			break
		}
		if !a.Points[i].Date.Equal(b.Points[i].Date) {
			t.Fatalf("date grid should be deterministic for the same day")
		}
	}
	if same {
		t.Fatalf("re-selection should produce new values")
	}
}
