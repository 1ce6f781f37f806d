package cfr

import (
	"math"
	"testing"
)

func TestMatchRegrets(t *testing.T) {
	cases := []struct {
		name      string
		regretSum []float64
		want      []float64
	}{
		{
			name:      "proportional to positive regret",
			regretSum: []float64{3, 1},
			want:      []float64{0.75, 0.25},
		},
		{
			name:      "negative regrets clamped",
			regretSum: []float64{2, -5, 2},
			want:      []float64{0.5, 0, 0.5},
		},
		{
			name:      "all nonpositive falls back to uniform",
			regretSum: []float64{0, -1, -2, 0},
			want:      []float64{0.25, 0.25, 0.25, 0.25},
		},
		{
			name:      "single dominant action",
			regretSum: []float64{0, 7},
			want:      []float64{0, 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEntry(make([]byte, len(tc.regretSum)))
			copy(e.regretSum, tc.regretSum)

			sigma := make([]float64, len(tc.regretSum))
			e.matchRegrets(sigma)

			for i := range tc.want {
				if math.Abs(sigma[i]-tc.want[i]) > 1e-12 {
					t.Errorf("sigma[%d] = %v, want %v", i, sigma[i], tc.want[i])
				}
			}
		})
	}
}

func TestAverageStrategy(t *testing.T) {
	e := newEntry(make([]byte, 3))
	e.strategySum = []float64{1, 1, 2}

	avg := e.averageStrategy()
	want := []float64{0.25, 0.25, 0.5}
	for i := range want {
		if math.Abs(avg[i]-want[i]) > 1e-12 {
			t.Errorf("avg[%d] = %v, want %v", i, avg[i], want[i])
		}
	}
}

func TestAverageStrategy_NoMassIsUniform(t *testing.T) {
	e := newEntry(make([]byte, 2))

	avg := e.averageStrategy()
	for i := range avg {
		if avg[i] != 0.5 {
			t.Errorf("avg[%d] = %v, want 0.5", i, avg[i])
		}
	}
}

func TestAverageStrategy_IsACopy(t *testing.T) {
	e := newEntry(make([]byte, 2))
	e.strategySum = []float64{1, 3}

	avg := e.averageStrategy()
	e.strategySum[0] = 100

	if avg[0] != 0.25 || avg[1] != 0.75 {
		t.Errorf("average strategy aliased to accumulator: %v", avg)
	}
}

func TestNewEntry_CopiesActions(t *testing.T) {
	actions := []byte{'a', 'b'}
	e := newEntry(actions)

	actions[0] = 'z'
	if e.actions[0] != 'a' {
		t.Errorf("entry aliased to caller's action slice")
	}
}
