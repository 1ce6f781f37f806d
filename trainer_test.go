package cfr

import (
	"math"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

type recordingLogger struct {
	iterations []int
	values     []float64
	convs      []float64
	err        error
}

func (l *recordingLogger) LogMetrics(iteration int, policyValue, nashConv float64) error {
	if l.err != nil {
		return l.err
	}

	l.iterations = append(l.iterations, iteration)
	l.values = append(l.values, policyValue)
	l.convs = append(l.convs, nashConv)
	return nil
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"valid", Config{Iterations: 10}, true},
		{"zero iterations", Config{}, false},
		{"negative iterations", Config{Iterations: -1}, false},
		{"negative interval", Config{Iterations: 10, LogInterval: -5}, false},
		{"explicit interval", Config{Iterations: 10, LogInterval: 5}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}

			if !tc.ok && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestTrain_RejectsInvalidConfig(t *testing.T) {
	s := New[mpState, byte](matchingPennies{}, Params{})
	if err := s.Train(Config{}); err == nil {
		t.Error("Train accepted zero iterations")
	}
}

func TestTrain_LogsOnInterval(t *testing.T) {
	s := New[mpState, byte](biasedPennies{}, Params{})
	logger := &recordingLogger{}

	err := s.Train(Config{Iterations: 100, LogInterval: 10, Logger: logger})
	if err != nil {
		t.Fatal(err)
	}

	want := []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	if !reflect.DeepEqual(logger.iterations, want) {
		t.Errorf("logged iterations = %v, want %v", logger.iterations, want)
	}

	for i, conv := range logger.convs {
		if conv < 0 {
			t.Errorf("NashConv at snapshot %d = %v, want >= 0", i, conv)
		}
	}
}

func TestTrain_ContinuesAcrossCalls(t *testing.T) {
	s := New[mpState, byte](biasedPennies{}, Params{})
	logger := &recordingLogger{}

	if err := s.Train(Config{Iterations: 50, LogInterval: 50, Logger: logger}); err != nil {
		t.Fatal(err)
	}

	if err := s.Train(Config{Iterations: 50, LogInterval: 50, Logger: logger}); err != nil {
		t.Fatal(err)
	}

	want := []int{50, 100}
	if !reflect.DeepEqual(logger.iterations, want) {
		t.Errorf("logged iterations = %v, want %v", logger.iterations, want)
	}

	if got := s.Iterations(); got != 100 {
		t.Errorf("Iterations() = %d, want 100", got)
	}
}

func TestTrain_PropagatesLoggerError(t *testing.T) {
	s := New[mpState, byte](biasedPennies{}, Params{})
	logger := &recordingLogger{err: errors.New("disk full")}

	err := s.Train(Config{Iterations: 10, LogInterval: 1, Logger: logger})
	if err == nil {
		t.Fatal("Train swallowed logger error")
	}
}

func TestTrain_Deterministic(t *testing.T) {
	train := func() Policy {
		s := New[mpState, byte](biasedPennies{}, Params{Variant: Plus})
		if err := s.Train(Config{Iterations: 500}); err != nil {
			t.Fatal(err)
		}

		return s.AverageStrategy()
	}

	a, b := train(), train()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical runs diverged: %v vs %v", a, b)
	}
}

func TestAverageStrategy_SnapshotIsStable(t *testing.T) {
	s := New[mpState, byte](biasedPennies{}, Params{})
	if err := s.Train(Config{Iterations: 100}); err != nil {
		t.Fatal(err)
	}

	snapshot := s.AverageStrategy().Clone()
	mid := s.AverageStrategy()

	if err := s.Train(Config{Iterations: 400}); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(snapshot, mid) {
		t.Error("policy snapshot changed after further training")
	}

	late := s.AverageStrategy()
	if reflect.DeepEqual(mid, late) {
		t.Error("training had no effect on the average strategy")
	}

	convMid := NashConv[mpState, byte](biasedPennies{}, mid)
	convLate := NashConv[mpState, byte](biasedPennies{}, late)
	if convLate > convMid {
		t.Errorf("NashConv increased with training: %v -> %v", convMid, convLate)
	}

	if math.IsNaN(convLate) {
		t.Error("NashConv is NaN")
	}
}
