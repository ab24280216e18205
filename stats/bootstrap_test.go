package stats

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

func TestBootstrapMeanCI(t *testing.T) {
	data := []float64{2.1, 1.9, 2.4, 2.2, 1.8, 2.0, 2.3, 1.7, 2.5, 2.0}
	samples, err := Bootstrap(rand.New(rand.NewSource(0)), data, 2000, func(resample []float64) float64 {
		return stat.Mean(resample, nil)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 2000 {
		t.Fatalf("expected 2000 samples but got %d", len(samples))
	}

	low, high, err := PercentileCI(samples, 0.95)
	if err != nil {
		t.Fatal(err)
	}
	mean := stat.Mean(data, nil)
	if low >= high {
		t.Fatalf("interval [%f, %f] is inverted", low, high)
	}
	if mean < low || mean > high {
		t.Errorf("sample mean %f outside interval [%f, %f]", mean, low, high)
	}
	if low < 1.7 || high > 2.5 {
		t.Errorf("interval [%f, %f] exceeds the data range", low, high)
	}
}

func TestBootstrapReproducible(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	identity := func(resample []float64) float64 {
		return resample[0]
	}
	samples1, err := Bootstrap(rand.New(rand.NewSource(1)), data, 50, identity)
	if err != nil {
		t.Fatal(err)
	}
	samples2, err := Bootstrap(rand.New(rand.NewSource(1)), data, 50, identity)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(samples1, samples2) {
		t.Error("same seed produced different samples")
	}
}

func TestBootstrapErrors(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	mean := func(resample []float64) float64 {
		return stat.Mean(resample, nil)
	}
	if _, err := Bootstrap(r, nil, 10, mean); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput but got %v", err)
	}
	if _, err := Bootstrap(r, []float64{1}, 0, mean); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput but got %v", err)
	}
	if _, err := Bootstrap(r, []float64{1}, 10, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput but got %v", err)
	}
}

func TestPercentileCIErrors(t *testing.T) {
	if _, _, err := PercentileCI(nil, 0.95); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput but got %v", err)
	}
	for _, level := range []float64{0, 1, -0.5, 2} {
		if _, _, err := PercentileCI([]float64{1, 2}, level); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for level %f but got %v", level, err)
		}
	}
}

func TestPercentileCIDoesNotMutate(t *testing.T) {
	samples := []float64{5, 1, 4, 2, 3}
	if _, _, err := PercentileCI(samples, 0.5); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(samples, []float64{5, 1, 4, 2, 3}) {
		t.Error("interval computation reordered its input")
	}
}
