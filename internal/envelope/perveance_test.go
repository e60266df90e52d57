package envelope

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/beamenv/internal/beam"
)

func TestPerveanceZeroCurrent(t *testing.T) {
	k, err := Perveance(0, 0.073, 1.00266)
	if err != nil {
		t.Fatalf("perveance failed: %v", err)
	}
	if k != 0 {
		t.Errorf("expected zero perveance for zero current, got %g", k)
	}
}

func TestPerveanceReference(t *testing.T) {
	// 14 mA beam at beta=0.073, gamma=1.00266.
	k, err := Perveance(0.014, 0.073, 1.00266)
	if err != nil {
		t.Fatalf("perveance failed: %v", err)
	}
	expected := 2.281499029102312e-06
	if math.Abs(k-expected)/expected > 1e-9 {
		t.Errorf("expected K=%.15e, got %.15e", expected, k)
	}
}

func TestPerveanceFinite(t *testing.T) {
	currents := []float64{0, 1e-6, 0.014, 0.1, 10}
	for _, i := range currents {
		k, err := Perveance(i, 0.5, 1.2)
		if err != nil {
			t.Fatalf("current %g: %v", i, err)
		}
		if math.IsNaN(k) || math.IsInf(k, 0) || k < 0 {
			t.Errorf("current %g: perveance not finite non-negative: %g", i, k)
		}
	}
}

func TestPerveanceInvalidKinematics(t *testing.T) {
	tests := []struct {
		name        string
		beta, gamma float64
	}{
		{"zero beta", 0, 1.5},
		{"negative beta", -0.1, 1.5},
		{"beta one", 1.0, 1.5},
		{"superluminal", 1.2, 1.5},
		{"gamma one", 0.5, 1.0},
		{"gamma below one", 0.5, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Perveance(0.014, tt.beta, tt.gamma); !errors.Is(err, beam.ErrInvalidKinematics) {
				t.Errorf("expected ErrInvalidKinematics, got %v", err)
			}
		})
	}
}

func TestPerveanceNegativeCurrent(t *testing.T) {
	if _, err := Perveance(-0.001, 0.5, 1.2); !errors.Is(err, beam.ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
}
