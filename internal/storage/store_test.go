package storage

import (
	"context"
	"testing"

	"github.com/san-kum/beamenv/internal/beam"
)

func testParams() beam.Params {
	return beam.Params{
		Current:   0.014,
		Beta:      0.073,
		Gamma:     1.00266,
		R0:        0.005,
		RP0:       0.001,
		Emittance: 1.2e-6,
		Steps:     1000,
		FinalZ:    1.0,
	}
}

func testTrajectory() *beam.Trajectory {
	return &beam.Trajectory{
		Z: []float64{0, 0.001, 0.002},
		R: []float64{0.005, 0.005001, 0.0050021},
	}
}

func openStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	metrics := map[string]float64{"growth": 1.2, "peak_radius": 0.006}
	id, err := st.SaveRun(ctx, "ralston", testParams(), metrics, testTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Fatal("empty run id")
	}

	meta, err := st.LoadRun(ctx, id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Stepper != "ralston" {
		t.Errorf("expected stepper ralston, got %q", meta.Stepper)
	}
	if meta.Params != testParams() {
		t.Errorf("params mismatch: %+v", meta.Params)
	}
	if meta.Metrics["growth"] != 1.2 {
		t.Errorf("expected growth metric 1.2, got %g", meta.Metrics["growth"])
	}
	if meta.CreatedAt.IsZero() {
		t.Error("created_at not recorded")
	}
}

func TestLoadTrajectory(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	want := testTrajectory()
	id, err := st.SaveRun(ctx, "rk4", testParams(), nil, want)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := st.LoadTrajectory(ctx, id)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}

	if got.Len() != want.Len() {
		t.Fatalf("expected %d samples, got %d", want.Len(), got.Len())
	}
	for i := range want.Z {
		if got.Z[i] != want.Z[i] || got.R[i] != want.R[i] {
			t.Errorf("sample %d mismatch: (%g,%g) vs (%g,%g)", i, got.Z[i], got.R[i], want.Z[i], want.R[i])
		}
	}
}

func TestListRuns(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	runs, err := st.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected empty catalog, got %d runs", len(runs))
	}

	if _, err := st.SaveRun(ctx, "ralston", testParams(), nil, testTrajectory()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.SaveRun(ctx, "rk4", testParams(), nil, testTrajectory()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()

	if _, err := st.LoadRun(ctx, "env_0"); err == nil {
		t.Error("expected error for unknown run id")
	}
	if _, err := st.LoadTrajectory(ctx, "env_0"); err == nil {
		t.Error("expected error for unknown run id")
	}
}
