package ingest

import (
	"runtime"
	"testing"
)

func TestWorkerCountClampsToAtLeastOne(t *testing.T) {
	if got := WorkerCount(-5); got < 1 {
		t.Fatalf("expected WorkerCount to clamp negative input to >=1, got %d", got)
	}
}

func TestWorkerCountPassesThroughPositive(t *testing.T) {
	if got := WorkerCount(4); got != 4 {
		t.Fatalf("expected explicit worker count to pass through, got %d", got)
	}
}

func TestWorkerCountDefaultsToNumCPU(t *testing.T) {
	got := WorkerCount(0)
	want := runtime.NumCPU()
	if want < 1 {
		want = 1
	}
	if got != want {
		t.Fatalf("expected WorkerCount(0) to use NumCPU=%d, got %d", want, got)
	}
}
