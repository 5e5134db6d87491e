package encoder

import (
	"testing"

	"github.com/lumduan/hardsub/internal/progress"
)

func TestProgressStateUpdateFromLine(t *testing.T) {
	var ps ProgressState

	if _, ok := ps.UpdateFromLine("frame=120", "job-0", 60); ok {
		t.Error("non key=value progress line should not emit an update")
	}
	if _, ok := ps.UpdateFromLine("out_time_ms=30000000", "job-0", 60); ok {
		t.Error("out_time_ms alone should not emit an update")
	}
	if _, ok := ps.UpdateFromLine("speed=1.5x", "job-0", 60); ok {
		t.Error("speed alone should not emit an update")
	}
	ps.UpdateFromLine("total_size=2048", "job-0", 60)

	u, ok := ps.UpdateFromLine("progress=continue", "job-0", 60)
	if !ok {
		t.Fatal("progress marker should emit an update")
	}
	if u.Stage != progress.StageEncoding {
		t.Errorf("Stage = %v, want encoding", u.Stage)
	}
	// 30s of 60s media
	if u.Percent != 50 {
		t.Errorf("Percent = %v, want 50", u.Percent)
	}
	if u.Speed == nil || *u.Speed != "1.5x" {
		t.Errorf("Speed = %v, want 1.5x", u.Speed)
	}
	if u.Bytes == nil || *u.Bytes != 2048 {
		t.Errorf("Bytes = %v, want 2048", u.Bytes)
	}
}

func TestProgressStateUnknownDuration(t *testing.T) {
	var ps ProgressState
	ps.UpdateFromLine("out_time_ms=30000000", "job-0", 0)

	u, ok := ps.UpdateFromLine("progress=continue", "job-0", 0)
	if !ok {
		t.Fatal("progress marker should emit an update")
	}
	if u.Percent >= 0 {
		t.Errorf("Percent = %v, want negative (unknown)", u.Percent)
	}
}

func TestProgressStatePercentClamped(t *testing.T) {
	var ps ProgressState
	ps.UpdateFromLine("out_time_ms=90000000", "job-0", 60)

	u, _ := ps.UpdateFromLine("progress=end", "job-0", 60)
	if u.Percent != 100 {
		t.Errorf("Percent = %v, want clamped to 100", u.Percent)
	}
}
