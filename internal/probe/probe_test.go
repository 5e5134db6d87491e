package probe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lumduan/hardsub/internal/util"
)

type scriptedRunner struct {
	stdout string
	err    error
	spec   util.CmdSpec
}

func (r *scriptedRunner) Run(_ context.Context, spec util.CmdSpec) (util.CmdResult, error) {
	r.spec = spec
	if r.err != nil {
		return util.CmdResult{Code: 1, Err: r.err}, r.err
	}
	return util.CmdResult{Stdout: []byte(r.stdout)}, nil
}

func TestInspect(t *testing.T) {
	r := &scriptedRunner{stdout: "codec_name=h264\nwidth=1920\nheight=1080\nduration=3600.250000\n"}

	info, err := Inspect(context.Background(), r, "/bin/ffprobe", "/in/a.mkv")
	if err != nil {
		t.Fatalf("Inspect error: %v", err)
	}
	if info.Codec != "h264" {
		t.Errorf("Codec = %q, want h264", info.Codec)
	}
	if info.Width != 1920 || info.Height != 1080 {
		t.Errorf("dimensions = %dx%d, want 1920x1080", info.Width, info.Height)
	}
	if info.DurationSec != 3600.25 {
		t.Errorf("DurationSec = %v, want 3600.25", info.DurationSec)
	}
	if info.Resolution() != "1920x1080" {
		t.Errorf("Resolution() = %q", info.Resolution())
	}

	// The probed file must be the final argument
	if got := r.spec.Args[len(r.spec.Args)-1]; got != "/in/a.mkv" {
		t.Errorf("last arg = %q, want input path", got)
	}
}

func TestInspectPartialOutput(t *testing.T) {
	r := &scriptedRunner{stdout: "codec_name=hevc\nnoise\nwidth=1280\n"}
	info, err := Inspect(context.Background(), r, "/bin/ffprobe", "x.mkv")
	if err != nil {
		t.Fatalf("Inspect error: %v", err)
	}
	if info.Codec != "hevc" || info.Width != 1280 || info.Height != 0 {
		t.Errorf("unexpected info: %+v", info)
	}
	if info.Resolution() != "unknown" {
		t.Errorf("Resolution() = %q, want unknown", info.Resolution())
	}
}

func TestDurationBestEffort(t *testing.T) {
	if d := Duration(context.Background(), &scriptedRunner{}, "", "x.mkv"); d != 0 {
		t.Errorf("Duration with no ffprobe = %v, want 0", d)
	}
	r := &scriptedRunner{err: errors.New("boom")}
	if d := Duration(context.Background(), r, "/bin/ffprobe", "x.mkv"); d != 0 {
		t.Errorf("Duration on probe failure = %v, want 0", d)
	}
	r = &scriptedRunner{stdout: "duration=12.5\n"}
	if d := Duration(context.Background(), r, "/bin/ffprobe", "x.mkv"); d != 12.5 {
		t.Errorf("Duration = %v, want 12.5", d)
	}
}

func TestVersion(t *testing.T) {
	r := &scriptedRunner{stdout: "ffmpeg version 6.1.1 Copyright (c) 2000-2023\nbuilt with gcc\n"}
	v, err := Version(context.Background(), r, "/bin/ffmpeg")
	if err != nil {
		t.Fatalf("Version error: %v", err)
	}
	if !strings.HasPrefix(v, "ffmpeg version 6.1.1") {
		t.Errorf("Version = %q", v)
	}

	if _, err := Version(context.Background(), &scriptedRunner{stdout: ""}, "/bin/ffmpeg"); err == nil {
		t.Error("empty output should be an error")
	}
	if _, err := Version(context.Background(), &scriptedRunner{err: errors.New("no such file")}, "/bin/ffmpeg"); err == nil {
		t.Error("runner failure should be an error")
	}
}
