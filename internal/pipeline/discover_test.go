package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func touch(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "b.mkv")
	touch(t, root, "a.mkv")
	touch(t, root, "UPPER.MKV")
	touch(t, root, filepath.Join("season1", "ep01.mkv"))
	touch(t, root, "notes.txt")
	touch(t, root, "clip.mp4")
	touch(t, root, ".hidden.mkv")
	touch(t, root, filepath.Join(".cache", "tmp.mkv"))

	got := Discover(root, hclog.NewNullLogger())
	want := []string{
		filepath.Join(root, "UPPER.MKV"),
		filepath.Join(root, "a.mkv"),
		filepath.Join(root, "b.mkv"),
		filepath.Join(root, "season1", "ep01.mkv"),
	}
	if len(got) != len(want) {
		t.Fatalf("Discover = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Discover[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	if got := Discover(filepath.Join(t.TempDir(), "nope"), hclog.NewNullLogger()); got != nil {
		t.Errorf("Discover on missing dir = %v, want nil", got)
	}
}

func TestDiscoverFileAsRoot(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.mkv")
	if got := Discover(filepath.Join(root, "a.mkv"), hclog.NewNullLogger()); got != nil {
		t.Errorf("Discover on a file = %v, want nil", got)
	}
}
