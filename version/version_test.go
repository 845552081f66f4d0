package version

import "testing"

func TestGet(t *testing.T) {
	old := Version
	Version = "v1.0.0"
	defer func() { Version = old }()

	info := Get()
	if info.Version != "v1.0.0" {
		t.Errorf("expected v1.0.0, got %q", info.Version)
	}
	if len(info.Commit) > 7 {
		t.Errorf("expected short commit, got %q", info.Commit)
	}
}
