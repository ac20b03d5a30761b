package version

import (
	"strings"
	"testing"
)

func TestBanner(t *testing.T) {
	b := Banner()
	if !strings.Contains(b, "AppMachineID (v"+Version+")") {
		t.Errorf("banner missing version line:\n%s", b)
	}
	if !strings.Contains(b, RepoURL) {
		t.Errorf("banner missing repo url:\n%s", b)
	}
}
