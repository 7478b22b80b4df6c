package buildinfo

import "testing"

func TestCacheScope(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	tests := []struct {
		version, commit string
		want            string
	}{
		{"v1.2.0", "0123456789abcdef", "v1.2.0:"},
		{"dev", "0123456789abcdef", "dev-0123456789ab:"},
		{"dev", "none", "dev-none:"},
	}
	for _, tt := range tests {
		Version, Commit = tt.version, tt.commit
		if got := CacheScope(); got != tt.want {
			t.Errorf("CacheScope(%q, %q) = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}
