package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommitFromSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings []debug.BuildSetting
		want     string
	}{
		{name: "none", want: ""},
		{
			name:     "short hash",
			settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
			want:     "0123456",
		},
		{
			name: "dirty tree",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc"},
				{Key: "vcs.modified", Value: "true"},
			},
			want: "abc-dirty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, commitFromSettings(tt.settings))
		})
	}
}

func TestResolveFallbacks(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version, Commit = "", ""
	resolve(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true)
	assert.Equal(t, "dev", Version)
	assert.Equal(t, "unknown", Commit)

	Version, Commit = "", ""
	resolve(&debug.BuildInfo{Main: debug.Module{Version: "v1.2.0"}}, true)
	assert.Equal(t, "v1.2.0 (commit: unknown)", Full())

	Version, Commit = "v9.9.9", "deadbee"
	resolve(nil, false)
	assert.Equal(t, "v9.9.9 (commit: deadbee)", Full())
}
