package player

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type started struct {
	name string
	args []string
}

func newTestLauncher(command string, args []string, goos string) (*Launcher, *[]started) {
	var calls []started
	l := NewLauncher(command, args, nil)
	l.goos = goos
	l.start = func(name string, args ...string) error {
		calls = append(calls, started{name: name, args: args})
		return nil
	}
	return l, &calls
}

func TestLaunch_SystemDefault(t *testing.T) {
	const video = "https://videos.example.com/zornhau.mp4?t=10"

	tests := []struct {
		goos string
		want started
	}{
		{"linux", started{"xdg-open", []string{video}}},
		{"darwin", started{"open", []string{video}}},
		{"windows", started{"cmd", []string{"/c", "start", "", video}}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			l, calls := newTestLauncher("", nil, tt.goos)
			require.NoError(t, l.Launch(video))
			require.Len(t, *calls, 1)
			assert.Equal(t, tt.want, (*calls)[0])
		})
	}
}

func TestLaunch_ConfiguredPlayer(t *testing.T) {
	l, calls := newTestLauncher("sh", []string{"--fs"}, "linux")

	require.NoError(t, l.Launch("https://videos.example.com/a.mp4"))

	require.Len(t, *calls, 1)
	assert.Equal(t, started{"sh", []string{"--fs", "https://videos.example.com/a.mp4"}}, (*calls)[0])
}

func TestLaunch_RejectsInvalidURL(t *testing.T) {
	l, calls := newTestLauncher("", nil, "linux")

	assert.Error(t, l.Launch("not a url"))
	assert.Error(t, l.Launch("://bad"))
	assert.Empty(t, *calls)
}

func TestLaunch_PropagatesStartError(t *testing.T) {
	l := NewLauncher("", nil, nil)
	l.goos = "linux"
	l.start = func(string, ...string) error { return errors.New("xdg-open: not found") }

	assert.EqualError(t, l.Launch("https://videos.example.com/a.mp4"), "xdg-open: not found")
}
