package terminal

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestMakeRaw(t *testing.T) {
	t.Parallel()

	var cooked unix.Termios
	cooked.Iflag = unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON | unix.IGNPAR
	cooked.Oflag = unix.OPOST
	cooked.Lflag = unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG | unix.ECHOE
	cooked.Cc[unix.VMIN] = 1
	cooked.Cc[unix.VTIME] = 0

	raw := makeRaw(cooked)

	assert.Equal(t, cooked.Iflag&unix.IGNPAR, raw.Iflag, "only the raw-mode input flags are cleared")
	assert.Zero(t, raw.Oflag&unix.OPOST)
	assert.Equal(t, cooked.Lflag&unix.ECHOE, raw.Lflag)
	assert.NotZero(t, raw.Cflag&unix.CS8)
	assert.Equal(t, uint8(0), uint8(raw.Cc[unix.VMIN]))
	assert.Equal(t, uint8(1), uint8(raw.Cc[unix.VTIME]))
}

func TestEnableRawMode_NotATerminal(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	require.NoError(t, err)
	defer f.Close()

	_, err = EnableRawMode(int(f.Fd()))
	require.ErrorIs(t, err, ErrNotTerminal)
	assert.False(t, IsTerminal(int(f.Fd())))

	_, _, err = Size(int(f.Fd()))
	require.Error(t, err)
}

func TestRestoreNilState(t *testing.T) {
	t.Parallel()

	var s *State
	assert.NoError(t, s.Restore())
}
