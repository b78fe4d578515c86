package lumen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSink(t *testing.T, policy rotationPolicy) (*FileSink, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	sink, err := newFileSink(path, policy, nil, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sink.Close() })
	return sink, path
}

func TestFileSinkWriteAppendsNewline(t *testing.T) {
	sink, path := newTestSink(t, rotationPolicy{mode: rotateNone})

	require.NoError(t, sink.Write("first"))
	require.NoError(t, sink.Write("second"))
	require.NoError(t, sink.Sync())

	assert.Equal(t, "first\nsecond\n", readFileContent(t, path))
}

func TestFileSinkDeferOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	sink, err := newFileSink(path, rotationPolicy{mode: rotateNone}, nil, true)
	require.NoError(t, err)
	defer sink.Close()

	// No file until the first write.
	assert.False(t, fileExists(path))

	require.NoError(t, sink.Write("hello"))
	assert.Equal(t, "hello\n", readFileContent(t, path))
}

func TestFileSinkReopensAfterClose(t *testing.T) {
	sink, path := newTestSink(t, rotationPolicy{mode: rotateNone})

	require.NoError(t, sink.Write("before"))
	require.NoError(t, sink.Close())

	// A write on a closed sink implicitly reopens in append mode.
	require.NoError(t, sink.Write("after"))
	assert.Equal(t, "before\nafter\n", readFileContent(t, path))
}

func TestFileSinkAppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeFileContent(t, path, "earlier run\n")

	sink, err := newFileSink(path, rotationPolicy{mode: rotateNone}, nil, false)
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Write("this run"))
	assert.Equal(t, "earlier run\nthis run\n", readFileContent(t, path))
}

func TestFileSinkSizeRotation(t *testing.T) {
	sink, path := newTestSink(t, rotationPolicy{
		mode:        rotateSize,
		maxBytes:    32,
		backupCount: 2,
	})

	line := strings.Repeat("x", 20)
	require.NoError(t, sink.Write(line)) // 21 bytes
	require.NoError(t, sink.Write(line)) // would exceed 32, rotates first
	require.NoError(t, sink.Sync())

	assert.Equal(t, line+"\n", readFileContent(t, path))
	assert.Equal(t, line+"\n", readFileContent(t, path+".1"))
}

func TestFileSinkSizeRotationChain(t *testing.T) {
	sink, path := newTestSink(t, rotationPolicy{
		mode:        rotateSize,
		maxBytes:    8,
		backupCount: 2,
	})

	for _, msg := range []string{"one", "two", "three", "four", "five"} {
		require.NoError(t, sink.Write(msg))
	}
	require.NoError(t, sink.Sync())

	// "one" and "two" fit together; each later write rotated the file.
	// Only backupCount segments survive.
	assert.Equal(t, "five\n", readFileContent(t, path))
	assert.Equal(t, "four\n", readFileContent(t, path+".1"))
	assert.Equal(t, "three\n", readFileContent(t, path+".2"))
	assert.False(t, fileExists(path+".3"))
}

func TestFileSinkNoRotationWhenUnlimited(t *testing.T) {
	sink, path := newTestSink(t, rotationPolicy{
		mode:        rotateSize,
		maxBytes:    0,
		backupCount: 3,
	})

	payload := strings.Repeat("y", 4096)
	for i := 0; i < 10; i++ {
		require.NoError(t, sink.Write(payload))
	}
	require.NoError(t, sink.Sync())

	assert.False(t, fileExists(path+".1"))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(10*4097), fi.Size())
}

func TestFileSinkTimeRotation(t *testing.T) {
	sink, path := newTestSink(t, rotationPolicy{
		mode:        rotateTime,
		interval:    time.Hour,
		backupCount: 5,
	})

	require.NoError(t, sink.Write("current period"))

	// Force the period to look expired.
	sink.mu.Lock()
	sink.lastRollover = sink.lastRollover.Add(-2 * time.Hour)
	boundary := sink.lastRollover
	sink.mu.Unlock()

	require.NoError(t, sink.Write("next period"))
	require.NoError(t, sink.Sync())

	assert.Equal(t, "next period\n", readFileContent(t, path))
	stamped := path + "." + boundary.Format(rotationSuffixFormat)
	assert.Equal(t, "current period\n", readFileContent(t, stamped))
}

func TestFileSinkRotationFailureKeepsStateConsistent(t *testing.T) {
	sink, path := newTestSink(t, rotationPolicy{
		mode:        rotateSize,
		maxBytes:    16,
		backupCount: 1,
	})

	require.NoError(t, sink.Write("before"))

	// Occupy the backup slot with a non-empty directory so the rename
	// chain fails before touching the active file.
	obstruction := path + ".1"
	require.NoError(t, os.Mkdir(obstruction, 0755))
	writeFileContent(t, filepath.Join(obstruction, "occupied"), "x")

	err := sink.Write("this line is long enough to rotate")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFilesystem)

	// The failed write recorded no rotation: the active file still holds
	// the earlier content and the sink is left closed.
	assert.Equal(t, "before\n", readFileContent(t, path))
	assert.Equal(t, sinkClosed, sink.state)

	// Once the obstruction is gone, the next write implicitly reopens,
	// reassesses the disk state, and the pending rotation goes through.
	require.NoError(t, os.RemoveAll(obstruction))
	require.NoError(t, sink.Write("this line is long enough to rotate"))
	require.NoError(t, sink.Sync())

	assert.Equal(t, "this line is long enough to rotate\n", readFileContent(t, path))
	assert.Equal(t, "before\n", readFileContent(t, path+".1"))
}

func TestFileSinkEncoding(t *testing.T) {
	enc, err := resolveEncoding("ISO-8859-1")
	require.NoError(t, err)
	require.NotNil(t, enc)

	path := filepath.Join(t.TempDir(), "app.log")
	sink, err := newFileSink(path, rotationPolicy{mode: rotateNone}, enc, false)
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Write("café"))
	require.NoError(t, sink.Sync())

	// Latin-1 encodes é as a single 0xE9 byte.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xE9, '\n'}, data)
}

func TestResolveEncoding(t *testing.T) {
	for _, name := range []string{"", "utf-8", "UTF8"} {
		enc, err := resolveEncoding(name)
		require.NoError(t, err)
		assert.Nil(t, enc, "name %q", name)
	}

	_, err := resolveEncoding("klingon-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestFileSinkLockExcludesSecondSink(t *testing.T) {
	sink, path := newTestSink(t, rotationPolicy{mode: rotateNone})
	require.NoError(t, sink.Write("held"))

	_, err := newFileSink(path, rotationPolicy{mode: rotateNone}, nil, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFilesystem)
}

func TestConsoleSinkWrites(t *testing.T) {
	var buf strings.Builder
	sink := newConsoleSink(&buf)

	require.NoError(t, sink.Write("hello"))
	require.NoError(t, sink.Write("world"))

	assert.Equal(t, "hello\nworld\n", buf.String())
}
