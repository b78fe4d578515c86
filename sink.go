package lumen

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/text/encoding"
)

// Sink lifecycle states
type sinkState int

const (
	sinkClosed sinkState = iota
	sinkOpen
)

// FileSink owns the active log file and its rotation policy. A single
// mutex serializes the check-rotate-write sequence so rotations never
// interleave with writes or with each other.
type FileSink struct {
	mu      sync.Mutex
	path    string
	policy  rotationPolicy
	encoder *encoding.Encoder
	lock    *flock.Flock

	file         *os.File
	size         int64
	lastRollover time.Time
	state        sinkState
}

// newFileSink creates the sink for the active log file. Unless deferOpen
// is set, the file is opened (and the advisory lock taken) immediately so
// configuration problems surface at construction time.
func newFileSink(path string, policy rotationPolicy, enc *encoding.Encoder, deferOpen bool) (*FileSink, error) {
	s := &FileSink{
		path:    path,
		policy:  policy,
		encoder: enc,
		lock:    flock.New(path + ".lock"),
	}
	if !deferOpen {
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.openLocked(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// openLocked transitions Closed -> Open: acquires the advisory lock, opens
// the active file for append, and initializes size and rotation base from
// what is already on disk.
func (s *FileSink) openLocked() error {
	locked, err := s.lock.TryLock()
	if err != nil {
		return fsError("failed to lock log file '%s': %v", s.path, err)
	}
	if !locked {
		return fsError("log file '%s' is locked by another process", s.path)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		_ = s.lock.Unlock()
		return fsError("failed to open log file '%s': %v", s.path, err)
	}

	s.file = f
	s.size = 0
	var modTime time.Time
	if fi, statErr := f.Stat(); statErr == nil {
		s.size = fi.Size()
		if fi.Size() > 0 {
			modTime = fi.ModTime()
		}
	}
	s.lastRollover = s.policy.initialRollover(s.policy.now(), modTime)
	s.state = sinkOpen
	return nil
}

// Write appends one rendered line to the active file, rotating first when
// the policy demands it. A write while Closed implicitly opens the sink.
func (s *FileSink) Write(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != sinkOpen {
		if err := s.openLocked(); err != nil {
			return err
		}
	}

	payload := line + "\n"
	data := []byte(payload)
	if s.encoder != nil {
		encoded, err := s.encoder.String(payload)
		if err != nil {
			return encodingError("record not representable in configured encoding: %v", err)
		}
		data = []byte(encoded)
	}

	now := s.policy.now()
	if s.policy.due(s.size, int64(len(data)), s.lastRollover, now) {
		if err := s.rotateLocked(now); err != nil {
			return err
		}
	}

	n, err := s.file.Write(data)
	s.size += int64(n)
	if err != nil {
		return fsError("failed to write to log file '%s': %v", s.path, err)
	}
	return nil
}

// rotateLocked performs Open -> Rotating -> Open. On any failure the sink
// is left Closed with no rotation recorded, so in-memory state never gets
// ahead of what actually happened on disk; the next write reopens and
// reassesses the file as found.
func (s *FileSink) rotateLocked(now time.Time) error {
	if err := s.file.Close(); err != nil {
		s.file = nil
		s.state = sinkClosed
		return fsError("failed to close log file '%s' before rotation: %v", s.path, err)
	}
	s.file = nil
	s.state = sinkClosed

	var err error
	switch s.policy.mode {
	case rotateSize:
		err = rotateNumbered(s.path, s.policy.backupCount)
	case rotateTime:
		err = rotateStamped(s.path, s.lastRollover, s.policy.backupCount)
	}
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fsError("failed to reopen log file '%s' after rotation: %v", s.path, err)
	}
	s.file = f
	s.size = 0
	s.state = sinkOpen
	if s.policy.mode == rotateTime {
		s.lastRollover = s.policy.nextRollover(now)
	}
	return nil
}

// Sync flushes the active file to disk.
func (s *FileSink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != sinkOpen {
		return nil
	}
	if err := s.file.Sync(); err != nil {
		return fsError("failed to sync log file '%s': %v", s.path, err)
	}
	return nil
}

// Close transitions to Closed: syncs and closes the file handle and
// releases the advisory lock. A later write reopens the sink.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.file != nil {
		if syncErr := s.file.Sync(); syncErr != nil {
			err = fsError("failed to sync log file '%s': %v", s.path, syncErr)
		}
		if closeErr := s.file.Close(); closeErr != nil {
			err = combineErrors(err, fsError("failed to close log file '%s': %v", s.path, closeErr))
		}
	}
	s.file = nil
	s.state = sinkClosed

	if s.lock.Locked() {
		if unlockErr := s.lock.Unlock(); unlockErr != nil {
			err = combineErrors(err, fsError("failed to unlock log file '%s': %v", s.path, unlockErr))
		}
	}
	return err
}

// ConsoleSink writes rendered lines to standard output. Its mutex keeps
// escape sequences from interleaving mid-line across goroutines. The
// underlying stream is never closed by the logger.
type ConsoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

// newConsoleSink wraps a writer, defaulting to stdout.
func newConsoleSink(w io.Writer) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleSink{w: w}
}

// Write emits one line to the console.
func (c *ConsoleSink) Write(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := io.WriteString(c.w, line+"\n"); err != nil {
		return fsError("failed to write to console: %v", err)
	}
	return nil
}
