package lumen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Rotation modes
type rotateMode int

const (
	rotateNone rotateMode = iota
	rotateSize
	rotateTime
)

// rotationSuffixFormat names time-rotated segments. Lexicographic order of
// the suffix matches chronological order, which retention relies on.
const rotationSuffixFormat = "2006-01-02_15-04-05"

// rotationPolicy decides when the file sink must roll over before a write
// and how the rotated layout looks on disk.
type rotationPolicy struct {
	mode        rotateMode
	maxBytes    int64
	backupCount int
	interval    time.Duration
	utc         bool
	anchor      *anchorClock
}

// anchorClock is an optional time of day fixing the phase of time-based
// rotation boundaries.
type anchorClock struct {
	hour, minute, second int
}

// parseAnchor parses an "HH:MM:SS" anchor time.
func parseAnchor(s string) (*anchorClock, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return nil, configError("invalid anchor_time '%s' (expected HH:MM:SS): %v", s, err)
	}
	return &anchorClock{hour: t.Hour(), minute: t.Minute(), second: t.Second()}, nil
}

// intervalUnits maps configured rotation interval units to durations.
var intervalUnits = map[string]time.Duration{
	"second": time.Second, "s": time.Second,
	"minute": time.Minute, "m": time.Minute,
	"hour": time.Hour, "h": time.Hour,
	"day": 24 * time.Hour, "d": 24 * time.Hour,
}

// newRotationPolicy builds the policy from validated configuration.
func newRotationPolicy(cfg *Config) (rotationPolicy, error) {
	if !cfg.EnableRotation {
		return rotationPolicy{mode: rotateNone}, nil
	}

	switch cfg.RotateBy {
	case "size":
		return rotationPolicy{
			mode:        rotateSize,
			maxBytes:    cfg.MaxSizeBytes,
			backupCount: int(cfg.BackupCount),
		}, nil

	case "time":
		unit, ok := intervalUnits[strings.ToLower(cfg.IntervalUnit)]
		if !ok {
			return rotationPolicy{}, configError("invalid interval_unit '%s' (use second, minute, hour, or day)", cfg.IntervalUnit)
		}
		p := rotationPolicy{
			mode:        rotateTime,
			interval:    time.Duration(cfg.Interval) * unit,
			utc:         cfg.UTC,
			backupCount: int(cfg.BackupCount),
		}
		if p.interval <= 0 {
			return rotationPolicy{}, configError("rotation interval must be positive")
		}
		if cfg.AnchorTime != "" {
			anchor, err := parseAnchor(cfg.AnchorTime)
			if err != nil {
				return rotationPolicy{}, err
			}
			p.anchor = anchor
		}
		return p, nil

	default:
		return rotationPolicy{}, configError("unknown rotate_by mode '%s' (use size or time)", cfg.RotateBy)
	}
}

// now returns the policy's notion of current time.
func (p *rotationPolicy) now() time.Time {
	if p.utc {
		return time.Now().UTC()
	}
	return time.Now()
}

// due reports whether the sink must rotate before appending payload bytes.
// Size policies with maxBytes == 0 never rotate.
func (p *rotationPolicy) due(currentSize, payload int64, last, now time.Time) bool {
	switch p.mode {
	case rotateSize:
		return p.maxBytes > 0 && currentSize+payload > p.maxBytes
	case rotateTime:
		return now.Sub(last) >= p.interval
	default:
		return false
	}
}

// initialRollover computes the rotation base when a sink opens. An existing
// file keeps its modification time as the base so reopening does not reset
// the clock; an anchor snaps the base onto the anchored boundary grid.
func (p *rotationPolicy) initialRollover(now, modTime time.Time) time.Time {
	if p.mode != rotateTime {
		return now
	}
	if p.anchor != nil {
		return p.snapToAnchor(now)
	}
	if !modTime.IsZero() {
		if p.utc {
			return modTime.UTC()
		}
		return modTime
	}
	return now
}

// nextRollover computes the base for the period starting at now, after a
// rotation completed.
func (p *rotationPolicy) nextRollover(now time.Time) time.Time {
	if p.anchor != nil {
		// Preserve the anchored phase instead of drifting with the
		// write that happened to trigger the rotation.
		return p.snapToAnchor(now)
	}
	return now
}

// snapToAnchor returns the most recent boundary at or before now on the
// grid defined by the anchor clock time and the interval.
func (p *rotationPolicy) snapToAnchor(now time.Time) time.Time {
	a := time.Date(now.Year(), now.Month(), now.Day(),
		p.anchor.hour, p.anchor.minute, p.anchor.second, 0, now.Location())
	diff := now.Sub(a)
	n := int64(diff / p.interval)
	if diff < 0 && diff%p.interval != 0 {
		n--
	}
	return a.Add(time.Duration(n) * p.interval)
}

// numberedSegment returns the path of the i-th size-based backup.
func numberedSegment(path string, i int) string {
	return fmt.Sprintf("%s.%d", path, i)
}

// rotateNumbered archives a closed active file into the numbered backup
// chain. Segments are shifted highest index first so no rename ever
// overwrites a not-yet-renamed file; the segment that would exceed
// backupCount is deleted. backupCount == 0 deletes the active file instead
// of keeping it as ".1".
func rotateNumbered(path string, backupCount int) error {
	if backupCount <= 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fsError("failed to remove rotated log file '%s': %v", path, err)
		}
		return nil
	}

	for i := backupCount - 1; i >= 1; i-- {
		src := numberedSegment(path, i)
		if !fileExists(src) {
			continue
		}
		dst := numberedSegment(path, i+1)
		if fileExists(dst) {
			if err := os.Remove(dst); err != nil {
				return fsError("failed to drop backup segment '%s': %v", dst, err)
			}
		}
		if err := os.Rename(src, dst); err != nil {
			return fsError("failed to rename backup segment '%s' to '%s': %v", src, dst, err)
		}
	}

	dst := numberedSegment(path, 1)
	if fileExists(dst) {
		if err := os.Remove(dst); err != nil {
			return fsError("failed to drop backup segment '%s': %v", dst, err)
		}
	}
	if err := os.Rename(path, dst); err != nil {
		return fsError("failed to rename log file '%s' to '%s': %v", path, dst, err)
	}
	return nil
}

// rotateStamped archives a closed active file under a timestamp suffix
// derived from the boundary just completed, then prunes segments beyond
// backupCount, oldest first.
func rotateStamped(path string, boundary time.Time, backupCount int) error {
	dst := path + "." + boundary.Format(rotationSuffixFormat)
	if fileExists(dst) {
		if err := os.Remove(dst); err != nil {
			return fsError("failed to drop stale segment '%s': %v", dst, err)
		}
	}
	if err := os.Rename(path, dst); err != nil {
		return fsError("failed to rename log file '%s' to '%s': %v", path, dst, err)
	}
	return pruneStamped(path, backupCount)
}

// listStamped returns the time-rotated segments of path, oldest first.
func listStamped(path string) ([]string, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fsError("failed to read log directory '%s': %v", dir, err)
	}

	prefix := base + "."
	var segments []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if _, err := time.Parse(rotationSuffixFormat, name[len(prefix):]); err != nil {
			continue
		}
		segments = append(segments, filepath.Join(dir, name))
	}
	// Suffix format sorts chronologically.
	sort.Strings(segments)
	return segments, nil
}

// pruneStamped deletes time-rotated segments beyond backupCount, oldest
// first. backupCount == 0 removes every rotated segment.
func pruneStamped(path string, backupCount int) error {
	segments, err := listStamped(path)
	if err != nil {
		return err
	}
	excess := len(segments) - backupCount
	for i := 0; i < excess; i++ {
		if err := os.Remove(segments[i]); err != nil {
			return fsError("failed to delete expired segment '%s': %v", segments[i], err)
		}
	}
	return nil
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
