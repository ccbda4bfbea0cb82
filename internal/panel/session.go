// Package panel owns the per-message presentation state: the verified
// structure list, the in-flight indicator, and the transient copied marker
// with its timed auto-reset.
package panel

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/molscan/molscan/internal/verify"
)

// timer is the cancelable handle behind the copied-marker auto-reset
type timer interface {
	Stop() bool
}

// Timing hooks are injectable so tests can substitute a fake timer.
var (
	copyResetDelay = 2000 * time.Millisecond
	newTimer       = func(d time.Duration, f func()) timer { return time.AfterFunc(d, f) }
)

// Extractor produces notation candidates from message text
type Extractor interface {
	Extract(text string) []string
}

// Verifier resolves candidates to canonical notations
type Verifier interface {
	Verify(ctx context.Context, candidates []string) []string
}

// Clipboard is the copy boundary used by the session
type Clipboard interface {
	Copy(text string) bool
}

// Snapshot is the render-ready view of a session. A zero-value snapshot
// means the session renders nothing.
type Snapshot struct {
	Structures []string // verified entries, first-seen order, no duplicates
	Checking   bool     // verification in flight
	Copied     string   // last successfully copied entry, empty if none
}

// Session holds the structure list for one rendered message. Each text
// change starts a fresh extraction+verification cycle; a cycle that resolves
// after a newer one has started, or after Close, discards its result instead
// of applying it.
type Session struct {
	extractor Extractor
	verifier  Verifier
	clipboard Clipboard
	verbose   bool

	mu         sync.Mutex
	structures []string
	checking   bool
	copied     string
	copyTimer  timer
	copyEpoch  uint64
	generation uint64
	closed     bool
}

// NewSession creates a session over the given collaborators
func NewSession(extractor Extractor, verifier Verifier, clipboard Clipboard, verbose bool) *Session {
	return &Session{
		extractor: extractor,
		verifier:  verifier,
		clipboard: clipboard,
		verbose:   verbose,
	}
}

// SetText starts a fresh extraction+verification cycle for the given text.
// Verification runs in the background; Snapshot reflects the Checking state
// until the cycle settles or is superseded.
func (s *Session) SetText(ctx context.Context, text string) {
	gen, candidates, ok := s.startCycle(text)
	if !ok {
		return
	}
	go s.runVerification(ctx, gen, candidates)
}

// startCycle resets copy state, extracts candidates, and claims a new
// generation. Returns ok=false when there is nothing to verify.
func (s *Session) startCycle(text string) (uint64, []string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, nil, false
	}

	s.generation++
	s.resetCopyLocked()
	s.structures = nil

	candidates := s.safeExtract(text)
	if len(candidates) == 0 {
		s.checking = false
		return 0, nil, false
	}

	s.checking = true
	return s.generation, candidates, true
}

// safeExtract recovers an extraction panic into an empty candidate list so
// malformed input degrades to a blank panel instead of crashing the host.
func (s *Session) safeExtract(text string) (candidates []string) {
	defer func() {
		if r := recover(); r != nil {
			if s.verbose {
				fmt.Fprintf(os.Stderr, "extraction failed: %v\n", r)
			}
			candidates = nil
		}
	}()
	return s.extractor.Extract(text)
}

func (s *Session) runVerification(ctx context.Context, gen uint64, candidates []string) {
	s.applyResult(gen, s.safeVerify(ctx, candidates))
}

// safeVerify degrades a verifier hard failure to the deduplicated raw
// candidate list; per-item failures are already handled inside the pipeline.
func (s *Session) safeVerify(ctx context.Context, candidates []string) (verified []string) {
	defer func() {
		if r := recover(); r != nil {
			if s.verbose {
				fmt.Fprintf(os.Stderr, "verification failed: %v\n", r)
			}
			verified = verify.Dedupe(candidates)
		}
	}()
	return s.verifier.Verify(ctx, candidates)
}

// applyResult installs a settled verification result unless it is stale: a
// newer cycle has started, or the session was closed while it was in flight.
func (s *Session) applyResult(gen uint64, verified []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.generation {
		return
	}

	s.structures = verified
	s.checking = false
	s.resetCopyLocked()
}

// Copy copies a verified entry to the clipboard. On success the entry is
// marked as copied and a timer is armed to clear the marker after 2 s;
// copying again re-arms the timer instead of stacking expirations. Copy
// failures are reported as false and never disturb the session state.
func (s *Session) Copy(entry string) bool {
	if !s.clipboard.Copy(entry) {
		if s.verbose {
			fmt.Fprintf(os.Stderr, "copy failed for %q\n", entry)
		}
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	if s.copyTimer != nil {
		s.copyTimer.Stop()
	}
	s.copied = entry
	s.copyEpoch++
	epoch := s.copyEpoch
	s.copyTimer = newTimer(copyResetDelay, func() {
		s.expireCopied(epoch)
	})

	return true
}

// expireCopied clears the copied marker when its window elapses. The epoch
// check rejects a callback whose Stop came too late: a re-copy or a new
// cycle has re-armed the marker since this timer was scheduled, and the
// fresh window must run its full course.
func (s *Session) expireCopied(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || epoch != s.copyEpoch {
		return
	}
	s.copied = ""
	s.copyTimer = nil
}

// resetCopyLocked cancels any pending clear timer, drops the copied marker,
// and invalidates any expiry callback already in flight. Callers must hold
// s.mu.
func (s *Session) resetCopyLocked() {
	if s.copyTimer != nil {
		s.copyTimer.Stop()
		s.copyTimer = nil
	}
	s.copied = ""
	s.copyEpoch++
}

// Snapshot returns the current render-ready view of the session
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	structures := make([]string, len(s.structures))
	copy(structures, s.structures)

	return Snapshot{
		Structures: structures,
		Checking:   s.checking,
		Copied:     s.copied,
	}
}

// Close tears the session down: pending timers are cancelled and any
// verification still in flight will discard its result.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.resetCopyLocked()
	s.structures = nil
	s.checking = false
}
