package clipboard

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
)

// ttyPath is the terminal device used for the OSC 52 fallback (injectable for tests)
var ttyPath = "/dev/tty"

// Service copies text to the system clipboard. It tries the native clipboard
// first and degrades to an OSC 52 escape sequence on the controlling
// terminal, which most modern terminal emulators translate into a clipboard
// write. Service never returns an error: false means both strategies failed.
type Service struct {
	verbose bool
}

// NewService creates a new clipboard service
func NewService(verbose bool) *Service {
	return &Service{verbose: verbose}
}

// Copy writes text to the clipboard and reports success
func (s *Service) Copy(text string) bool {
	if !clipboard.Unsupported {
		if err := clipboard.WriteAll(text); err == nil {
			return true
		} else if s.verbose {
			fmt.Fprintf(os.Stderr, "native clipboard write failed: %v\n", err)
		}
	}

	return s.copyOSC52(text)
}

// copyOSC52 writes an OSC 52 clipboard sequence to the terminal. The device
// handle is closed on every exit path, including panics in the write.
func (s *Service) copyOSC52(text string) (ok bool) {
	tty, err := os.OpenFile(ttyPath, os.O_WRONLY, 0)
	if err != nil {
		if s.verbose {
			fmt.Fprintf(os.Stderr, "open %s: %v\n", ttyPath, err)
		}
		return false
	}
	defer func() {
		_ = tty.Close()
		if r := recover(); r != nil {
			if s.verbose {
				fmt.Fprintf(os.Stderr, "clipboard fallback panic: %v\n", r)
			}
			ok = false
		}
	}()

	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	if _, err := fmt.Fprintf(tty, "\x1b]52;c;%s\x07", encoded); err != nil {
		if s.verbose {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", ttyPath, err)
		}
		return false
	}

	return true
}
