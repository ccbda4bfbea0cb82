package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/molscan/molscan/internal/cache"
	"github.com/molscan/molscan/internal/clipboard"
	"github.com/molscan/molscan/internal/extract"
	"github.com/molscan/molscan/internal/panel"
	"github.com/molscan/molscan/internal/verify"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive structure panel over stdin",
	Long: `Repl reads message text line by line and maintains a live panel of the
verified structures found in the latest line. Pasting a new line replaces
the panel contents; earlier verifications that are still in flight are
discarded.

Commands inside the repl:
  :copy <n>   copy structure n from the current panel to the clipboard
  :quit       exit`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()

	var lookupCache cache.Cache
	if cfg.Cache.Enabled {
		lookupCache = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}
	client := verify.NewPubChemClient(cfg.Verify, cfg.HTTP, lookupCache, cfg.Cache.TTL)

	session := panel.NewSession(
		extract.NewNotationExtractor(),
		verify.NewPipeline(client),
		clipboard.NewService(verbose),
		verbose,
	)
	defer session.Close()

	ctx := context.Background()

	fmt.Println("molscan repl. Paste text to scan, :copy <n> to copy, :quit to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == ":quit" || line == ":q":
			return nil
		case strings.HasPrefix(line, ":copy"):
			replCopy(session, strings.TrimSpace(strings.TrimPrefix(line, ":copy")))
		default:
			session.SetText(ctx, line)
			printPanel(session)
		}
	}

	return scanner.Err()
}

// replCopy copies the n-th structure of the current panel
func replCopy(session *panel.Session, arg string) {
	snap := session.Snapshot()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(snap.Structures) {
		fmt.Printf("usage: :copy <1..%d>\n", len(snap.Structures))
		return
	}

	entry := snap.Structures[n-1]
	if session.Copy(entry) {
		fmt.Printf("copied %s\n", entry)
	} else {
		fmt.Printf("copy failed for %s\n", entry)
	}
}

// printPanel waits for the in-flight verification to settle, then prints
// the structure list. The wait is bounded so a stalled lookup service does
// not hang the prompt.
func printPanel(session *panel.Session) {
	deadline := time.Now().Add(30 * time.Second)
	for {
		snap := session.Snapshot()
		if !snap.Checking {
			if len(snap.Structures) == 0 {
				fmt.Println("no structures found")
				return
			}
			for i, s := range snap.Structures {
				fmt.Printf("  %d. %s\n", i+1, s)
			}
			return
		}
		if time.Now().After(deadline) {
			fmt.Println("still checking, results will apply to the next prompt")
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
}
