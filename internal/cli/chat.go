package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/molscan/molscan/internal/cache"
	"github.com/molscan/molscan/internal/chat"
	"github.com/molscan/molscan/internal/keys"
	"github.com/molscan/molscan/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	chatModel   string
	chatBaseURL string
	chatTimeout time.Duration
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat <prompt>",
	Short: "Ask a chemistry question and scan the streamed reply",
	Long: `Chat sends the prompt to an OpenAI-compatible model, streams the reply
to stdout, and then runs the full scan over it: every SMILES notation the
model produced is verified against PubChem and listed with the report.

Requires OPENAI_API_KEY (or --base-url pointing at a keyless local server).

Example:
  molscan chat "What is the structure of aspirin?"
  molscan chat "Draw caffeine" --model gpt-4o --json report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&chatModel, "model", "gpt-4o-mini", "chat model name")
	chatCmd.Flags().StringVar(&chatBaseURL, "base-url", "", "OpenAI-compatible endpoint (e.g. Ollama)")
	chatCmd.Flags().DurationVar(&chatTimeout, "chat-timeout", 60*time.Second, "chat request timeout")

	chatCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	chatCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
}

func runChat(cmd *cobra.Command, args []string) error {
	prompt := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), chatTimeout+2*time.Minute)
	defer cancel()

	cfg := buildConfig()
	cfg.Chat.Model = chatModel
	cfg.Chat.BaseURL = chatBaseURL
	cfg.Chat.Timeout = chatTimeout

	// A keyless local endpoint still needs a placeholder token.
	apiKey := "unused"
	if cfg.Chat.BaseURL == "" {
		provider := keys.NewProvider(cache.NewMemoryCache(cfg.Chat.KeyTTL, time.Minute), cfg.Chat.KeyTTL, nil)
		key, err := provider.Get("OPENAI_API_KEY")
		if err != nil {
			return err
		}
		apiKey = key
	}

	client, err := chat.NewClient(cfg.Chat, apiKey)
	if err != nil {
		return fmt.Errorf("chat client: %w", err)
	}

	reply, err := client.Ask(ctx, prompt, func(delta string) {
		fmt.Print(delta)
	})
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}
	fmt.Println()

	if verbose {
		fmt.Fprintf(os.Stderr, "\nScanning reply (%d bytes)...\n", len(reply))
	}

	p := pipeline.NewPipeline(cfg)
	report := p.ScanText(ctx, "chat", reply)

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
