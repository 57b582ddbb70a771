package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/csheth/patentai/internal/analysis"
	"github.com/csheth/patentai/internal/ideafile"
	"github.com/csheth/patentai/internal/logging"
	"github.com/csheth/patentai/internal/search"
	"github.com/csheth/patentai/internal/session"
)

const reportWidth = 78

func newAnalyzeCmd(opts *globalOptions) *cobra.Command {
	var (
		idea     string
		ideaPath string
		compare  bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Search for similar patents without the interactive UI",
		Example: `  patentai analyze --idea "a smart coffee mug that keeps every drink at the perfect temperature"
  patentai analyze --idea-file disclosure.pdf --compare`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ideaPath != "" {
				loaded, err := ideafile.Load(ideaPath)
				if err != nil {
					return err
				}
				idea = loaded
			}
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			logger, err := logging.Initialize(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
			if err != nil {
				return err
			}
			defer logging.Sync()

			client, err := newSearchClient(cfg)
			if err != nil {
				return err
			}
			logger.Debug("headless analysis", zap.String("endpoint", client.Endpoint()))
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.Timeout)
			defer cancel()
			return runAnalysis(ctx, cmd.OutOrStdout(), client, idea, compare)
		},
	}
	cmd.Flags().StringVar(&idea, "idea", "", "invention description (at least 10 words)")
	cmd.Flags().StringVar(&ideaPath, "idea-file", "", "read the invention description from a .txt, .md or .pdf file")
	cmd.Flags().BoolVar(&compare, "compare", false, "print a comparative analysis for every matched patent")
	return cmd
}

// runAnalysis drives the same session transitions as the interactive client
// and prints the resulting transcript.
func runAnalysis(ctx context.Context, out io.Writer, client search.Client, idea string, compare bool) error {
	var state session.State
	sub, ok := state.Submit(idea)
	if !ok {
		return fmt.Errorf("idea must contain at least %d words, got %d", session.MinIdeaWords, session.WordCount(idea))
	}

	patents, searchErr := client.FindSimilar(ctx, sub.Idea)
	if searchErr != nil {
		state.Fail(sub.ID)
	} else {
		state.Complete(sub.ID, patents)
	}

	writeTranscript(out, state.Messages)
	if compare && searchErr == nil {
		for _, patent := range state.Patents() {
			writeAnalysis(out, patent, analysis.Generate(state.Idea, patent))
		}
	}
	if searchErr != nil {
		return fmt.Errorf("analyze: %w", searchErr)
	}
	return nil
}

func writeTranscript(out io.Writer, messages []session.Message) {
	number := 0
	for _, msg := range messages {
		switch msg.Kind {
		case session.KindUser:
			fmt.Fprintf(out, "You:\n%s\n\n", block(msg.Text, 2))
		case session.KindAI:
			fmt.Fprintf(out, "Analyst:\n%s\n\n", block(msg.Text, 2))
		case session.KindPatent:
			number++
			p := msg.Patent
			fmt.Fprintf(out, "  [%d] %s\n", number, p.Title)
			fmt.Fprintf(out, "%s\n", block(p.AbstractPreview(), 6))
			fmt.Fprintf(out, "      Relevance: %.3f  ·  %s\n\n", p.Score, p.PublicationNumber)
		}
	}
}

func writeAnalysis(out io.Writer, patent search.Patent, result analysis.Analysis) {
	header := fmt.Sprintf("Comparative Analysis: %s", patent.PublicationNumber)
	fmt.Fprintf(out, "%s\n%s\n", header, strings.Repeat("=", len(header)))
	fmt.Fprintf(out, "Novelty: %.1f / 10 (%s)\n\n", result.NoveltyScore, result.Band().Label())
	fmt.Fprintf(out, "EXPERT OPINION\n%s\n\n", block(result.ExpertOpinion, 2))
	fmt.Fprintf(out, "Key Similarities Found\n%s\n\n", block(result.KeySimilarities, 2))
	fmt.Fprintf(out, "Key Differences (Points of Novelty)\n%s\n\n", block(result.KeyDifferences, 2))
}

func block(text string, margin uint) string {
	return indent.String(wordwrap.String(text, reportWidth-int(margin)), margin)
}
