package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lexigest/lexigest/internal/analysis"
	"github.com/lexigest/lexigest/internal/config"
	"github.com/lexigest/lexigest/internal/filetext"
	"github.com/lexigest/lexigest/internal/llm"
	"github.com/lexigest/lexigest/internal/report"
)

var (
	language string
	role     string
	format   string
	outPath  string
	pretty   bool
	timeout  time.Duration
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a contract file and print the structured report",
	Long: `Analyze extracts text from a PDF, DOCX, TXT, MD or HTML contract and
runs the full review pipeline:
- Contract type detection and clause segmentation
- Entity, date and financial extraction
- Clause-level intent, risk and fairness flags
- Composite risk score, renegotiation suggestions, executive summary

Translation and plain-language notes use an LLM only when provider
keys are configured in the environment; everything else runs offline.

Example:
  lexigest analyze vendor_agreement.pdf
  lexigest analyze lease.docx --language hindi --role tenant
  lexigest analyze msa.txt --format pdf --out report.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&language, "language", "english", "contract language (translated to English when a provider is configured)")
	analyzeCmd.Flags().StringVar(&role, "role", "", "your role in the contract (e.g. vendor, client, tenant)")
	analyzeCmd.Flags().StringVar(&format, "format", "json", "output format: json or pdf")
	analyzeCmd.Flags().StringVar(&outPath, "out", "", "output path (default: stdout for json, contract_analysis_report.pdf for pdf)")
	analyzeCmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall analysis timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ex, err := filetext.ForFile(path)
	if err != nil {
		return err
	}
	if p, ok := ex.(*filetext.PDFExtractor); ok {
		p.FallbackPdftotext = cfg.PDFFallbackPdftotext
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	text, err := ex.Extract(f, path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text extracted from %s", path)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	provider, err := llm.NewProvider(llm.Config{
		Provider:        cfg.LLMProvider,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		AnthropicModel:  cfg.AnthropicModel,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		OpenAIModel:     cfg.OpenAIModel,
		Timeout:         cfg.LLMTimeout,
	})
	if err != nil {
		return err
	}
	stats := llm.NewStats(time.Hour)

	var translator analysis.Translator
	if provider != nil {
		translator = llm.NewTranslator(provider, stats, log)
	}
	var enhancer analysis.Enhancer
	if cfg.LLMEnhance && provider != nil {
		enhancer = llm.NewEnhancer(provider, stats, log)
	}

	result := analysis.New(translator, enhancer, log).Analyze(ctx, text, language, role)

	switch format {
	case "json":
		var data []byte
		if pretty {
			data, err = json.MarshalIndent(result, "", "  ")
		} else {
			data, err = json.Marshal(result)
		}
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		data = append(data, '\n')
		if outPath == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		return os.WriteFile(outPath, data, 0o644)

	case "pdf":
		pdfBytes, err := report.BuildPDF(result)
		if err != nil {
			return fmt.Errorf("failed to build PDF: %w", err)
		}
		out := outPath
		if out == "" {
			out = "contract_analysis_report.pdf"
		}
		if err := os.WriteFile(out, pdfBytes, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", out)
		return nil
	}
	return fmt.Errorf("unknown format: %s (supported: json, pdf)", format)
}
