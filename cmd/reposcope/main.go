package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"reposcope/internal/config"
	"reposcope/internal/domain"
	"reposcope/internal/extractor"
	"reposcope/internal/fingerprint"
	"reposcope/internal/reasoner"
	"reposcope/internal/segmenter"
	"reposcope/internal/service"
	"reposcope/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var jsonOut bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/reposcope/config.yaml if not provided)")
	flag.BoolVar(&jsonOut, "json", false, "Print the summary as JSON and exit instead of opening the TUI")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Usage: reposcope [--config=config.yaml] [--json] file1 [file2 ...] (use - for stdin)")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	text, err := readInputs(inputs)
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}

	// Assemble components
	var seg domain.Segmenter
	switch cfg.Segmenter.Type {
	case "word", "":
		seg = segmenter.NewWordSegmenter(cfg.Segmenter.ChunkSize)
	default:
		log.Fatalf("unknown segmenter: %s", cfg.Segmenter.Type)
	}

	var fp domain.Fingerprinter
	switch cfg.Fingerprint.Type {
	case "digest", "":
		fp = fingerprint.NewDigest(cfg.Fingerprint.Algorithm)
	default:
		log.Fatalf("unknown fingerprint: %s", cfg.Fingerprint.Type)
	}

	var ext domain.Extractor
	switch cfg.Extractor.Type {
	case "pattern", "":
		ext = extractor.NewPatternExtractor(cfg.Extractor.ExtraKeywords)
	default:
		log.Fatalf("unknown extractor: %s", cfg.Extractor.Type)
	}

	flow := reasoner.NewFlowReasoner(
		cfg.Reasoner.MaxFlowSteps,
		cfg.Reasoner.CycleFallbackNodes,
		cfg.Reasoner.MaxComponents,
		cfg.Reasoner.MaxFunctions,
	)

	svc := service.NewAnalyzer(seg, fp, ext, flow)
	summary := svc.Analyze(text)

	if jsonOut {
		data, err := json.Marshal(summary)
		if err != nil {
			log.Fatalf("failed to encode summary: %v", err)
		}
		fmt.Println(string(data))
		return
	}

	m := tui.New(svc, summary)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

func readInputs(paths []string) (string, error) {
	var b strings.Builder
	for _, p := range paths {
		if p == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return "", err
			}
			b.Write(data)
			b.WriteString("\n")
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return "", err
		}
		b.Write(data)
		b.WriteString("\n")
	}
	return b.String(), nil
}
