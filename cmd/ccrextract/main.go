// Package main implements the ccrextract CLI tool.
// It reads CCR documents as JSON and emits the extracted clinical records.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	cx "github.com/gofhir/ccrextract"
	"github.com/gofhir/ccrextract/ccr"
	"github.com/gofhir/ccrextract/engine"
	"github.com/gofhir/ccrextract/vocabulary"
	"github.com/gofhir/ccrextract/worker"
)

const (
	version = "0.1.0"
	usage   = `ccrextract - CCR Clinical Record Extractor

Usage:
  ccrextract [options] <file>...
  ccrextract [options] -           (read from stdin)
  cat record.json | ccrextract -   (pipe input)

Examples:
  ccrextract record.json
  ccrextract -vocab terms.json record.json
  ccrextract -output json record.json
  ccrextract -workers 8 records/*.json
  cat record.json | ccrextract -

Options:
`
)

// OutputFormat specifies the output format.
type OutputFormat string

// Output format constants.
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// Config holds CLI configuration
type Config struct {
	VocabFile   string
	Output      OutputFormat
	Workers     int
	Quiet       bool
	Verbose     bool
	ShowVersion bool
	Help        bool
	Files       []string
}

// ExtractionOutput represents the JSON output structure for one document.
type ExtractionOutput struct {
	Source   string           `json:"source"`
	Record   *json.RawMessage `json:"record,omitempty"`
	Issues   []IssueOutput    `json:"issues,omitempty"`
	Duration string           `json:"duration"`
}

// IssueOutput represents a single diagnostic in JSON output
type IssueOutput struct {
	Severity    string `json:"severity"`
	Code        string `json:"code"`
	Diagnostics string `json:"diagnostics"`
	Category    string `json:"category,omitempty"`
	ElementID   string `json:"elementId,omitempty"`
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("ccrextract v%s\n", version)
		os.Exit(0)
	}

	if config.Help || len(config.Files) == 0 {
		flag.Usage()
		os.Exit(0)
	}

	os.Exit(run(config))
}

func parseFlags() *Config {
	config := &Config{Output: OutputText}

	var output string

	flag.StringVar(&config.VocabFile, "vocab", "", "Vocabulary JSON file (defaults to the embedded vocabulary)")
	flag.StringVar(&output, "output", "text", "Output format: text, json")
	flag.IntVar(&config.Workers, "workers", 1, "Number of parallel extraction workers")
	flag.BoolVar(&config.Quiet, "quiet", false, "Only show warnings and errors")
	flag.BoolVar(&config.Verbose, "verbose", false, "Show detailed output")
	flag.BoolVar(&config.ShowVersion, "v", false, "Show version")
	flag.BoolVar(&config.Help, "help", false, "Show help")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	flag.Parse()

	switch strings.ToLower(output) {
	case "json":
		config.Output = OutputJSON
	default:
		config.Output = OutputText
	}

	config.Files = flag.Args()

	return config
}

func run(config *Config) int {
	vocab, err := loadVocabulary(config.VocabFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load vocabulary: %v\n", err)
		return 1
	}

	opts := []cx.Option{cx.WithWorkerCount(config.Workers)}
	if config.Verbose {
		logger, logErr := zap.NewDevelopment()
		if logErr == nil {
			defer logger.Sync()
			opts = append(opts, cx.WithLogger(logger))
		}
	}

	ex, err := engine.New(vocab, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize extractor: %v\n", err)
		return 1
	}

	files, ok := expandFiles(config.Files)
	if !ok {
		return 1
	}

	if !config.Quiet {
		fmt.Fprintf(os.Stderr, "Processing %d document(s)...\n\n", len(files))
	}

	var outputs []ExtractionOutput
	hasErrors := false

	if config.Workers > 1 && len(files) > 1 {
		outputs, hasErrors = runBatch(ex, files, config)
	} else {
		for _, file := range files {
			out, fileErr := extractFile(ex, file, config)
			outputs = append(outputs, out)
			if fileErr {
				hasErrors = true
			}
		}
	}

	if config.Output == OutputJSON {
		jsonOutput, _ := json.MarshalIndent(outputs, "", "  ")
		fmt.Println(string(jsonOutput))
	}

	if hasErrors {
		return 1
	}
	return 0
}

func loadVocabulary(path string) (*vocabulary.Vocabulary, error) {
	if path == "" {
		return vocabulary.Default(), nil
	}
	return vocabulary.LoadFile(path)
}

// expandFiles resolves glob patterns and the stdin marker into a flat list.
func expandFiles(args []string) ([]string, bool) {
	var files []string
	ok := true

	for _, arg := range args {
		if arg == "-" {
			files = append(files, arg)
			continue
		}

		matches, err := filepath.Glob(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error with pattern '%s': %v\n", arg, err)
			ok = false
			continue
		}
		if len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "No files match pattern: %s\n", arg)
			ok = false
			continue
		}
		files = append(files, matches...)
	}

	return files, ok
}

func runBatch(ex *engine.Extractor, files []string, config *Config) ([]ExtractionOutput, bool) {
	pool := worker.NewPool(ex, 0)
	names := make(map[string]string, len(files))
	hasErrors := false

	for _, file := range files {
		doc, err := readDocument(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", file, err)
			hasErrors = true
			continue
		}
		job := worker.NewJob(doc)
		names[job.ID] = file
		pool.Submit(job)
	}

	batch := pool.CloseAndWait()

	outputs := make([]ExtractionOutput, 0, len(batch.Results))
	for _, jr := range batch.Results {
		outputs = append(outputs, buildOutput(names[jr.ID], jr.Result, time.Duration(jr.Duration), config))
		jr.Result.Release()
	}
	return outputs, hasErrors
}

func extractFile(ex *engine.Extractor, path string, config *Config) (ExtractionOutput, bool) {
	doc, err := readDocument(path)
	if err != nil {
		if config.Output == OutputText {
			fmt.Printf("Error reading %s: %v\n", path, err)
		}
		return ExtractionOutput{
			Source: displayName(path),
			Issues: []IssueOutput{{
				Severity:    "error",
				Code:        "exception",
				Diagnostics: fmt.Sprintf("Failed to read document: %v", err),
			}},
		}, true
	}

	start := time.Now()
	res := ex.Extract(doc)
	duration := time.Since(start)
	defer res.Release()

	return buildOutput(displayName(path), res, duration, config), false
}

func readDocument(path string) (*ccr.ContinuityOfCareRecord, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var doc ccr.ContinuityOfCareRecord
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &doc, nil
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}

func buildOutput(name string, res *cx.Result, duration time.Duration, config *Config) ExtractionOutput {
	output := ExtractionOutput{
		Source:   name,
		Duration: duration.Round(time.Microsecond).String(),
	}

	if res.Record != nil {
		if data, err := json.Marshal(res.Record); err == nil {
			raw := json.RawMessage(data)
			output.Record = &raw
		}
	}

	for _, iss := range res.Issues {
		output.Issues = append(output.Issues, IssueOutput{
			Severity:    string(iss.Severity),
			Code:        string(iss.Code),
			Diagnostics: iss.Diagnostics,
			Category:    iss.Category,
			ElementID:   iss.ElementID,
		})
	}

	if config.Output == OutputText {
		printTextResult(name, res, duration, config)
	}

	return output
}

func printTextResult(name string, res *cx.Result, duration time.Duration, config *Config) {
	fmt.Printf("== %s ==\n", name)
	if res.Record != nil {
		rec := res.Record
		if rec.Patient != nil {
			fmt.Printf("Patient: %s %s\n", rec.Patient.First, rec.Patient.Last)
		}
		fmt.Printf("Entities: %d conditions, %d encounters, %d results, %d medications, %d allergies, %d procedures, %d orders\n",
			len(rec.Conditions), len(rec.Encounters), len(rec.Results),
			len(rec.Medications), len(rec.Allergies), len(rec.Procedures), len(rec.Orders))
	}
	fmt.Printf("Diagnostics: %d\n", res.IssueCount())
	fmt.Printf("Duration: %s\n", duration.Round(time.Microsecond))

	if len(res.Issues) > 0 {
		fmt.Println("\nIssues:")
		for _, iss := range res.Issues {
			if config.Quiet && iss.Severity == cx.SeverityInformation {
				continue
			}
			fmt.Printf("  %s [%s] %s\n", severityIcon(iss.Severity), iss.Code, iss.String())
		}
	}

	fmt.Println()
}

func severityIcon(severity cx.IssueSeverity) string {
	switch severity {
	case cx.SeverityError:
		return "ERROR"
	case cx.SeverityWarning:
		return "WARN "
	case cx.SeverityInformation:
		return "INFO "
	default:
		return "     "
	}
}
