package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/formlens/mcp-survey-reader/internal/pdf"
	"github.com/formlens/mcp-survey-reader/internal/schema"
	"github.com/formlens/mcp-survey-reader/internal/synth"
)

var (
	outputDir    = flag.String("output", "./output", "Directory to save output JSON files")
	numResponses = flag.Int("responses", 10, "Number of synthetic responses to generate per questionnaire")
	seed         = flag.Int64("seed", synth.DefaultSeed, "Random seed for reproducibility")
	outputFormat = flag.String("format", "text", "Summary output format: text, json")
	maxFileSize  = flag.Int64("maxfilesize", 100*1024*1024, "Maximum PDF file size in bytes")
	workers      = flag.Int("workers", runtime.NumCPU(), "Number of parallel extraction workers")
	verbose      = flag.Bool("verbose", false, "Enable verbose output")
	help         = flag.Bool("help", false, "Show help message")
)

const dirPerm = 0o750

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: questionnaire directory required\n\n")
		printUsage()
		os.Exit(1)
	}

	inputDir := flag.Arg(0)
	if _, err := os.Stat(inputDir); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: directory not found: %s\n", inputDir)
		os.Exit(1)
	}

	if err := run(inputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inputDir string) error {
	if err := os.MkdirAll(*outputDir, dirPerm); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", *outputDir, err)
	}

	search := pdf.NewSearch(*maxFileSize)
	files, err := search.FindPDFsInDirectory(inputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No PDF files found in %s\n", inputDir)
		return nil
	}

	fmt.Printf("Found %d PDF questionnaire(s)\n", len(files))

	schemas := extractAll(files)

	schemaPath := filepath.Join(*outputDir, "questionnaire_schemas.json")
	if err := writeJSON(schemaPath, schemas); err != nil {
		return err
	}
	fmt.Printf("Saved questionnaire schemas to: %s\n", schemaPath)

	fmt.Printf("Generating %d synthetic responses per questionnaire...\n", *numResponses)
	session := synth.NewSession(*seed)
	result := session.GenerateDataset(schemas, *numResponses)

	dataPath := filepath.Join(*outputDir, "synthetic_responses.json")
	if err := writeJSON(dataPath, result); err != nil {
		return err
	}
	fmt.Printf("Saved synthetic response data to: %s\n", dataPath)

	return printSummary(result)
}

// extractAll extracts question schemas from all files using a bounded worker
// pool. A file whose text cannot be read still yields a default-question
// schema so the output always has one schema per questionnaire.
func extractAll(files []pdf.FileInfo) []*schema.DocumentSchema {
	reader := pdf.NewReader(*maxFileSize)
	extractor := schema.NewExtractor()

	poolSize := *workers
	if poolSize < 1 {
		poolSize = 1
	}
	if poolSize > len(files) {
		poolSize = len(files)
	}

	type job struct {
		index int
		file  pdf.FileInfo
	}

	jobs := make(chan job)
	schemas := make([]*schema.DocumentSchema, len(files))

	var wg sync.WaitGroup
	for w := 0; w < poolSize; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				title := schema.TitleFromFilename(j.file.Path)

				read, err := reader.ReadFile(pdf.ReadFileRequest{Path: j.file.Path})
				if err != nil {
					log.Printf("Failed to read %s: %v", j.file.Path, err)
					schemas[j.index] = extractor.Extract("", title, j.file.Path)
					continue
				}

				if *verbose {
					fmt.Printf("Parsing: %s\n", j.file.Name)
				}
				schemas[j.index] = extractor.Extract(read.Content, title, j.file.Path)
			}
		}()
	}

	// Stable output order regardless of walk order
	sort.Slice(files, func(a, b int) bool { return files[a].Path < files[b].Path })
	for i, file := range files {
		jobs <- job{index: i, file: file}
	}
	close(jobs)
	wg.Wait()

	for i, doc := range schemas {
		fmt.Printf("  %s: %d question(s)\n", files[i].Name, len(doc.Questions))
	}

	return schemas
}

func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func printSummary(result *synth.GenerationResult) error {
	if *outputFormat == "json" {
		data, err := json.MarshalIndent(summaryOf(result), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println("\nGENERATION SUMMARY")
	for _, dataset := range result.Datasets {
		fmt.Printf("\n%s\n", dataset.Questionnaire)
		fmt.Printf("  Questions: %d\n", dataset.TotalQuestions)
		fmt.Printf("  Responses: %d\n", dataset.TotalResponses)
		fmt.Printf("  Total data points: %d\n", dataset.TotalQuestions*dataset.TotalResponses)
	}
	fmt.Printf("\nAll files saved to: %s\n", *outputDir)
	return nil
}

type datasetSummary struct {
	Questionnaire  string `json:"questionnaire"`
	TotalQuestions int    `json:"totalQuestions"`
	TotalResponses int    `json:"totalResponses"`
	DataPoints     int    `json:"dataPoints"`
}

type runSummary struct {
	RunID     string           `json:"runId"`
	Seed      int64            `json:"seed"`
	OutputDir string           `json:"outputDir"`
	Datasets  []datasetSummary `json:"datasets"`
}

func summaryOf(result *synth.GenerationResult) runSummary {
	summary := runSummary{
		RunID:     result.RunID,
		Seed:      result.Seed,
		OutputDir: *outputDir,
	}
	for _, dataset := range result.Datasets {
		summary.Datasets = append(summary.Datasets, datasetSummary{
			Questionnaire:  dataset.Questionnaire,
			TotalQuestions: dataset.TotalQuestions,
			TotalResponses: dataset.TotalResponses,
			DataPoints:     dataset.TotalQuestions * dataset.TotalResponses,
		})
	}
	return summary
}

func printHelp() {
	fmt.Println("Survey Generate - Parse PDF questionnaires and generate synthetic response data")
	fmt.Println()
	fmt.Println("The tool extracts a question schema from every PDF questionnaire in a")
	fmt.Println("directory, then generates seeded synthetic responses for each schema.")
	fmt.Println("Two JSON artifacts are written to the output directory:")
	fmt.Println("  questionnaire_schemas.json   extracted question schemas")
	fmt.Println("  synthetic_responses.json     generated response datasets")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -output       Directory to save output JSON files (default ./output)")
	fmt.Println("  -responses    Synthetic responses per questionnaire (default 10)")
	fmt.Println("  -seed         Random seed for reproducibility (default 42)")
	fmt.Println("  -format       Summary output format: text (default), json")
	fmt.Println("  -maxfilesize  Maximum PDF file size in bytes")
	fmt.Println("  -workers      Number of parallel extraction workers")
	fmt.Println("  -verbose      Enable verbose output")
	fmt.Println("  -help         Show this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  survey_generate ./questionnaires")
	fmt.Println("  survey_generate -responses 50 -seed 7 ./questionnaires")
	fmt.Println("  survey_generate -format json -output ./data ./questionnaires")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  survey_generate [OPTIONS] <survey_directory>")
}
