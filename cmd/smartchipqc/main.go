// smartchipqc runs standard-curve QC and copy-number quantification on
// SmartChip qPCR exports and writes the assay, LIMS and full reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"golang.org/x/sync/errgroup"

	"github.com/carbocation/smartchip"
	"github.com/carbocation/smartchip/analyzer"
	"github.com/carbocation/smartchip/compileinfo"
	"github.com/carbocation/smartchip/dataset"
	"github.com/carbocation/smartchip/quantify"
	"github.com/carbocation/smartchip/report"
)

const outputSubdir = "sma_output"

var client *storage.Client

func main() {
	defaults := analyzer.DefaultConfig()

	var input, output, configFile, replacements, magnitudes string
	var workers int
	var sampleReport, showVersion bool
	flags := configFlags{}

	flag.StringVar(&input, "input", "", "Input file from the SmartChip qPCR, or a directory of them. Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&output, "output", "", "Output directory. Reports are written to its sma_output subdirectory. Defaults to the directory containing --input")
	flag.StringVar(&configFile, "config", "", "Optional YAML file with analysis settings. Flags given on the command line take precedence")
	flag.StringVar(&replacements, "replacements", "", "Optional file with replacement standards, used when an assay's standard curve fails QC")
	flag.StringVar(&magnitudes, "magnitudes", "", "Optional file of assay:coefficient lines that copy numbers are multiplied by")
	flag.StringVar(&flags.Assay, "assay", defaults.AssayColumn, "Column name in the input file to use for the assay")
	flag.StringVar(&flags.Sample, "sample", defaults.SampleColumn, "Column name in the input file to use for the sample identifier")
	flag.StringVar(&flags.Ct, "ct", defaults.CtColumn, "Column name in the input file to use for the cycle thresholds")
	flag.StringVar(&flags.Efficiency, "efficiency", defaults.EfficiencyColumn, "Column name in the input file to use for the qPCR efficiency")
	flag.BoolVar(&flags.Headers, "headers", defaults.HasHeader, "Whether the input file has a header row. If false, columns are 0-based column numbers, and columns left at their default name are read from positions 0 (assay), 1 (sample), 2 (Ct) and 3 (efficiency)")
	flag.StringVar(&flags.Negative, "negcontrol", defaults.NegativeControl, "Sample identifier for the negative controls, or 'none' to skip the negative control check")
	flag.StringVar(&flags.Standard, "standard", defaults.Standard, "Sample identifier for the standards")
	flag.StringVar(&flags.NonTemplate, "nontemplate", defaults.NonTemplateControl, "Sample identifier for the non-template controls")
	flag.Float64Var(&flags.EffMin, "effmin", defaults.EfficiencyMin, "Minimum qPCR efficiency for PASS")
	flag.Float64Var(&flags.EffMax, "effmax", defaults.EfficiencyMax, "Maximum standard curve efficiency for PASS")
	flag.Float64Var(&flags.RSquared, "rsquare", defaults.RSquaredMin, "Minimum r-squared of Ct against log abundance for PASS")
	flag.IntVar(&workers, "workers", 1, "Number of input files to analyze at once")
	flag.BoolVar(&sampleReport, "sample-report", false, "Also write the per-sample QC report")
	flag.BoolVar(&showVersion, "version", false, "Print version information and exit")
	flag.Parse()

	if showVersion {
		compileinfo.Print(os.Stdout)
		return
	}

	compileinfo.Print(os.Stderr)

	if input == "" {
		flag.Usage()
		log.Fatalln("Must specify an --input file or directory")
	}

	cfg := defaults
	if configFile != "" {
		var err error
		if cfg, err = analyzer.LoadConfig(configFile); err != nil {
			log.Fatalln(err)
		}
	}
	cfg = flags.apply(cfg, explicitFlags())

	if err := cfg.Validate(); err != nil {
		log.Fatalln(err)
	}

	if workers < 1 {
		workers = 1
	}

	log.Println("Launched smartchipqc")

	if err := run(context.Background(), input, output, replacements, magnitudes, cfg, workers, report.Options{SampleReport: sampleReport}); err != nil {
		log.Fatalln(err)
	}

	log.Println("Completed smartchipqc")
}

// explicitFlags returns the names of the flags set on the command line.
func explicitFlags() map[string]bool {
	out := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		out[f.Name] = true
	})

	return out
}

func run(ctx context.Context, input, output, replacements, magnitudes string, cfg analyzer.Config, workers int, opts report.Options) error {
	if smartchip.IsGoogleStorage(input) ||
		smartchip.IsGoogleStorage(replacements) ||
		smartchip.IsGoogleStorage(magnitudes) {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()
	}

	inputs, err := smartchip.ListInputs(input)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("No input files were found in %s", input)
	}

	if output == "" {
		if output, err = defaultOutput(input); err != nil {
			return err
		}
	}
	if output, err = smartchip.ExpandHome(output); err != nil {
		return err
	}
	outDir := filepath.Join(output, outputSubdir)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	shared := batch{cfg: cfg, outDir: outDir, opts: opts}

	if replacements != "" {
		log.Println("Reading replacement standards from", replacements)
		if shared.replacement, err = smartchip.ReadTable(ctx, replacements, client, cfg.HasHeader); err != nil {
			return err
		}
		if err := smartchip.CheckColumns(shared.replacement, cfg.ReplacementColumns().Required()); err != nil {
			return fmt.Errorf("%s: %w", replacements, err)
		}
	}

	if magnitudes != "" {
		log.Println("Reading gene magnitudes from", magnitudes)
		if shared.magnitudes, err = smartchip.ReadGeneMagnitudes(ctx, magnitudes, client); err != nil {
			return err
		}
		log.Printf("Read coefficients for %d assays\n", len(shared.magnitudes))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, path := range inputs {
		path := path
		g.Go(func() error {
			return shared.analyzeFile(ctx, path)
		})
	}

	return g.Wait()
}

// defaultOutput is the input directory itself, or the directory containing
// the input file.
func defaultOutput(input string) (string, error) {
	if smartchip.IsGoogleStorage(input) {
		return "", fmt.Errorf("An --output directory is required when --input is a google storage URL")
	}

	path, err := smartchip.ExpandHome(input)
	if err != nil {
		return "", err
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path, nil
	}

	return filepath.Dir(path), nil
}

// batch holds what every input file of one run shares. It is read-only
// once the workers start.
type batch struct {
	cfg         analyzer.Config
	outDir      string
	opts        report.Options
	replacement *dataset.Table
	magnitudes  quantify.Magnitudes
}

func (b batch) analyzeFile(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	log.Println("Analyzing", path)

	table, err := smartchip.ReadTable(ctx, path, client, b.cfg.HasHeader)
	if err != nil {
		return err
	}

	if err := smartchip.CheckColumns(table, b.cfg.Columns().Required()); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	res, err := analyzer.Analyze(b.cfg, analyzer.Inputs{
		Primary:     table,
		Replacement: b.replacement,
		Magnitudes:  b.magnitudes,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for _, w := range res.Warnings {
		log.Printf("Warning: %s: %s\n", path, w)
	}
	for _, a := range res.Assays {
		if a.Replaced {
			log.Printf("%s: standard curve for %s failed QC and was refit with replacement standards\n", path, a.Assay)
		}
	}

	written, err := report.Write(smartchip.OutputPrefix(b.outDir, path), res, b.opts)
	if err != nil {
		return err
	}

	log.Printf("%s: %d assays and %d groups written to %v\n", path, len(res.Assays), len(res.Groups), written)

	return nil
}
