package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/folio"
	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/ocr"
	"github.com/tsawler/folio/raster"
)

// convertOptions collects the convert flags. A YAML config file can fill
// any field whose flag was not set explicitly on the command line.
type convertOptions struct {
	format    string
	output    string
	name      string
	engine    string
	endpoint  string
	model     string
	languages string
	prompt    string
	dpi       int
	maxSide   int
	jobs      int
	config    string
	verbose   bool
}

func convertCmd() *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a PDF or image, or a directory of them, to Markdown or DOCX",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.config != "" {
				cfg, err := loadConfig(opts.config)
				if err != nil {
					return err
				}
				cfg.apply(cmd, &opts)
			}
			if err := opts.validate(); err != nil {
				return err
			}

			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			ctx := cmd.Context()
			engine, err := buildEngine(ctx, opts)
			if err != nil {
				return err
			}
			log.Debug("engine ready", "engine", engine.Name())

			input := args[0]
			info, err := os.Stat(input)
			if err != nil {
				return err
			}
			if info.IsDir() {
				if opts.name != "" {
					return usagef("--name applies to a single input file")
				}
				return convertDir(ctx, log, engine, opts, input)
			}
			return convertOne(ctx, log, engine, opts, input, opts.name, "")
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "md", "output format: md|docx")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "output", "output directory")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "document name (default: input basename)")
	cmd.Flags().StringVar(&opts.engine, "engine", "http", "OCR engine: http|gemini|tesseract")
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "http://127.0.0.1:8000/ocr", "inference endpoint for the http engine")
	cmd.Flags().StringVar(&opts.model, "model", "", "model name for the gemini engine")
	cmd.Flags().StringVar(&opts.languages, "languages", "eng", "tesseract languages, plus-separated (e.g. eng+fra)")
	cmd.Flags().StringVar(&opts.prompt, "prompt", "", "override the recognition prompt")
	cmd.Flags().IntVar(&opts.dpi, "dpi", raster.DefaultDPI, "PDF rasterization resolution")
	cmd.Flags().IntVar(&opts.maxSide, "max-side", raster.MaxSide, "cap page rasters to this many pixels on the longest side")
	cmd.Flags().IntVar(&opts.jobs, "jobs", runtime.NumCPU(), "parallel conversions when the input is a directory")
	cmd.Flags().StringVar(&opts.config, "config", "", "YAML config file; explicit flags win over file values")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

// exactArgs is cobra.ExactArgs with the failure reported as a usage
// error so main exits with the usage code.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func (o convertOptions) validate() error {
	switch o.format {
	case "md", "docx":
	default:
		return usagef("unknown output format %q (supported: md, docx)", o.format)
	}
	if o.jobs < 1 {
		return usagef("--jobs must be at least 1")
	}
	return nil
}

// buildEngine constructs the OCR engine named by --engine.
func buildEngine(ctx context.Context, opts convertOptions) (ocr.Engine, error) {
	switch opts.engine {
	case "http":
		return ocr.NewHTTP(ocr.DefaultHTTPConfig(opts.endpoint))
	case "gemini":
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("gemini engine requires the GEMINI_API_KEY environment variable")
		}
		return ocr.NewGemini(ctx, key, opts.model)
	case "tesseract":
		return ocr.NewTesseract(opts.languages)
	default:
		return nil, usagef("unknown OCR engine %q (supported: http, gemini, tesseract)", opts.engine)
	}
}

// convertOne runs the pipeline for a single input file. name and
// imageDir override the converter defaults when non-empty.
func convertOne(ctx context.Context, log *slog.Logger, engine ocr.Engine, opts convertOptions, input, name, imageDir string) error {
	conv := folio.Convert(input).
		WithContext(ctx).
		WithEngine(engine).
		OutputDir(opts.output).
		DPI(opts.dpi).
		MaxSide(opts.maxSide)
	if name != "" {
		conv = conv.Name(name)
	}
	if imageDir != "" {
		conv = conv.ImageDir(imageDir)
	}
	if opts.prompt != "" {
		conv = conv.Prompt(opts.prompt)
	}

	log.Info("converting", "input", input, "format", opts.format)

	var warnings []folio.Warning
	var artifact string
	var err error
	switch opts.format {
	case "docx":
		artifact, warnings, err = conv.Docx()
	default:
		_, warnings, err = conv.Markdown()
		artifact = filepath.Join(opts.output, documentName(input, name)+".md")
	}
	for _, w := range warnings {
		log.Warn(w.String(), "input", input)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	log.Info("wrote", "artifact", artifact)
	return nil
}

// convertDir converts every supported file in dir, up to opts.jobs at a
// time. Failed inputs are logged and skipped; the batch finishes before
// the failure count is reported.
func convertDir(ctx context.Context, log *slog.Logger, engine ocr.Engine, opts convertOptions, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() || format.Detect(entry.Name()) == format.Unknown {
			continue
		}
		inputs = append(inputs, filepath.Join(dir, entry.Name()))
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no supported files in %s", dir)
	}
	log.Info("converting directory", "dir", dir, "files", len(inputs), "jobs", opts.jobs)

	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)
	for _, input := range inputs {
		g.Go(func() error {
			// Each source crops into its own image subdirectory so
			// asset names cannot collide across documents.
			name := documentName(input, "")
			if err := convertOne(gctx, log, engine, opts, input, name, path.Join("images", name)); err != nil {
				log.Error("conversion failed", "input", input, "error", err)
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait() // goroutines log failures and return nil

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d inputs failed", n, len(inputs))
	}
	return nil
}

// documentName mirrors the converter's name resolution so logs and
// per-source image directories agree with the written artifacts.
func documentName(input, name string) string {
	if name != "" {
		return name
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
