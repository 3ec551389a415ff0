package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"prodstats/adapters/chartrender"
	"prodstats/domain/chart"
	"prodstats/domain/product"
	"prodstats/internal"
	"prodstats/internal/config"
	"prodstats/internal/extractor"
	"prodstats/internal/metrics"
	"prodstats/internal/projector"
	"prodstats/internal/report"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "prodstats",
		Short:        "Extract product spreadsheets and project them into chart data",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newExtractCmd(),
		newChartCmd(),
		newFieldsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and a logger writing at the configured level
func setup() (*config.Config, *internal.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	level, _ := internal.ParseLogLevel(cfg.Log.Level)
	return cfg, internal.NewLoggerWithFormat(level, cfg.Log.Format), nil
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract FILE",
		Short: "Print the validated records of a sheet as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ex := extractor.New(cfg.Upload, extractor.WithLogger(logger), extractor.WithMetrics(metrics.NewRecorder("cli")))
			res, err := ex.ExtractFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			logger.Info("Extracted %d records from %s (%s)", len(res.Records), args[0], res.Format)
			return writeJSON(cmd.OutOrStdout(), res.Records)
		},
	}
}

func newChartCmd() *cobra.Command {
	var (
		x, y, chartType, sort string
		from, to              string
		format, out           string
		formatIDs             bool
		width, height         int
	)

	cmd := &cobra.Command{
		Use:   "chart FILE",
		Short: "Project a sheet into chart points and summary statistics",
		Long: `Project a sheet into chart points and summary statistics.

Example: prodstats chart products.xlsx --x pantType --y price --type pie --format markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			rec := metrics.NewRecorder("cli")
			ex := extractor.New(cfg.Upload, extractor.WithLogger(logger), extractor.WithMetrics(rec))
			res, err := ex.ExtractFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			q, err := buildQuery(x, y, chartType, sort, from, to, res.Extended || cfg.Viewer.ExtendedFields)
			if err != nil {
				return err
			}
			q.FormatIDs = cfg.Viewer.FormatIDs
			if cmd.Flags().Changed("format-ids") {
				q.FormatIDs = formatIDs
			}

			proj := projector.NewProjector(logger, rec).Project(res.Records, q)

			write := func(w io.Writer) error {
				return writeProjection(w, proj, format, filepath.Base(args[0]), len(res.Records), width, height)
			}
			if out == "" {
				return write(cmd.OutOrStdout())
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			return writeAndClose(f, out, write)
		},
	}

	sel := chart.DefaultSelection()
	cmd.Flags().StringVar(&x, "x", string(sel.X), "Category axis field")
	cmd.Flags().StringVar(&y, "y", string(sel.Y), "Value axis field")
	cmd.Flags().StringVar(&chartType, "type", string(sel.Type), "Chart type: bar, line or pie")
	cmd.Flags().StringVar(&sort, "sort", "", "Sort by value: asc or desc")
	cmd.Flags().StringVar(&from, "from", "", "Keep records dated on or after this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Keep records dated on or before this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, markdown, svg or png")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write output to a file instead of stdout")
	cmd.Flags().BoolVar(&formatIDs, "format-ids", false, "Show point IDs as <style>_<id>")
	cmd.Flags().IntVar(&width, "width", 0, "Image width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "Image height in pixels")

	return cmd
}

func newFieldsCmd() *cobra.Command {
	var chartType string
	var extended bool

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the fields selectable for a chart type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := chart.ParseType(chartType)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Category axis (%s):\n", t)
			for _, fi := range chart.AllowedX(t, extended) {
				fmt.Fprintf(w, "  %-22s %-22s %s\n", fi.Field, fi.Label, fi.Kind)
			}
			fmt.Fprintln(w, "Value axis:")
			for _, fi := range chart.AllowedY(extended) {
				fmt.Fprintf(w, "  %-22s %-22s %s\n", fi.Field, fi.Label, fi.Kind)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&chartType, "type", string(chart.TypeBar), "Chart type: bar, line or pie")
	cmd.Flags().BoolVar(&extended, "extended", false, "Include the Size, Date and ID fields")

	return cmd
}

// writeAndClose runs write against wc and closes it, reporting a failed
// close as a failed write
func writeAndClose(wc io.WriteCloser, name string, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// writeProjection encodes proj as json, markdown, svg or png
func writeProjection(w io.Writer, proj chart.Projection, format, fileName string, records, width, height int) error {
	switch format {
	case "json":
		return writeJSON(w, proj)
	case "markdown", "md":
		src := report.Source{FileName: fileName, Records: records}
		_, err := w.Write(report.Markdown(proj, src, report.Options{}))
		return err
	}

	imgFormat, err := chartrender.ParseFormat(format)
	if err != nil {
		return err
	}
	opts := chartrender.DefaultOptions()
	if width > 0 {
		opts.Width = width
	}
	if height > 0 {
		opts.Height = height
	}
	return chartrender.Render(w, proj, imgFormat, opts)
}

func buildQuery(x, y, chartType, sort, from, to string, extended bool) (chart.Query, error) {
	order, err := chart.ParseSortOrder(sort)
	if err != nil {
		return chart.Query{}, err
	}
	q := chart.Query{
		Axes: chart.AxisSelection{X: product.Field(x), Y: product.Field(y), Type: chart.Type(chartType)},
		Sort: order,
	}
	if err := q.Axes.Validate(extended); err != nil {
		return chart.Query{}, err
	}

	if from != "" {
		if q.Dates.From, err = time.Parse(product.DateLayout, from); err != nil {
			return chart.Query{}, fmt.Errorf("invalid --from date: %w", err)
		}
	}
	// Without a start day there is no date filter, so --to is ignored.
	if to != "" && from != "" {
		if q.Dates.To, err = time.Parse(product.DateLayout, to); err != nil {
			return chart.Query{}, fmt.Errorf("invalid --to date: %w", err)
		}
	}
	return q, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
