package main

import (
	"github.com/iwvelando/cost-of-living/internal/dashboard"
	"github.com/iwvelando/cost-of-living/internal/figure"
	"github.com/iwvelando/cost-of-living/pkg/constants"
	"github.com/iwvelando/cost-of-living/pkg/output"
	"github.com/iwvelando/cost-of-living/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// selectionFlags are the per-request choices shared by chart and summary.
type selectionFlags struct {
	county string
	salary string
	career string
	mode   string
	year   int
	html   string
}

func (f *selectionFlags) register(cmd *cobra.Command, withMode, withYear bool) {
	cmd.Flags().StringVar(&f.county, "county", constants.DefaultReferenceCounty, "county id")
	cmd.Flags().StringVar(&f.salary, "salary", "", "annual salary to compare against")
	cmd.Flags().StringVar(&f.career, "career", "", "career whose salary to compare against; wins over --salary")
	if withMode {
		cmd.Flags().StringVar(&f.mode, "mode", constants.ModeIndividual, "display mode: individual or combined")
	}
	if withYear {
		cmd.Flags().IntVar(&f.year, "year", 0, "summary year (default latest year with data)")
	}
	cmd.Flags().StringVar(&f.html, "html", "", "also save the figure as a standalone HTML page at this path")
}

func (f *selectionFlags) request() (dashboard.Request, error) {
	req := dashboard.Request{County: f.county, Career: f.career, Mode: f.mode, Year: f.year}
	if f.salary != "" {
		amount, err := validation.ParseSalary(f.salary)
		if err != nil {
			return req, err
		}
		req.Salary = &amount
	}
	return req, nil
}

func newRowsCmd(opts *globalOptions) *cobra.Command {
	var county string
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Print the merged observation rows for a county",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			rows, err := a.svc.Rows(cmd.Context(), county)
			if err != nil {
				return failed(a.logger, "main.rows", err)
			}

			w := cmd.OutOrStdout()
			switch a.format {
			case constants.OutputFormatCSV:
				return output.CsvRows(w, rows)
			case constants.OutputFormatJSON:
				return output.JSON(w, rows)
			default:
				output.PrettyRows(w, county, rows)
				return nil
			}
		},
	}
	cmd.Flags().StringVar(&county, "county", constants.DefaultReferenceCounty, "county id")
	return cmd
}

func newChartCmd(opts *globalOptions) *cobra.Command {
	sel := &selectionFlags{}
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the expense and salary series for a county",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := sel.request()
			if err != nil {
				return err
			}
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			c, err := a.svc.Chart(cmd.Context(), req)
			if err != nil {
				return failed(a.logger, "main.chart", err)
			}
			if sel.html != "" {
				figure.WriteHTML(figure.FromChart(c), sel.html)
				a.logger.Info("saved chart", zap.String("op", "main.chart"), zap.String("path", sel.html))
			}

			w := cmd.OutOrStdout()
			switch a.format {
			case constants.OutputFormatCSV:
				return output.CsvChart(w, c)
			case constants.OutputFormatJSON:
				return output.JSON(w, c)
			default:
				output.PrettyChart(w, c)
				return nil
			}
		},
	}
	sel.register(cmd, true, false)
	return cmd
}

func newSummaryCmd(opts *globalOptions) *cobra.Command {
	sel := &selectionFlags{}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the yearly salary and expense comparison for a county",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := sel.request()
			if err != nil {
				return err
			}
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			s, err := a.svc.Summary(cmd.Context(), req)
			if err != nil {
				return failed(a.logger, "main.summary", err)
			}
			if sel.html != "" {
				figure.WriteHTML(figure.FromSummary(s), sel.html)
				a.logger.Info("saved summary", zap.String("op", "main.summary"), zap.String("path", sel.html))
			}

			w := cmd.OutOrStdout()
			switch a.format {
			case constants.OutputFormatCSV:
				return output.CsvSummary(w, s)
			case constants.OutputFormatJSON:
				return output.JSON(w, s)
			default:
				output.PrettySummary(w, s)
				return nil
			}
		},
	}
	sel.register(cmd, false, true)
	return cmd
}

func newRawCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "raw",
		Short: "Print every configured source table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			tables, err := a.svc.RawData(cmd.Context())
			if err != nil {
				return failed(a.logger, "main.raw", err)
			}

			w := cmd.OutOrStdout()
			switch a.format {
			case constants.OutputFormatCSV:
				return output.CsvRaw(w, tables)
			case constants.OutputFormatJSON:
				return output.JSON(w, tables)
			default:
				output.PrettyRaw(w, tables)
				return nil
			}
		},
	}
}

// failed logs err against op and returns it for cobra to report.
func failed(logger *zap.Logger, op string, err error) error {
	logger.Error("command failed",
		zap.String("op", op),
		zap.Error(err),
	)
	return err
}
