// Command sqv validates sales-compensation quota workbooks against a
// reference roster and writes the structured run report as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sqv/pkg/parser"
	"sqv/pkg/region"
	"sqv/pkg/report"
	"sqv/pkg/schema"
	"sqv/pkg/xlsx"
)

type runOptions struct {
	quotaPath  string
	rosterPath string
	periodRaw  string
	regionRaw  string
	tablesPath string
	outPath    string
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("sqv: ")

	root := &cobra.Command{
		Use:           "sqv",
		Short:         "Validate sales-compensation quota files against the HR roster",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newHalfCmd(), newLmsCmd(), newRosterCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func newHalfCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "half",
		Short: "Run the fiscal-half checks (identity, duplicates, completeness)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHalf(opts)
		},
	}
	addCommonFlags(cmd, &opts)
	return cmd
}

func newLmsCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "lms",
		Short: "Run the LMS monthly checks (alignment, on-leave quota)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLms(opts)
		},
	}
	addCommonFlags(cmd, &opts)
	return cmd
}

func newRosterCmd() *cobra.Command {
	var rosterPath, outPath string

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Inspect a reference roster: index stats as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := loadRoster(rosterPath)
			if err != nil {
				return err
			}
			ix := region.BuildRosterIndex(roster)
			data, err := json.MarshalIndent(ix.Stats, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal roster stats: %w", err)
			}
			log.Printf("roster: %d records, %d unique ids, %d active, %d on leave",
				ix.Stats.TotalRecords, ix.Stats.UniqueIDs, ix.Stats.ActiveCount, ix.Stats.OnLeaveCount)
			return writeOut(outPath, data)
		},
	}
	cmd.Flags().StringVar(&rosterPath, "roster", "", "Reference roster (.xlsx or .csv)")
	cmd.Flags().StringVar(&outPath, "out", "", "Stats output path (default stdout)")
	_ = cmd.MarkFlagRequired("roster")
	return cmd
}

func addCommonFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVar(&opts.quotaPath, "quota", "", "Quota workbook (.xlsx, or .csv for single-sheet inputs)")
	cmd.Flags().StringVar(&opts.rosterPath, "roster", "", "Reference roster (.xlsx or .csv)")
	cmd.Flags().StringVar(&opts.periodRaw, "period", "", "Submission/processing period, e.g. Jan-26")
	cmd.Flags().StringVar(&opts.regionRaw, "region", "", "Region: APAC, EMEA, or Americas")
	cmd.Flags().StringVar(&opts.tablesPath, "regions", "", "Optional YAML region-table overrides")
	cmd.Flags().StringVar(&opts.outPath, "out", "", "Report output path (default stdout)")
	_ = cmd.MarkFlagRequired("quota")
	_ = cmd.MarkFlagRequired("roster")
	_ = cmd.MarkFlagRequired("period")
	_ = cmd.MarkFlagRequired("region")
}

// resolveInputs parses the selectors shared by both subcommands.
func resolveInputs(opts runOptions) (schema.Period, region.Region, *region.Tables, error) {
	period, err := schema.ParsePeriod(opts.periodRaw)
	if err != nil {
		return schema.Period{}, "", nil, err
	}
	selected, err := region.Parse(opts.regionRaw)
	if err != nil {
		return schema.Period{}, "", nil, err
	}
	tables := region.DefaultTables()
	if opts.tablesPath != "" {
		tables, err = region.LoadOverrides(opts.tablesPath)
		if err != nil {
			return schema.Period{}, "", nil, err
		}
	}
	return period, selected, tables, nil
}

func runHalf(opts runOptions) error {
	period, selected, tables, err := resolveInputs(opts)
	if err != nil {
		return err
	}

	roster, err := loadRoster(opts.rosterPath)
	if err != nil {
		return err
	}

	quotas, err := loadQuotaSheets(opts.quotaPath)
	if err != nil {
		return err
	}

	r := report.BuildHalfReport(quotas, roster, period, selected, tables)
	data, err := report.MarshalHalfReport(r)
	if err != nil {
		return err
	}

	log.Printf("half run %s: %d records, %d pass / %d fail / %d skip, %d duplicate groups, %d incomplete",
		r.RunID, r.Summary.TotalRecords, r.Summary.Pass, r.Summary.Fail, r.Summary.Skip,
		r.Summary.DuplicateGroups, r.Summary.IncompleteCount)

	return writeOut(opts.outPath, data)
}

func runLms(opts runOptions) error {
	period, selected, tables, err := resolveInputs(opts)
	if err != nil {
		return err
	}

	roster, err := loadRoster(opts.rosterPath)
	if err != nil {
		return err
	}

	rows, err := loadSingleSheet(opts.quotaPath)
	if err != nil {
		return err
	}
	records := schema.BuildLmsRecords(rows)

	r := report.BuildLmsReport(records, roster, period, selected, tables)
	data, err := report.MarshalLmsReport(r)
	if err != nil {
		return err
	}

	log.Printf("lms run %s: %d records, %d misaligned (%d issues), %d on-leave findings",
		r.RunID, r.Summary.TotalRecords, r.Summary.MisalignedCount, r.Summary.IssueCount,
		r.Summary.LeaveFindings)

	return writeOut(opts.outPath, data)
}

// loadQuotaSheets extracts and builds quota records from every included
// sheet of the fiscal-half workbook.
func loadQuotaSheets(path string) ([]*schema.QuotaRecord, error) {
	wb, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets, err := wb.QuotaSheets()
	if err != nil {
		return nil, err
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no quota sheets in %s (want sheet names ending in \"quota\")", path)
	}

	var records []*schema.QuotaRecord
	for _, sheet := range sheets {
		if len(sheet.Rows) <= schema.QuotaHeaderRowIndex {
			continue
		}
		cm := schema.MapColumns(sheet.Rows[schema.QuotaHeaderRowIndex])
		records = append(records, schema.BuildQuotaRecords(sheet.Name, sheet.Rows, cm)...)
	}
	return records, nil
}

func loadRoster(path string) ([]*schema.ReferenceRecord, error) {
	rows, err := loadSingleSheet(path)
	if err != nil {
		return nil, err
	}
	return schema.BuildRosterRecords(rows)
}

// loadSingleSheet reads a single-sheet input, choosing the extraction path
// by extension: xlsx via the workbook adapter, anything else as CSV.
func loadSingleSheet(path string) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		wb, err := xlsx.OpenFile(path)
		if err != nil {
			return nil, err
		}
		defer wb.Close()
		sheet, err := wb.FirstSheet()
		if err != nil {
			return nil, err
		}
		return sheet.Rows, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	set, err := parser.ReadRows(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, w := range set.Warnings {
		log.Printf("%s row %d: %s", path, w.Row, w.Message)
	}
	return set.Rows, nil
}

func writeOut(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
