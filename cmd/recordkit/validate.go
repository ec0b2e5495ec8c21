package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/recordkit/pkg/pipeline"
)

func newValidateCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate record files against a policy",
		Long: `Validates JSON, NDJSON or YAML record files. Each file is checked
record by record and stops at the first violation. The exit status is 1 when
any file is rejected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := a.policies.Get(a.cfg.Policy)
			if err != nil {
				return err
			}
			runner, err := a.runner(ctx)
			if err != nil {
				return err
			}

			rejected := 0
			reports := make([]*pipeline.Report, 0, len(args))
			for _, arg := range args {
				src, path, err := a.openSource(ctx, arg)
				if err != nil {
					return err
				}
				report, err := runner.Run(ctx, pipeline.Job{
					Source:    src,
					Path:      path,
					Policy:    p,
					Normalize: a.cfg.Normalize,
				})
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
				report.Path = arg
				reports = append(reports, report)

				if !report.Result.Valid() {
					rejected++
				}
				if !asJSON {
					printReport(cmd, report)
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(reports); err != nil {
					return err
				}
			}
			if rejected > 0 {
				return fmt.Errorf("%w: %d of %d files rejected", errRejected, rejected, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print reports as JSON")
	return cmd
}

func printReport(cmd *cobra.Command, r *pipeline.Report) {
	out := cmd.OutOrStdout()
	if v := r.Result.Violation(); v != nil {
		fmt.Fprintf(out, "INVALID: %s: %s\n", r.Path, v.Error())
		return
	}
	fmt.Fprintf(out, "OK: %s (%d records, policy %s)\n", r.Path, r.RecordsRead, r.Policy)
}
