package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/recordkit/pkg/logger"
	"github.com/dmitrymomot/recordkit/pkg/pipeline"
)

func newPushCmd(a *app) *cobra.Command {
	var sinkName, target string

	cmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Validate a record file and deliver it to a sink",
		Long: `Validates the file like "validate" and, when every record passes,
writes the batch to Postgres (COPY), MongoDB (InsertMany) or OpenSearch (_bulk).
Rejected batches are never delivered and exit with status 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("sink") {
				a.cfg.Sink = sinkName
			}
			if cmd.Flags().Changed("target") {
				a.cfg.Target = target
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.PushTimeout)
			defer cancel()

			p, err := a.policies.Get(a.cfg.Policy)
			if err != nil {
				return err
			}
			src, path, err := a.openSource(ctx, args[0])
			if err != nil {
				return err
			}
			runner, err := a.runner(ctx)
			if err != nil {
				return err
			}
			sink, err := a.openSink(ctx, a.cfg.Sink)
			if err != nil {
				return err
			}

			report, err := runner.Run(ctx, pipeline.Job{
				Source:        src,
				Path:          path,
				Policy:        p,
				Normalize:     a.cfg.Normalize,
				Sink:          sink,
				Target:        a.cfg.Target,
				FailOnInvalid: true,
			})
			if report != nil {
				report.Path = args[0]
				printReport(cmd, report)
			}
			if err != nil {
				if report != nil && report.Stage == pipeline.StageRejected {
					return fmt.Errorf("%w: %v", errRejected, err)
				}
				return err
			}

			a.log.InfoContext(logger.WithRunID(ctx, report.RunID.String()), "push finished",
				logger.Sink(a.cfg.Sink),
				logger.Target(a.cfg.Target),
				logger.Records(report.RecordsWritten),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "DELIVERED: %d records to %s %s (run %s)\n",
				report.RecordsWritten, a.cfg.Sink, a.cfg.Target, report.RunID)
			return nil
		},
	}
	cmd.Flags().StringVar(&sinkName, "sink", "", "pg, mongo or opensearch (default from RECORDKIT_SINK)")
	cmd.Flags().StringVar(&target, "target", "", "table, collection or index name (empty uses the sink default)")
	return cmd
}
