package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitOK       = 0
	exitRejected = 1
	exitError    = 2
)

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errRejected):
		return exitRejected
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return exitError
	}
}

func newRootCmd(a *app) *cobra.Command {
	var (
		envFiles    []string
		policyName  string
		policyFiles []string
		normalizers []string
		sourceName  string
		logLevel    string
		cache       bool
	)

	root := &cobra.Command{
		Use:           "recordkit",
		Short:         "Validate record batches against policies and deliver them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.init(envFiles); err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("policy") {
				a.cfg.Policy = policyName
			}
			if flags.Changed("policy-file") {
				a.cfg.PolicyFiles = append(a.cfg.PolicyFiles, policyFiles...)
			}
			if flags.Changed("normalize") {
				a.cfg.Normalize = normalizers
			}
			if flags.Changed("source") {
				a.cfg.Source = sourceName
			}
			if flags.Changed("log-level") {
				a.cfg.LogLevel = logLevel
			}
			if flags.Changed("cache") {
				a.cfg.Cache = cache
			}
			return a.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringSliceVar(&envFiles, "env-file", nil, "env files to load before reading configuration")
	pf.StringVarP(&policyName, "policy", "p", "", "policy name (default from RECORDKIT_POLICY)")
	pf.StringSliceVar(&policyFiles, "policy-file", nil, "YAML or JSON policy documents to register")
	pf.StringSliceVarP(&normalizers, "normalize", "n", nil, "normalisers to apply before validation (trim, lower, fold, nfc)")
	pf.StringVar(&sourceName, "source", "", "where record files live: local or s3")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.BoolVar(&cache, "cache", false, "cache verdicts in Redis")

	root.AddCommand(
		newValidateCmd(a),
		newPushCmd(a),
		newPoliciesCmd(a),
		newServeCmd(a),
	)
	return root
}
