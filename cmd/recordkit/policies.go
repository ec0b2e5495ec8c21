package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/recordkit/pkg/normalize"
)

func newPoliciesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List registered policies and normalisers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "POLICY\tCHECKS\tDESCRIPTION")
			for _, name := range a.policies.Names() {
				p, err := a.policies.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", p.Name, len(p.Predicates), p.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nnormalisers: %v\n", normalize.Names())
			return nil
		},
	}
}
