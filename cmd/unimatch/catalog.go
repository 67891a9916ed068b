package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the institution catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every institution in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := opts.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			institutions, err := cat.All(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tAREA\tTUITION\tFIELDS")
			for _, inst := range institutions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					inst.ID, inst.Name, inst.Area, inst.TuitionRange, strings.Join(inst.Fields, ", "))
			}
			return w.Flush()
		},
	})

	return cmd
}
