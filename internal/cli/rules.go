package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/toybox/internal/toys"
)

// ruleRow is the JSON form of one catalog rule.
type ruleRow struct {
	Name  string `json:"name"`
	Range string `json:"range"`
	Kind  string `json:"kind"`
}

func newRulesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the age rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRules(cmd)
		},
	}
}

func (a *app) runRules(cmd *cobra.Command) error {
	factory, err := a.toyFactory()
	if err != nil {
		return err
	}

	catalog := factory.Catalog()
	rows := make([]ruleRow, 0, len(catalog.Ranges)+1)
	for _, r := range catalog.Ranges {
		rows = append(rows, ruleRow{Name: r.Name, Range: r.String(), Kind: string(r.Kind)})
	}
	rows = append(rows, ruleRow{Name: toys.DefaultRuleName, Range: "otherwise", Kind: string(catalog.Default)})

	out := cmd.OutOrStdout()
	if a.flags.jsonMode {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return sysError("encode rules: %w", err)
		}
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tAGES\tKIND")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Range, r.Kind)
	}
	if err := tw.Flush(); err != nil {
		return sysError("write rules: %w", err)
	}
	return nil
}
