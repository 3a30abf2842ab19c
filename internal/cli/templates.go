package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) templatesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List registered templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defaultName, _ := a.registry.Default()
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tDEFAULT\tPRE-STYLED\tCODE\tPLUGINS")
			for _, name := range a.registry.Names() {
				tpl, _ := a.registry.Lookup(name)
				kind := "-"
				if tc, ok := a.config.Templates[name]; ok {
					kind = tc.Kind
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\t%d\n",
					name, kind, yesNo(name == defaultName), tpl.PreOverlayStyled(), tpl.IsCode(), len(tpl.Plugins()))
			}
			return tw.Flush()
		},
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
