package commands

import (
	"github.com/spf13/cobra"

	"github.com/de-tools/ai-foundry/pkg/adapters"
	"github.com/de-tools/ai-foundry/pkg/runtime/terminal/export"
)

type CatalogCmd struct {
	env    *Environment
	output string
}

func NewCatalogCmd(env *Environment) *cobra.Command {
	cc := &CatalogCmd{env: env}
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the naming, region and SKU rules used by validate",
		RunE:  cc.run,
	}

	cmd.Flags().StringVarP(&cc.output, "output", "o", string(export.FormatYAML), "Output format: json or yaml")

	return cmd
}

func (cc *CatalogCmd) run(cmd *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(cc.output)
	if err != nil {
		return err
	}
	// the catalog has no text layout
	if format == export.FormatText {
		format = export.FormatYAML
	}
	return export.Encode(cmd.OutOrStdout(), format, adapters.MapCatalogToApi(cc.env.Catalog))
}
