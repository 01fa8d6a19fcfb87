package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"devkit-builder/internal/app"
)

type planOptions struct {
	ArchivePath string
	PublicOnly  bool
}

func newPlanCommand() *cobra.Command {
	opts := planOptions{}
	cmd := &cobra.Command{
		Use:   "plan KIT",
		Short: "Print the symbol renames a build would apply to an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.ArchivePath, "archive", "", "Static archive to inspect")
	cmd.Flags().BoolVar(&opts.PublicOnly, "public", false, "Only print renames of public third-party symbols")
	return cmd
}

func runPlan(ctx context.Context, kit string, opts planOptions) error {
	service, err := newAppService()
	if err != nil {
		return err
	}
	result, err := service.Plan(ctx, app.PlanRequest{
		FamilyFile:  viper.GetString("family_file"),
		Kit:         kit,
		ArchivePath: opts.ArchivePath,
	})
	if err != nil {
		return err
	}
	mapping := result.Mapping
	if opts.PublicOnly {
		mapping = result.Public
	}
	for _, entry := range mapping.Entries {
		fmt.Printf("%s %s\n", entry.Original, entry.Renamed)
	}
	return nil
}
