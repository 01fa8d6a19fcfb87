package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"devkit-builder/internal/app"
)

type buildOptions struct {
	IncludeDir  string
	OutputDir   string
	HeaderPath  string
	ArchivePath string
	SearchDirs  []string
	Workers     int
}

func newBuildCommand() *cobra.Command {
	opts := buildOptions{}
	cmd := &cobra.Command{
		Use:   "build KIT [KIT...]",
		Short: "Build devkit headers and archives",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), cmd, args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.IncludeDir, "include", "", "Include directory holding the umbrella headers")
	cmd.Flags().StringVarP(&opts.OutputDir, "output", "o", ".", "Output directory (include/ and lib/ are created inside)")
	cmd.Flags().StringVar(&opts.HeaderPath, "header", "", "Header output path (single kit only)")
	cmd.Flags().StringVar(&opts.ArchivePath, "archive", "", "Archive output path (single kit only)")
	cmd.Flags().StringSliceVar(&opts.SearchDirs, "search-dir", nil, "Extra directories searched for static archives after -L directories")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Concurrent builds when several kits are given")
	_ = viper.BindPFlag("include", cmd.Flags().Lookup("include"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("search_dirs", cmd.Flags().Lookup("search-dir"))
	_ = viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	return cmd
}

func runBuild(ctx context.Context, cmd *cobra.Command, kits []string, opts buildOptions) error {
	service, err := newAppService()
	if err != nil {
		return err
	}
	familyFile := viper.GetString("family_file")
	includeDir := resolveString(cmd, opts.IncludeDir, "include", "include")
	outputDir := resolveString(cmd, opts.OutputDir, "output", "output")
	searchDirs := resolveStrings(cmd, opts.SearchDirs, "search_dirs", "search-dir")

	if len(kits) == 1 {
		result, err := service.Build(ctx, app.BuildRequest{
			FamilyFile:  familyFile,
			Kit:         kits[0],
			IncludeDir:  includeDir,
			OutputDir:   outputDir,
			HeaderPath:  opts.HeaderPath,
			ArchivePath: opts.ArchivePath,
			SearchDirs:  searchDirs,
		})
		if err != nil {
			return err
		}
		printBuildResult(result)
		return nil
	}
	if strings.TrimSpace(opts.HeaderPath) != "" || strings.TrimSpace(opts.ArchivePath) != "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("--header and --archive need exactly one kit")
	}
	result, err := service.BuildAll(ctx, app.BuildAllRequest{
		FamilyFile: familyFile,
		Kits:       kits,
		IncludeDir: includeDir,
		OutputDir:  outputDir,
		SearchDirs: searchDirs,
		Workers:    resolveInt(cmd, opts.Workers, "workers", "workers"),
	})
	for _, built := range result.Results {
		printBuildResult(built)
	}
	return err
}

func printBuildResult(result app.BuildResult) {
	artifacts := result.Artifacts
	fmt.Printf("built %s (%s)\n", artifacts.Family, artifacts.Package)
	fmt.Printf("  header:  %s\n", artifacts.HeaderPath)
	fmt.Printf("  archive: %s (%d archives embedded, %d symbols renamed)\n", artifacts.ArchivePath, len(artifacts.Embedded), artifacts.Renamed)
	if len(artifacts.ResidualFlags) > 0 {
		fmt.Printf("  link flags: %s\n", strings.Join(artifacts.ResidualFlags, " "))
	}
}
