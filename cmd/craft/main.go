package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pthm/craft"
	"github.com/pthm/craft/lib/generator"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "craft",
		Short:         "Component lifecycle, view composition and navigation for Go",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.AddCommand(
		newGenerateCmd(),
		newCleanCmd(),
		newVersionCmd(),
		newDefaultsCmd(),
	)
	return root
}

func patternsOrAll(args []string) []string {
	if len(args) == 0 {
		return []string{"./..."}
	}
	return args
}

func newGenerateCmd() *cobra.Command {
	var opts generator.Options

	cmd := &cobra.Command{
		Use:   "generate [packages]",
		Short: "Generate QualifiedName methods for widget types",
		Long: `Generate QualifiedName methods for types embedding craft widgets.

Writes one <source>_craft.go file per source file that declares widgets.

Examples:
  craft generate ./...                 Generate for all packages
  craft generate ./views               Generate for a specific package
  craft generate --dry-run ./...       Preview generation
  craft generate --full-path ./...     Qualify with the full import path`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Out = cmd.OutOrStdout()
			return generator.New(opts).Generate(patternsOrAll(args)...)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false,
		"show what would be generated without writing files")
	cmd.Flags().BoolVar(&opts.FullPath, "full-path", false,
		"qualify names with the full import path")
	return cmd
}

func newCleanCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean [packages]",
		Short: "Remove generated files (*" + generator.GeneratedSuffix + ")",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := generator.New(generator.Options{DryRun: dryRun, Out: cmd.OutOrStdout()})
			return gen.Clean(patternsOrAll(args)...)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list files without removing them")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "craft version %s\n", version)
		},
	}
}

func newDefaultsCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the effective defaults as YAML",
		Long: `Print the effective defaults as YAML.

Values come from the built-in defaults, then the optional config file, then
CRAFT_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := craft.LoadDefaults(cfgFile)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(d); err != nil {
				return fmt.Errorf("encode defaults: %w", err)
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML)")
	return cmd
}
