package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/apiforge/tsgen/internal/cli"
)

func main() {
	root := &cobra.Command{
		Use:   "tsgen",
		Short: "Generate TypeScript types and route boilerplate from OpenAPI specs",
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var configPath string
	var input string
	var outDir string
	var routes bool
	var policyPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate type declarations (and optionally routes) from an OpenAPI spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunGenerate(cli.RunGenerateParams{
				ConfigPath: configPath,
				Fallback: cli.FallbackParams{
					Spec:       input,
					OutDir:     outDir,
					Routes:     routes,
					PolicyPath: policyPath,
				},
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to tsgen.yaml config")
	// Fallback flags when no config file is provided
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI spec file (yaml/json) or URL")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory")
	cmd.Flags().BoolVar(&routes, "routes", false, "Also generate route/controller boilerplate")
	cmd.Flags().StringVar(&policyPath, "middleware-policy", "", "Path to a middleware selection policy file")

	return cmd
}

func newValidateCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunValidate(input)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "OpenAPI spec file (yaml/json)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
