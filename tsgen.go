// Package tsgen generates deduplicated TypeScript type declarations and
// route/controller boilerplate from OpenAPI specifications.
//
// Quick start:
//
//	import "github.com/apiforge/tsgen"
//
//	// Write one .ts file per declaration plus an index to ./generated/types
//	err := tsgen.GenerateTypes("./openapi.yaml", "./generated")
//
// For programmatic access to the synthesized declarations, see the
// pkg/typegen package.
package tsgen

import (
	"github.com/apiforge/tsgen/internal/cli"
)

// GenerateTypes generates TypeScript type declarations from an OpenAPI
// specification file or HTTP(S) URL into outDir/types.
func GenerateTypes(spec, outDir string) error {
	return cli.RunGenerate(cli.RunGenerateParams{
		Fallback: cli.FallbackParams{Spec: spec, OutDir: outDir},
	})
}

// GenerateWithRoutes additionally renders route/controller boilerplate,
// optionally driven by a middleware selection policy file (empty for none).
func GenerateWithRoutes(spec, outDir, policyPath string) error {
	return cli.RunGenerate(cli.RunGenerateParams{
		Fallback: cli.FallbackParams{
			Spec:       spec,
			OutDir:     outDir,
			Routes:     true,
			PolicyPath: policyPath,
		},
	})
}

// ValidateSpec validates an OpenAPI specification file.
func ValidateSpec(spec string) error {
	return cli.RunValidate(spec)
}
