package cli

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/apiforge/tsgen/pkg/config"
	"github.com/apiforge/tsgen/pkg/openapi"
	"github.com/apiforge/tsgen/pkg/policy"
	"github.com/apiforge/tsgen/pkg/routegen"
	"github.com/apiforge/tsgen/pkg/typegen"
)

type FallbackParams struct {
	Spec       string
	OutDir     string
	Routes     bool
	PolicyPath string
}

type RunGenerateParams struct {
	ConfigPath string
	Fallback   FallbackParams
}

func RunValidate(input string) error {
	return openapi.ValidateDocument(input)
}

func RunGenerate(p RunGenerateParams) error {
	if p.ConfigPath == "" {
		if p.Fallback.Spec == "" || p.Fallback.OutDir == "" {
			return errors.New("either --config or both --input and --out must be provided")
		}
		cfg := &config.Config{
			Spec:             p.Fallback.Spec,
			OutDir:           absPath(p.Fallback.OutDir),
			TypesDir:         "types",
			Routes:           p.Fallback.Routes,
			MiddlewarePolicy: p.Fallback.PolicyPath,
		}
		return generateFromConfig(cfg)
	}

	cfg, err := config.Load(p.ConfigPath)
	if err != nil {
		return err
	}
	return generateFromConfig(cfg)
}

func generateFromConfig(cfg *config.Config) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	doc, err := openapi.LoadDocument(cfg.Spec)
	if err != nil {
		return errors.Wrap(err, "load document")
	}

	res, err := typegen.Generate(doc, typegen.Options{Logger: logger})
	if err != nil {
		return errors.Wrap(err, "synthesize types")
	}

	typesDir := filepath.Join(cfg.OutDir, cfg.TypesDir)
	if err := writeFiles(typesDir, res.Files); err != nil {
		return err
	}
	logger.Info("wrote type declarations",
		zap.Int("declarations", len(res.Declarations)),
		zap.String("dir", typesDir))

	if cfg.Routes {
		var pol *policy.Policy
		if cfg.MiddlewarePolicy != "" {
			pol, err = policy.Load(cfg.MiddlewarePolicy)
			if err != nil {
				return errors.Wrap(err, "load middleware policy")
			}
		}
		gen := routegen.New(pol)
		files, err := gen.Generate(gen.GroupOperations(res.Operations))
		if err != nil {
			return err
		}
		routesDir := filepath.Join(cfg.OutDir, "routes")
		if err := writeFiles(routesDir, files); err != nil {
			return err
		}
		logger.Info("wrote route boilerplate",
			zap.Int("files", len(files)),
			zap.String("dir", routesDir))
	}
	return nil
}

func writeFiles(dir string, files []typegen.File) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.Name), []byte(f.Content), 0o644); err != nil {
			return errors.Wrapf(err, "write %s", f.Name)
		}
	}
	return nil
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
