package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unimatch/backend/internal/infrastructure/catalog"
	"github.com/unimatch/backend/internal/logger"
)

const app = "unimatch"

// Actual version can be specified in build command.
var version = "unknown"

type rootOptions struct {
	catalogPath string
	debug       bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          app,
		Short:        "unimatch ranks academic institutions for a student profile",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.catalogPath, "catalog", "c", "", "catalog YAML or JSON file (default is the embedded catalog)")
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "verbose/debug output")

	cmd.AddCommand(newMatchCmd(opts))
	cmd.AddCommand(newCatalogCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func (o *rootOptions) logger() *zap.Logger {
	level := "warn"
	if o.debug {
		level = "debug"
	}
	l, err := logger.NewStderr(level, "console")
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func (o *rootOptions) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if o.catalogPath == "" {
		return catalog.Load(ctx, catalog.Options{Source: "embedded"})
	}
	return catalog.Load(ctx, catalog.Options{Source: "file", Path: o.catalogPath})
}
