// Command jsongen wires a Catalog to a YAML list of schema URLs and prints
// one generated instance. It is intentionally thin -- the interesting work
// lives in the root package.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jsongenhq/jsongen"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var catalogPath string
	var seed int64
	var localDir string

	cmd := &cobra.Command{
		Use:   "jsongen [name]",
		Short: "Generate a synthetic JSON document from a catalog of JSON Schemas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			var cache jsongen.Cache
			if localDir != "" {
				dc, err := jsongen.NewDirCache(localDir, log)
				if err != nil {
					return err
				}
				defer dc.Close()
				cache = dc
			} else {
				cache = jsongen.NewHTTPCache(0, log)
			}

			catalog, err := jsongen.NewCatalogFromFile(catalogPath, cache)
			if err != nil {
				return err
			}
			catalog = catalog.WithLogger(log)
			if seed != 0 {
				catalog = catalog.WithSeed(seed)
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			out, err := catalog.Generate(name)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "catalog.yaml", "path to a YAML file listing schema URLs")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for deterministic generation (0 = random)")
	cmd.Flags().StringVar(&localDir, "local-dir", "", "serve schemas from a local directory instead of fetching over HTTP")

	return cmd
}
