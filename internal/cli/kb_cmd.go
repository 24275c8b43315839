package cli

import (
	"context"
	"fmt"

	"dadmind/internal/config"
	"dadmind/internal/logger"
	"dadmind/internal/service"

	"github.com/spf13/cobra"
)

func newKnowledgeCmd(app *App) *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "kb",
		Short: "Load the configured knowledge documents and report the outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKnowledge(cmd, app, configPath, verbose)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Configuration file (defaults to ./config.yaml)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log per-document progress")
	return cmd
}

func runKnowledge(cmd *cobra.Command, app *App, configPath string, verbose bool) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadConfigFile(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}
	if verbose {
		if err := logger.Initialize(cfg.Logger); err != nil {
			return err
		}
		defer logger.Sync()
	}

	descriptors := cfg.Knowledge.Descriptors()
	out := cmd.OutOrStdout()
	if len(descriptors) == 0 {
		fmt.Fprintln(out, "No knowledge documents configured.")
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Knowledge.LoadTimeout)
	defer cancel()

	loader := service.NewKnowledgeLoader(app.NewSource(cfg.Knowledge.LoadTimeout), app.Decoder)
	texts, errs := loader.Load(ctx, descriptors)

	for _, d := range descriptors {
		if text, ok := texts[d.Name]; ok {
			fmt.Fprintf(out, "loaded  %s (%d chars)\n", d.Name, len([]rune(text)))
		}
	}
	for _, e := range errs {
		fmt.Fprintf(out, "failed  %s\n", e)
	}
	fmt.Fprintf(out, "%d/%d documents loaded\n", len(texts), len(descriptors))
	return nil
}
