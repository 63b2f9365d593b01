package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/alertguide/pkg/config"
	"github.com/vanderheijden86/alertguide/pkg/content"
	"github.com/vanderheijden86/alertguide/pkg/guide"
)

const defaultGuideFile = "alertguide.yaml"

func newInitCmd(root *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [guide.yaml]",
		Short: "Write an editable copy of the built-in guide and a starter config",
		Long: `init writes the built-in guide to a YAML file (default ./alertguide.yaml)
and a config file whose content.path points at it, so edits to the copy show
up in the UI without rebuilding. Existing files are kept unless --force is
given.

The global --theme, --direction and --assets flags are recorded in the new
config.`,
		Example: `  alertguide init
  alertguide init ~/guides/alerts.yaml --assets ~/guides/img`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guidePath := defaultGuideFile
			if len(args) == 1 {
				guidePath = args[0]
			}
			guidePath, err := filepath.Abs(guidePath)
			if err != nil {
				return err
			}

			cfgPath := root.configPath
			if cfgPath == "" {
				cfgPath = config.ConfigPath()
			}
			if !force {
				for _, p := range []string{guidePath, cfgPath} {
					if _, err := os.Stat(p); err == nil {
						return fmt.Errorf("%s already exists (use --force to overwrite)", p)
					} else if !errors.Is(err, os.ErrNotExist) {
						return err
					}
				}
			}

			cfg, err := starterConfig(root, guidePath)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(guidePath), 0o755); err != nil {
				return fmt.Errorf("creating guide directory: %w", err)
			}
			if err := os.WriteFile(guidePath, content.DefaultYAML(), 0o644); err != nil {
				return fmt.Errorf("writing guide: %w", err)
			}

			if root.configPath != "" {
				err = config.SaveTo(cfg, root.configPath)
			} else {
				err = config.Save(cfg)
			}
			if err != nil {
				return err
			}

			w := cmd.ErrOrStderr()
			fmt.Fprintf(w, "Wrote %s\n", guidePath)
			fmt.Fprintf(w, "Wrote %s\n", cfgPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	return cmd
}

// starterConfig is the default config pointed at guidePath, plus whatever
// the global flags set.
func starterConfig(root *rootOptions, guidePath string) (config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Content.Path = guidePath

	if root.theme != "" {
		cfg.UI.Theme = root.theme
	}
	if root.direction != "" {
		d, err := guide.ParseDirection(root.direction)
		if err != nil {
			return cfg, err
		}
		cfg.UI.DefaultDirection = d.String()
	}
	if root.assetsDir != "" {
		dir, err := filepath.Abs(root.assetsDir)
		if err != nil {
			return cfg, err
		}
		cfg.Assets.Dir = dir
	}
	return cfg, cfg.Validate()
}
