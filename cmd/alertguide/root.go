package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/alertguide/pkg/assets"
	"github.com/vanderheijden86/alertguide/pkg/config"
	"github.com/vanderheijden86/alertguide/pkg/content"
	"github.com/vanderheijden86/alertguide/pkg/debug"
	"github.com/vanderheijden86/alertguide/pkg/guide"
	"github.com/vanderheijden86/alertguide/pkg/version"
)

// rootOptions are the persistent flags. Empty values leave the env, file or
// default setting in place.
type rootOptions struct {
	configPath string
	theme      string
	direction  string
	assetsDir  string
	content    string
	noWatch    bool
}

// settings is everything a command needs after flags, env and config file
// have been merged.
type settings struct {
	cfg       config.Config
	guide     *guide.Guide
	direction guide.Direction

	// directionSet is true when a flag, ALERTGUIDE_DIRECTION or the config
	// file chose the direction.
	directionSet bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "alertguide",
		Short: "TradingView alert setup guide for the terminal",
		Long: `alertguide walks through setting up buy (long entry) and sell (long exit)
alerts in TradingView, one step card at a time, with the screenshot for
each step resolved from the assets directory.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.resolve()
			if err != nil {
				return err
			}
			return runTUI(s, opts.noWatch)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/alertguide/config.yaml)")
	pf.StringVarP(&opts.theme, "theme", "t", "", "theme preset: classic or dark")
	pf.StringVarP(&opts.direction, "direction", "d", "", "initial tab: buy or sell")
	pf.StringVarP(&opts.assetsDir, "assets", "a", "", "directory the screenshots are resolved from")
	pf.StringVarP(&opts.content, "content", "c", "", "guide YAML file (default: built-in guide)")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "do not reload the content file when it changes")

	cmd.AddCommand(
		newExportCmd(opts),
		newCheckCmd(opts),
		newPrintCmd(opts),
		newInitCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// resolve merges settings with precedence flags > env > config file >
// defaults and loads the guide.
func (o *rootOptions) resolve() (settings, error) {
	defer debug.LogEnterExit("resolve settings")()

	var (
		cfg config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFrom(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return settings{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return settings{}, err
	}

	if o.theme != "" {
		cfg.UI.Theme = o.theme
	}
	if o.direction != "" {
		cfg.UI.DefaultDirection = o.direction
	}
	if o.assetsDir != "" {
		cfg.Assets.Dir = o.assetsDir
	}
	if o.content != "" {
		cfg.Content.Path = o.content
	}
	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}

	dir, directionSet := guide.Buy, cfg.UI.DefaultDirection != ""
	if directionSet {
		if dir, err = guide.ParseDirection(cfg.UI.DefaultDirection); err != nil {
			return settings{}, err
		}
	}

	g, err := content.Load(cfg.Content.Path)
	if err != nil {
		return settings{}, fmt.Errorf("loading guide: %w", err)
	}
	debug.Log("settings: theme=%s direction=%s assets=%s content=%q",
		cfg.UI.Theme, dir, cfg.Assets.Dir, cfg.Content.Path)

	return settings{cfg: cfg, guide: g, direction: dir, directionSet: directionSet}, nil
}

// store returns an image store rooted at the configured assets directory.
func (s settings) store() *assets.Store {
	return assets.NewStore(assets.NewDirResolver(s.cfg.Assets.Dir))
}
