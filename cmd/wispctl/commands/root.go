// Package commands implements wispctl, an operator CLI over the plan store.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/wispgen/internal/config"
	"github.com/mmynk/wispgen/internal/document"
	"github.com/mmynk/wispgen/internal/service"
	"github.com/mmynk/wispgen/internal/storage/sqlite"
	"github.com/mmynk/wispgen/pkg/logging"
)

type app struct {
	configPath string
	dbPath     string
	variant    string

	store *sqlite.SQLiteStore
	wisps *service.Wisps
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "wispctl",
		Short:        "Inspect and render stored security plans",
		SilenceUsage: true,
	}
	root.PersistentPreRunE = a.open
	root.PersistentPostRunE = a.close

	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv("CONFIG_PATH"), "config file (YAML)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "database path (default from config)")
	root.PersistentFlags().StringVar(&a.variant, "variant", "", "document variant: comprehensive or summary")

	root.AddCommand(listCmd(a), showCmd(a), renderCmd(a), deleteCmd(a), diffCmd(a))
	return root
}

// open loads the config and opens the store. Flags win over the config file.
func (a *app) open(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	logging.Configure(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)

	if a.dbPath == "" {
		a.dbPath = cfg.Database.Path
	}
	if a.variant == "" {
		a.variant = cfg.Document.Variant
	}
	variant, err := document.ParseVariant(a.variant)
	if err != nil {
		return err
	}

	a.store, err = sqlite.New(a.dbPath)
	if err != nil {
		return err
	}
	a.wisps = service.NewWisps(a.store, service.Options{Variant: variant})
	return nil
}

func (a *app) close(cmd *cobra.Command, args []string) error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
