package main

import (
	"github.com/spf13/cobra"

	"github.com/filecrypt-go/filecrypt"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "filecrypt",
		Short:         "Encrypt and decrypt files with a pluggable cipher catalog",
		Version:       filecrypt.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().String("config", "", "path to a TOML config file overriding the default pipeline knobs")

	root.AddCommand(newEncryptCmd())
	root.AddCommand(newDecryptCmd())
	root.AddCommand(newKeygenCmd())
	root.AddCommand(newDetectCmd())
	root.AddCommand(newCiphersCmd())
	return root
}

// loadConfig reads the --config flag (if set) and returns the resulting
// Config, or filecrypt.NewConfig()'s defaults if the flag was left empty.
func loadConfig(cmd *cobra.Command) (*filecrypt.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		return filecrypt.NewConfig(), nil
	}
	return filecrypt.LoadConfigFile(path)
}
