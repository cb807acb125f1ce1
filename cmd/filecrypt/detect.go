package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filecrypt-go/filecrypt"
)

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect <input>",
		Short: "Identify the cipher used to produce an encrypted file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, _, err := filecrypt.DetectAlgorithm(args[0])
			if err != nil {
				return err
			}
			if tag == "" {
				fmt.Println("unknown")
				return nil
			}
			fmt.Printf("%s (%s)\n", tag, filecrypt.DisplayNameFor(tag))
			return nil
		},
	}
	return cmd
}

func newCiphersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ciphers",
		Short: "List the registered cipher catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, tag := range filecrypt.Ciphers() {
				ext := filecrypt.ExtensionFor(tag)
				fmt.Printf("%s  %-16s .%s\n", tag, filecrypt.DisplayNameFor(tag), ext)
			}
			return nil
		},
	}
	return cmd
}
