package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filecrypt-go/filecrypt"
)

func newKeygenCmd() *cobra.Command {
	var (
		output    string
		cipherTag string
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a fresh key for a registered cipher",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cipher, err := filecrypt.GetCipher(cipherTag)
			if err != nil {
				return err
			}
			raw, err := cipher.GenerateKey()
			if err != nil {
				return err
			}
			key, err := filecrypt.ValidateKeySize(raw)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Printf("%X\n", []byte(key))
				return nil
			}
			if err := filecrypt.SaveKeyHex(output, key); err != nil {
				return err
			}
			fmt.Printf("key saved to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the key as hex to this path instead of stdout")
	cmd.Flags().StringVarP(&cipherTag, "cipher", "c", "CC20", "4-character cipher tag from the catalog")
	return cmd
}
