package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filecrypt-go/filecrypt"
)

func newEncryptCmd() *cobra.Command {
	var (
		output    string
		keyPath   string
		keyOut    string
		cipherTag string
	)

	cmd := &cobra.Command{
		Use:   "encrypt <input>",
		Short: "Encrypt a file under a registered cipher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			cipher, err := filecrypt.GetCipher(cipherTag)
			if err != nil {
				return err
			}

			var key []byte
			if keyPath != "" {
				loaded, err := filecrypt.LoadKey(keyPath)
				if err != nil {
					return err
				}
				key = loaded
			}

			input := args[0]
			out := output
			if out == "" {
				out = filecrypt.EncryptedPathFor(input, cipher)
			}

			usedKey, err := filecrypt.EncryptFile(context.Background(), input, out, cipher, key, keyOut, cfg)
			if err != nil {
				return err
			}
			if keyOut == "" {
				fmt.Printf("encrypted %s -> %s\nkey: %X\n", input, out, []byte(usedKey))
			} else {
				fmt.Printf("encrypted %s -> %s\nkey saved to %s\n", input, out, keyOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: input path with the cipher's registered extension)")
	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "path to an existing key file (hex, Base64, or raw); a fresh key is generated if omitted")
	cmd.Flags().StringVar(&keyOut, "key-out", "", "path to persist the (possibly generated) key as uppercase hex")
	cmd.Flags().StringVarP(&cipherTag, "cipher", "c", "CC20", "4-character cipher tag from the catalog (see the ciphers command)")
	return cmd
}
