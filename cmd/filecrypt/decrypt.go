package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filecrypt-go/filecrypt"
)

func newDecryptCmd() *cobra.Command {
	var (
		output    string
		keyPath   string
		cipherTag string
	)

	cmd := &cobra.Command{
		Use:   "decrypt <input>",
		Short: "Decrypt a file, detecting its cipher if not given explicitly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			input := args[0]
			tag := cipherTag
			if tag == "" {
				detected, _, err := filecrypt.DetectAlgorithm(input)
				if err != nil {
					return err
				}
				if detected == "" {
					return fmt.Errorf("filecrypt: could not detect cipher for %s; pass --cipher explicitly", input)
				}
				tag = detected
			}

			cipher, err := filecrypt.GetCipher(tag)
			if err != nil {
				return err
			}

			key, err := filecrypt.LoadKey(keyPath)
			if err != nil {
				return err
			}

			out := output
			if out == "" {
				out = input + ".dec"
			}

			ok, err := filecrypt.DecryptFile(context.Background(), input, out, cipher, key, cfg)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("filecrypt: decryption of %s failed (see logs for details)", input)
			}
			fmt.Printf("decrypted %s -> %s\n", input, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: <input>.dec)")
	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "path to the key file used to encrypt the input")
	cmd.Flags().StringVarP(&cipherTag, "cipher", "c", "", "4-character cipher tag (default: auto-detect from header or extension)")
	cmd.MarkFlagRequired("key")
	return cmd
}
