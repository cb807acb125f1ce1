// Package ciphers is the standard distribution's registration point: it
// imports every concrete cipher package filecrypt ships for side effect,
// so that importing ciphers alone is enough to populate the registry
// (filecrypt.Ciphers()). This mirrors how a Caddy distribution
// blank-imports its module packages (see cmd/caddy/main.go in the
// example corpus) rather than the core package importing modules
// directly.
package ciphers

import (
	"github.com/filecrypt-go/filecrypt"
	"github.com/filecrypt-go/filecrypt/aescbc"
	"github.com/filecrypt-go/filecrypt/chacha"
)

func init() {
	filecrypt.RegisterCipher("CC20", filecrypt.CipherInfo{
		New:         func() filecrypt.Cipher { return chacha.CC20{} },
		DisplayName: "ChaCha20",
		Extension:   "cc20",
	})
	filecrypt.RegisterCipher("AES_", filecrypt.CipherInfo{
		New:         func() filecrypt.Cipher { return aescbc.AES256CBC{} },
		DisplayName: "AES-256-CBC",
		Extension:   "aes",
	})
}
