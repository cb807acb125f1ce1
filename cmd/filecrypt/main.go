// Command filecrypt is the CLI front-end for the filecrypt pipeline. Most
// of its functionality lives in the root filecrypt package; this binary
// wires up the cipher catalog (by blank-importing ciphers) and a small
// cobra command tree around EncryptFile/DecryptFile/LoadKey/DetectAlgorithm.
package main

import (
	"fmt"
	"os"

	"github.com/KimMachineGun/automemlimit/memlimit"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/filecrypt-go/filecrypt"
	_ "github.com/filecrypt-go/filecrypt/ciphers"
)

func main() {
	logger := filecrypt.Log()

	undo, err := maxprocs.Set(maxprocs.Logger(logger.Sugar().Infof))
	defer undo()
	if err != nil {
		logger.Warn("failed to set GOMAXPROCS", zap.Error(err))
	}

	_, _ = memlimit.SetGoMemLimitWithOpts(
		memlimit.WithProvider(
			memlimit.ApplyFallback(
				memlimit.FromCgroup,
				memlimit.FromSystem,
			),
		),
	)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
