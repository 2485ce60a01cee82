// Rewrite a wallet file in the current format with a fresh IV. Legacy
// version 1 files are upgraded. With -new-password the file is re-encrypted
// under a password read from the terminal.
// Usage: go run ./cmd/reencrypt -in old.wallet [-out new.wallet] [-new-password] [-allow-unsafe-scrypt -scrypt-n 1024]
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/AlexZinkM/legacy-wallet/internal/account"
	"github.com/AlexZinkM/legacy-wallet/internal/config"
	"github.com/AlexZinkM/legacy-wallet/internal/crypto"
	"github.com/AlexZinkM/legacy-wallet/internal/logging"
	"github.com/AlexZinkM/legacy-wallet/wallet"
)

type options struct {
	in          string
	out         string
	newPassword bool
	logLevel    string
	kdf         crypto.KDFParams
}

func parseFlags(args []string) (options, error) {
	opts := options{kdf: crypto.DefaultKDFParams()}
	fs := flag.NewFlagSet("reencrypt", flag.ContinueOnError)
	fs.StringVar(&opts.in, "in", "", "wallet file to read")
	fs.StringVar(&opts.out, "out", "", "file to write (default: rewrite -in in place)")
	fs.BoolVar(&opts.newPassword, "new-password", false, "prompt for a new password")
	fs.IntVar(&opts.kdf.N, "scrypt-n", crypto.DefaultScryptN, "scrypt N")
	fs.IntVar(&opts.kdf.R, "scrypt-r", crypto.DefaultScryptR, "scrypt r")
	fs.IntVar(&opts.kdf.P, "scrypt-p", crypto.DefaultScryptP, "scrypt p")
	fs.BoolVar(&opts.kdf.AllowUnsafe, "allow-unsafe-scrypt", false, "accept scrypt N below the safe minimum")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	log, err := logging.New(opts.logLevel, "console")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(opts, log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options, log *zap.Logger) error {
	if opts.in == "" {
		return errors.New("-in is required")
	}

	serializer, err := wallet.NewSerializer(opts.kdf, log)
	if err != nil {
		return fmt.Errorf("invalid scrypt settings: %w", err)
	}

	password, err := config.ReadPassword("Enter wallet password: ")
	if err != nil {
		return err
	}
	defer clear(password)

	newPassword := password
	if opts.newPassword {
		if newPassword, err = readNewPassword(); err != nil {
			return err
		}
		defer clear(newPassword)
	}

	return reencrypt(serializer, opts.in, opts.out, password, newPassword, log)
}

func readNewPassword() ([]byte, error) {
	first, err := config.ReadPassword("Enter new password: ")
	if err != nil {
		return nil, err
	}
	second, err := config.ReadPassword("Repeat new password: ")
	if err != nil {
		clear(first)
		return nil, err
	}
	defer clear(second)

	if !bytes.Equal(first, second) {
		clear(first)
		return nil, errors.New("passwords do not match")
	}
	return first, nil
}

// reencrypt loads in with password and writes it to out (or back to in)
// under newPassword.
func reencrypt(serializer *wallet.Serializer, in, out string, password, newPassword []byte, log *zap.Logger) error {
	res, err := serializer.LoadFile(in, password)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", in, err)
	}
	defer res.Wipe()

	acc := account.New(res.Keys, res.CreationTimestamp)
	defer acc.Wipe()

	if out == "" || out == in {
		err = serializer.SaveFile(in, acc, res.HasDetails, res.History, res.Cache, newPassword)
		out = in
	} else {
		err = serializer.CreateFile(out, acc, res.HasDetails, res.History, res.Cache, newPassword)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	log.Info("wallet rewritten",
		zap.String("path", out),
		zap.Uint32("from_version", res.Version),
		zap.Uint32("to_version", wallet.CurrentVersion),
		zap.Int("transactions", res.History.TransactionCount()),
	)
	return nil
}
