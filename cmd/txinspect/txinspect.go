// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btclog"
	"github.com/btcsuite/btctx/transaction"
)

// log is replaced by a real logger in realMain.
var log = btclog.Disabled

// readHexTx returns the hex encoded transaction from the command line, the
// configured file or stdin.
func readHexTx(cfg *config, stdin io.Reader) (string, error) {
	if cfg.hexTx != "" {
		return strings.TrimSpace(cfg.hexTx), nil
	}

	var data []byte
	var err error
	if cfg.InFile == defaultInFile {
		log.Debug("Reading transaction from standard input")
		data, err = io.ReadAll(stdin)
	} else {
		log.Debugf("Reading transaction from %s", cfg.InFile)
		data, err = os.ReadFile(cfg.InFile)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// decodeTx decodes the hex encoded transaction honoring --nostrict.
func decodeTx(cfg *config, hexTx string) (*transaction.Tx, error) {
	if !cfg.NoStrict {
		return transaction.FromHex(hexTx)
	}

	serializedTx, err := hex.DecodeString(hexTx)
	if err != nil {
		return nil, fmt.Errorf("argument must be hexadecimal string "+
			"(not %q): %v", hexTx, err)
	}
	tx, n, err := transaction.FromBytesNoStrict(serializedTx)
	if err != nil {
		return nil, err
	}
	if n < len(serializedTx) {
		log.Warnf("Ignoring %d bytes following the transaction",
			len(serializedTx)-n)
	}
	return tx, nil
}

// calcSigHash computes the signature hash selected by the signature hash
// options.
func calcSigHash(cfg *config, tx *transaction.Tx) (*sigHashResult, error) {
	opts := &cfg.SigHash
	prevScript, err := hex.DecodeString(opts.PrevScript)
	if err != nil {
		return nil, fmt.Errorf("previous script must be hexadecimal "+
			"string (not %q): %v", opts.PrevScript, err)
	}

	result := &sigHashResult{
		Input:    opts.Input,
		HashType: cfg.hashType.String(),
		Witness:  opts.Witness,
	}

	if !opts.Witness {
		if opts.Input >= len(tx.TxIn) {
			log.Warnf("Input %d does not exist, the signature hash "+
				"is the special value 1", opts.Input)
		}
		hash, err := tx.SignatureHash(opts.Input, prevScript,
			cfg.hashType)
		if err != nil {
			return nil, err
		}
		result.Hash = hex.EncodeToString(hash[:])
		return result, nil
	}

	amount, err := btcutil.NewAmount(opts.Amount)
	if err != nil {
		return nil, err
	}
	result.Amount = amount.ToBTC()

	hash, err := tx.WitnessSignatureHash(opts.Input, prevScript,
		uint64(amount), cfg.hashType)
	if err != nil {
		return nil, err
	}
	result.Hash = hex.EncodeToString(hash[:])
	return result, nil
}

// inspect decodes the transaction read according to cfg and writes its JSON
// description to w.
func inspect(cfg *config, stdin io.Reader, w io.Writer) error {
	hexTx, err := readHexTx(cfg, stdin)
	if err != nil {
		log.Errorf("Failed to read transaction: %v", err)
		return err
	}

	tx, err := decodeTx(cfg, hexTx)
	if err != nil {
		log.Errorf("Failed to decode transaction: %v", err)
		return err
	}
	log.Debugf("Decoded transaction %v with %d inputs and %d outputs",
		tx.TxID(), len(tx.TxIn), len(tx.TxOut))

	result := createTxInspectResult(tx, cfg.netParams)

	if cfg.SigHash.Input >= 0 {
		result.SigHash, err = calcSigHash(cfg, tx)
		if err != nil {
			log.Errorf("Failed to compute signature hash: %v", err)
			return err
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// realMain is the real main function for the utility.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func realMain(args []string, stdin io.Reader, stdout io.Writer) error {
	// Load configuration and parse command line.
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	// Setup logging.  Standard output carries the JSON result, so log
	// lines go to standard error.
	backendLogger := btclog.NewBackend(os.Stderr)
	log = backendLogger.Logger("TXIN")
	log.SetLevel(cfg.logLevel)
	txLog := backendLogger.Logger("TXCD")
	txLog.SetLevel(cfg.logLevel)
	transaction.UseLogger(txLog)
	defer transaction.DisableLog()

	return inspect(cfg, stdin, stdout)
}

func main() {
	if err := realMain(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		os.Exit(1)
	}
}
