// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btclog"
	"github.com/btcsuite/btctx/transaction"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultLogLevel = "info"
	defaultInFile   = "-"
	defaultInput    = -1
	defaultHashType = "ALL"
)

// sigHashConfig holds the options of the optional signature hash printout.
type sigHashConfig struct {
	Input      int     `long:"input" description:"Index of the input to compute the signature hash of -- Use -1 to disable"`
	PrevScript string  `long:"prevscript" description:"Hex encoded public key script (or BIP0143 script code) of the output spent by the input"`
	Amount     float64 `long:"amount" description:"Value in BTC of the output spent by the input -- Only used with --witness"`
	HashType   string  `long:"hashtype" description:"Signature hash type, for example ALL, NONE|ANYONECANPAY or 0x83"`
	Witness    bool    `long:"witness" description:"Compute the BIP0143 signature hash instead of the legacy one"`
}

// config defines the configuration options for txinspect.
//
// See loadConfig for details on the configuration load process.
type config struct {
	DebugLevel     string        `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical, off}"`
	InFile         string        `short:"i" long:"infile" description:"File containing the hex encoded transaction -- Use - for standard input"`
	NoStrict       bool          `long:"nostrict" description:"Ignore any data following the transaction"`
	RegressionTest bool          `long:"regtest" description:"Use the regression test network"`
	SimNet         bool          `long:"simnet" description:"Use the simulation test network"`
	TestNet3       bool          `long:"testnet" description:"Use the test network"`
	SigHash        sigHashConfig `group:"Signature Hash Options"`

	// hexTx is the transaction given on the command line, if any.
	hexTx string

	netParams *chaincfg.Params
	logLevel  btclog.Level
	hashType  transaction.SigHashType
}

// loadConfig initializes and parses the config using the passed command line
// options.  A hex encoded transaction may be given as the only positional
// argument, in which case --infile is ignored.
func loadConfig(args []string) (*config, error) {
	// Default config.
	cfg := config{
		DebugLevel: defaultLogLevel,
		InFile:     defaultInFile,
		SigHash: sigHashConfig{
			Input:    defaultInput,
			HashType: defaultHashType,
		},
		netParams: &chaincfg.MainNetParams,
	}

	// Parse command line options.
	parser := flags.NewParser(&cfg, flags.Default)
	parser.Usage = "[OPTIONS] [hex-encoded-transaction]"
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		var e *flags.Error
		if !errors.As(err, &e) || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return nil, err
	}

	// Multiple networks can't be selected simultaneously.
	funcName := "loadConfig"
	numNets := 0
	// Count number of network flags passed; assign active network params
	// while we're at it
	if cfg.TestNet3 {
		numNets++
		cfg.netParams = &chaincfg.TestNet3Params
	}
	if cfg.RegressionTest {
		numNets++
		cfg.netParams = &chaincfg.RegressionNetParams
	}
	if cfg.SimNet {
		numNets++
		cfg.netParams = &chaincfg.SimNetParams
	}
	if numNets > 1 {
		str := "%s: The testnet, regtest, and simnet params can't be " +
			"used together -- choose one of the three"
		err := fmt.Errorf(str, funcName)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, err
	}

	// Validate debug log level.
	level, ok := btclog.LevelFromString(cfg.DebugLevel)
	if !ok {
		str := "%s: The specified debug level [%v] is invalid"
		err := fmt.Errorf(str, funcName, cfg.DebugLevel)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, err
	}
	cfg.logLevel = level

	// Validate the signature hash options.
	cfg.hashType, err = transaction.ParseSigHashType(cfg.SigHash.HashType)
	if err != nil {
		err := fmt.Errorf("%s: %v", funcName, err)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, err
	}
	if cfg.SigHash.Amount < 0 {
		str := "%s: The amount of the spent output may not be negative"
		err := fmt.Errorf(str, funcName)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, err
	}

	switch len(remainingArgs) {
	case 0:
	case 1:
		cfg.hexTx = remainingArgs[0]
	default:
		str := "%s: Too many arguments -- expected at most one " +
			"transaction, got %d"
		err := fmt.Errorf(str, funcName, len(remainingArgs))
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, err
	}

	return &cfg, nil
}
