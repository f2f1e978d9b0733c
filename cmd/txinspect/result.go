// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btctx/transaction"
)

// sigHashResult describes the signature hash requested with --input.
type sigHashResult struct {
	Input    int     `json:"input"`
	HashType string  `json:"hashtype"`
	Witness  bool    `json:"witness"`
	Amount   float64 `json:"amount,omitempty"`
	Hash     string  `json:"hash"`
}

// txInspectResult models the data printed by txinspect.  It extends the
// decoderawtransaction result with the witness identifiers and sizes.
type txInspectResult struct {
	btcjson.TxRawDecodeResult
	Hash     string         `json:"hash"`
	Size     int            `json:"size"`
	VSize    int64          `json:"vsize"`
	Weight   int64          `json:"weight"`
	Coinbase bool           `json:"coinbase"`
	Witness  [][]string     `json:"witness,omitempty"`
	SigHash  *sigHashResult `json:"sighash,omitempty"`
}

// createVinList returns a slice of JSON objects for the inputs of the passed
// transaction.
func createVinList(tx *transaction.Tx) []btcjson.Vin {
	// Coinbase transactions only have a single txin by definition.
	vinList := make([]btcjson.Vin, len(tx.TxIn))
	if tx.IsCoinBase() {
		txIn := tx.TxIn[0]
		vinList[0].Coinbase = hex.EncodeToString(txIn.SignatureScript)
		vinList[0].Sequence = txIn.Sequence
		return vinList
	}

	for i, txIn := range tx.TxIn {
		// The disassembled string will contain [error] inline
		// if the script doesn't fully parse, so ignore the
		// error here.
		disbuf, _ := txscript.DisasmString(txIn.SignatureScript)

		vinEntry := &vinList[i]
		vinEntry.Txid = txIn.PreviousOutPoint.Hash.String()
		vinEntry.Vout = txIn.PreviousOutPoint.Index
		vinEntry.Sequence = txIn.Sequence
		vinEntry.ScriptSig = &btcjson.ScriptSig{
			Asm: disbuf,
			Hex: hex.EncodeToString(txIn.SignatureScript),
		}
	}

	return vinList
}

// createVoutList returns a slice of JSON objects for the outputs of the passed
// transaction.
func createVoutList(tx *transaction.Tx, params *chaincfg.Params) []btcjson.Vout {
	voutList := make([]btcjson.Vout, 0, len(tx.TxOut))
	for i, v := range tx.TxOut {
		// The disassembled string will contain [error] inline if the
		// script doesn't fully parse, so ignore the error here.
		disbuf, _ := txscript.DisasmString(v.PkScript)

		// Ignore the error here since an error means the script
		// couldn't parse and there is no additional information about
		// it anyways.
		scriptClass, addrs, reqSigs, _ := txscript.ExtractPkScriptAddrs(
			v.PkScript, params)

		encodedAddrs := make([]string, len(addrs))
		for j, addr := range addrs {
			encodedAddrs[j] = addr.EncodeAddress()
		}

		var vout btcjson.Vout
		vout.N = uint32(i)
		vout.Value = btcutil.Amount(v.Value).ToBTC()
		vout.ScriptPubKey.Addresses = encodedAddrs
		vout.ScriptPubKey.Asm = disbuf
		vout.ScriptPubKey.Hex = hex.EncodeToString(v.PkScript)
		vout.ScriptPubKey.Type = scriptClass.String()
		vout.ScriptPubKey.ReqSigs = int32(reqSigs)

		voutList = append(voutList, vout)
	}

	return voutList
}

// witnessToHex formats the passed witness stack as a slice of hex-encoded
// strings.
func witnessToHex(witness transaction.TxWitness) []string {
	// Ensure nil is returned when there are no entries versus an empty
	// slice so it can properly be omitted as necessary.
	if len(witness) == 0 {
		return nil
	}

	result := make([]string, 0, len(witness))
	for _, wit := range witness {
		result = append(result, hex.EncodeToString(wit))
	}

	return result
}

// createTxInspectResult builds the JSON description of tx.
func createTxInspectResult(tx *transaction.Tx,
	params *chaincfg.Params) *txInspectResult {

	result := &txInspectResult{
		TxRawDecodeResult: btcjson.TxRawDecodeResult{
			Txid:     tx.TxID(),
			Version:  tx.Version,
			Locktime: tx.LockTime,
			Vin:      createVinList(tx),
			Vout:     createVoutList(tx, params),
		},
		Hash:     tx.WitnessID(),
		Size:     tx.SerializeSize(),
		VSize:    tx.VirtualSize(),
		Weight:   tx.Weight(),
		Coinbase: tx.IsCoinBase(),
	}

	if tx.HasWitness() {
		result.Witness = make([][]string, len(tx.TxIn))
		for i, txIn := range tx.TxIn {
			result.Witness[i] = witnessToHex(txIn.Witness)
		}
	}

	return result
}
