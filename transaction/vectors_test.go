// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

// genesisCoinbaseHex is the coinbase transaction of the main network genesis
// block.
const genesisCoinbaseHex = "01000000010000000000000000000000000000000000000" +
	"000000000000000000000000000ffffffff4d04ffff001d0104455468652054696d" +
	"65732030332f4a616e2f32303039204368616e63656c6c6f72206f6e206272696e" +
	"6b206f66207365636f6e64206261696c6f757420666f722062616e6b73ffffffff" +
	"0100f2052a01000000434104678afdb0fe5548271967f1a67130b7105cd6a828e0" +
	"3909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c384df7ba0b" +
	"8d578a4c702b6bf11d5fac00000000"

// block170TxHex is the first transaction spending a coinbase output, found in
// main network block 170.
const block170TxHex = "0100000001c997a5e56e104102fa209c6a852dd90660a20b2" +
	"d9c352423edce25857fcd3704000000004847304402204e45e16932b8af514961a1" +
	"d3a1a25fdf3f4f7732e9d624c6c61548ab5fb8cd410220181522ec8eca07de4860a" +
	"4acdd12909d831cc56cbbac4622082221a8768d1d0901ffffffff0200ca9a3b0000" +
	"0000434104ae1a62fe09c5f51b13905f07f06b99a2f7159b2225f374cd378d71302" +
	"fa28414e7aab37397f554a7df5f142c21c1b7303b8a0626f1baded5c72a704f7e6c" +
	"d84cac00286bee0000000043410411db93e1dcdb8a016b49840f8c53bc1eb68a382e" +
	"97b1482ecad7b148a6909a5cb2e0eaddfb84ccf9744464f82e160bfa9b8b64f9d4c" +
	"03f999b8643f656b412a3ac00000000"

// block170PrevScript is the pay-to-pubkey script of block 9's coinbase, the
// output spent by block170TxHex.
const block170PrevScript = "410411db93e1dcdb8a016b49840f8c53bc1eb68a382e97b" +
	"1482ecad7b148a6909a5cb2e0eaddfb84ccf9744464f82e160bfa9b8b64f9d4c03f9" +
	"99b8643f656b412a3ac"

// bip143SignedHex is the signed transaction of the native P2WPKH example in
// BIP0143.  Input 0 spends a pay-to-pubkey output and input 1 a P2WPKH
// output.
const bip143SignedHex = "01000000000102fff7f7881a8099afa6940d42d1e7f6362be" +
	"c38171ea3edf433541db4e4ad969f00000000494830450221008b9d1dc26ba6a9cb6" +
	"2127b02742fa9d754cd3bebf337f7a55d114c8e5cdd30be022040529b194ba3f9281" +
	"a99f2b1c0a19c0489bc22ede944ccf4ecbab4cc618ef3ed01eeffffffef51e1b804c" +
	"c89d182d279655c3aa89e815b1b309fe287d9b2b55d57b90ec68a0100000000fffff" +
	"fff02202cb206000000001976a9148280b37df378db99f66f85c95a783a76ac7a6d5" +
	"988ac9093510d000000001976a9143bde42dbee7e4dbe6a21b2d50ce2f0167faa815" +
	"988ac000247304402203609e17b84f6a7d30c80bfa610b5b4542f32a8a0d5447a12f" +
	"b1366d7f01cc44a0220573a954c4518331561406f90300e8f3358f51928d43c212a8" +
	"caed02de67eebee0121025476c2e83188368da1ff3e292e7acafcdb3566bb0ad253f" +
	"62fc70f07aeee635711000000"

// bip143PrevScript0 is the pay-to-pubkey script spent by input 0 of
// bip143SignedHex.
const bip143PrevScript0 = "2103c9f4836b9a4f77fc0d81f7bcb01b7f1b35916864b947" +
	"6c241ce9fc198bd25432ac"

// bip143ScriptCode1 is the BIP0143 scriptCode for the P2WPKH output spent by
// input 1 of bip143SignedHex, and bip143Amount1 its value.
const (
	bip143ScriptCode1        = "76a9141d0f172a0ecb48aee1be1f2687d2963ae33f71a188ac"
	bip143Amount1     uint64 = 600000000
)

// bip143P2SHHex is the unsigned transaction of the P2SH-P2WPKH example in
// BIP0143.
const bip143P2SHHex = "0100000001db6b1b20aa0fd7b23880be2ecbd4a98130974cf47" +
	"48fb66092ac4d3ceb1a54770100000000feffffff02b8b4eb0b000000001976a914a" +
	"457b684d7f0d539a46a45bbc043f35b59d0d96388ac0008af2f000000001976a914f" +
	"d270b1ee6abcaea97fea7ad0402e8bd8ad6d77c88ac92040000"

// hexToBytes converts the passed hex string into bytes and will panic if there
// is an error.  This is only provided for the hard-coded constants so errors in
// the source code can be detected. It will only (and must only) be called with
// hard-coded values.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

// hashFromHex returns the hash whose bytes, in internal order, are given by s.
func hashFromHex(s string) chainhash.Hash {
	var hash chainhash.Hash
	if len(s) != 2*chainhash.HashSize {
		panic("invalid hash length in source file: " + s)
	}
	copy(hash[:], hexToBytes(s))
	return hash
}

// msgTxFromHex decodes s with btcd's wire package so it can serve as an
// independent reference implementation.
func msgTxFromHex(t *testing.T, s string) *wire.MsgTx {
	t.Helper()

	msgTx := wire.NewMsgTx(wire.TxVersion)
	err := msgTx.Deserialize(bytes.NewReader(hexToBytes(s)))
	require.NoError(t, err)

	return msgTx
}

// mustFromHex decodes s and fails the test on error.
func mustFromHex(t *testing.T, s string) *Tx {
	t.Helper()

	tx, err := FromHex(s)
	require.NoError(t, err)

	return tx
}
