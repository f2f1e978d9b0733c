// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// TestNew ensures a new transaction starts out empty with the default version
// and lock time.
func TestNew(t *testing.T) {
	tx := New()

	require.Equal(t, int32(TxVersion), tx.Version)
	require.Zero(t, tx.LockTime)
	require.Empty(t, tx.TxIn)
	require.Empty(t, tx.TxOut)
	require.False(t, tx.HasWitness())
	require.Equal(t, "01000000000000000000", tx.Hex())
}

// TestAddInputOutput ensures inputs and outputs are appended in order with
// the expected defaults and option overrides.
func TestAddInputOutput(t *testing.T) {
	t.Parallel()

	hash := chainhash.Hash{0x01, 0x02}
	sigScript := []byte{0x51}
	witness := TxWitness{{0x01}, {0x02, 0x03}}

	tx := New()
	idx, err := tx.AddInput(&hash, 7)
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	idx, err = tx.AddInput(&hash, 8, WithSequence(0xfffffffe),
		WithSignatureScript(sigScript))
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	idx, err = tx.AddWitnessInput(&hash, 9, witness, WithSequence(5))
	require.NoError(t, err)
	require.Equal(t, 2, idx)

	idx, err = tx.AddOutput([]byte{0x6a}, 1000)
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	idx, err = tx.AddOutput(nil, 0)
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	want := []*TxIn{{
		PreviousOutPoint: OutPoint{Hash: hash, Index: 7},
		Sequence:         MaxTxInSequenceNum,
	}, {
		PreviousOutPoint: OutPoint{Hash: hash, Index: 8},
		SignatureScript:  sigScript,
		Sequence:         0xfffffffe,
	}, {
		PreviousOutPoint: OutPoint{Hash: hash, Index: 9},
		Witness:          witness,
		Sequence:         5,
	}}
	require.Equal(t, want, tx.TxIn)
	require.Equal(t, []*TxOut{
		{Value: 1000, PkScript: []byte{0x6a}},
		{Value: 0},
	}, tx.TxOut)
	require.True(t, tx.HasWitness())

	// Updating in place changes only the addressed input.
	require.NoError(t, tx.SetInputScript(0, []byte{0x00}))
	require.NoError(t, tx.SetWitness(1, TxWitness{{0xff}}))
	require.Equal(t, []byte{0x00}, tx.TxIn[0].SignatureScript)
	require.Equal(t, TxWitness{{0xff}}, tx.TxIn[1].Witness)
	require.Equal(t, sigScript, tx.TxIn[1].SignatureScript)
}

// TestConstraintErrors ensures arguments the types cannot restrict are
// rejected with constraint errors.
func TestConstraintErrors(t *testing.T) {
	t.Parallel()

	hash := chainhash.Hash{}
	tx := New()
	_, err := tx.AddInput(&hash, 0)
	require.NoError(t, err)

	tests := []struct {
		name string
		fn   func() error
		code ErrorCode
	}{{
		name: "output above max satoshi",
		fn: func() error {
			_, err := tx.AddOutput(nil, btcutil.MaxSatoshi+1)
			return err
		},
		code: ErrInvalidAmount,
	}, {
		name: "oversized output script",
		fn: func() error {
			_, err := tx.AddOutput(make([]byte, MaxScriptSize+1), 1)
			return err
		},
		code: ErrScriptTooLarge,
	}, {
		name: "oversized signature script",
		fn: func() error {
			_, err := tx.AddInput(&hash, 1, WithSignatureScript(
				make([]byte, MaxScriptSize+1)))
			return err
		},
		code: ErrScriptTooLarge,
	}, {
		name: "oversized witness item",
		fn: func() error {
			_, err := tx.AddWitnessInput(&hash, 1, TxWitness{
				make([]byte, MaxWitnessItemSize+1),
			})
			return err
		},
		code: ErrWitnessTooLarge,
	}, {
		name: "set script on missing input",
		fn:   func() error { return tx.SetInputScript(1, nil) },
		code: ErrIndexOutOfRange,
	}, {
		name: "set witness on negative input",
		fn:   func() error { return tx.SetWitness(-1, nil) },
		code: ErrIndexOutOfRange,
	}}

	for _, test := range tests {
		err := test.fn()
		require.Error(t, err, test.name)
		require.True(t, IsErrorCode(err, test.code), "%s: %v",
			test.name, err)
		require.True(t, test.code.IsConstraint(), test.name)
	}

	// None of the failed calls may have modified the transaction.
	require.Len(t, tx.TxIn, 1)
	require.Empty(t, tx.TxOut)

	// The maximum amount itself is fine.
	_, err = tx.AddOutput(nil, btcutil.MaxSatoshi)
	require.NoError(t, err)
}

// TestCopy ensures a copy is equal to the original and shares no memory that
// would let changes to one show up in the other.
func TestCopy(t *testing.T) {
	t.Parallel()

	for _, txHex := range []string{
		genesisCoinbaseHex, block170TxHex, bip143SignedHex,
	} {
		tx := mustFromHex(t, txHex)
		origBytes := tx.BytesWithWitness()

		txCopy := tx.Copy()
		if !reflect.DeepEqual(tx, txCopy) {
			t.Fatalf("copy is not equal - got %v, want %v",
				spew.Sdump(txCopy), spew.Sdump(tx))
		}

		// Mutate everything reachable from the copy.
		txCopy.Version++
		txCopy.LockTime++
		for _, txIn := range txCopy.TxIn {
			txIn.PreviousOutPoint.Index++
			txIn.Sequence++
			for i := range txIn.SignatureScript {
				txIn.SignatureScript[i] ^= 0xff
			}
			for _, item := range txIn.Witness {
				for i := range item {
					item[i] ^= 0xff
				}
			}
		}
		for _, txOut := range txCopy.TxOut {
			txOut.Value++
			for i := range txOut.PkScript {
				txOut.PkScript[i] ^= 0xff
			}
		}
		txCopy.TxOut = append(txCopy.TxOut, &TxOut{Value: 1})

		require.Equal(t, origBytes, tx.BytesWithWitness())
		require.Equal(t, txHex, tx.HexWithWitness())
	}
}

// TestIsCoinBase ensures the coinbase predicate only accepts a single input
// spending the zero hash.
func TestIsCoinBase(t *testing.T) {
	t.Parallel()

	zeroHash := chainhash.Hash{}
	otherHash := chainhash.Hash{31: 0x01}

	tests := []struct {
		name   string
		hashes []chainhash.Hash
		want   bool
	}{
		{"no inputs", nil, false},
		{"zero hash", []chainhash.Hash{zeroHash}, true},
		{"non-zero hash", []chainhash.Hash{otherHash}, false},
		{"two zero hashes", []chainhash.Hash{zeroHash, zeroHash}, false},
		{"zero hash then other", []chainhash.Hash{zeroHash, otherHash}, false},
	}

	for _, test := range tests {
		tx := New()
		for i := range test.hashes {
			_, err := tx.AddInput(&test.hashes[i], MaxPrevOutIndex)
			require.NoError(t, err)
		}
		require.Equal(t, test.want, tx.IsCoinBase(), test.name)
	}

	require.True(t, mustFromHex(t, genesisCoinbaseHex).IsCoinBase())
	require.False(t, mustFromHex(t, block170TxHex).IsCoinBase())
	require.True(t, IsCoinBaseHash(&zeroHash))
	require.False(t, IsCoinBaseHash(&otherHash))
}

// TestHasWitness ensures only non-empty witness stacks count as witness data.
func TestHasWitness(t *testing.T) {
	t.Parallel()

	hash := chainhash.Hash{}
	tx := New()
	_, err := tx.AddInput(&hash, 0)
	require.NoError(t, err)
	_, err = tx.AddWitnessInput(&hash, 1, TxWitness{})
	require.NoError(t, err)
	require.False(t, tx.HasWitness())

	// An empty witness encodes identically with and without witness.
	require.Equal(t, tx.Bytes(), tx.BytesWithWitness())

	require.NoError(t, tx.SetWitness(0, TxWitness{nil}))
	require.True(t, tx.HasWitness())
	require.False(t, bytes.Equal(tx.Bytes(), tx.BytesWithWitness()))
}

// TestOutPointString ensures outpoints print as the reversed hash and index.
func TestOutPointString(t *testing.T) {
	t.Parallel()

	tx := mustFromHex(t, block170TxHex)
	require.Equal(t, "0437cd7f8525ceed2324359c2d0ba26006d92d856a9c20fa"+
		"0241106ee5a597c9:0", tx.TxIn[0].PreviousOutPoint.String())

	op := NewOutPoint(&chainhash.Hash{}, MaxPrevOutIndex)
	require.Equal(t, "0000000000000000000000000000000000000000000000000000"+
		"000000000000:4294967295", op.String())
}
