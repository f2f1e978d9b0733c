// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/btcsuite/btcd/wire"
)

// WitnessScaleFactor determines the level of "discount" witness data
// receives compared to "base" data.  A scale factor of 4, denotes that
// witness data is 1/4 as cheap as regular non-witness data.
const WitnessScaleFactor = 4

// serializeSize returns the number of bytes putTx writes for the given
// encoding.  It must stay in lockstep with putTx.
func (tx *Tx) serializeSize(enc Encoding) int {
	doWitness := enc == WitnessEncoding && tx.HasWitness()

	// Version 4 bytes + LockTime 4 bytes + Serialized varint size for the
	// number of transaction inputs and outputs.
	n := 8 + wire.VarIntSerializeSize(uint64(len(tx.TxIn))) +
		wire.VarIntSerializeSize(uint64(len(tx.TxOut)))

	// The marker and flag fields take up two additional bytes.
	if doWitness {
		n += 2
	}

	for _, txIn := range tx.TxIn {
		n += txIn.SerializeSize()
		if doWitness {
			n += txIn.Witness.SerializeSize()
		}
	}

	for _, txOut := range tx.TxOut {
		n += txOut.SerializeSize()
	}

	return n
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction, including witness data when any input carries some.
func (tx *Tx) SerializeSize() int {
	return tx.serializeSize(WitnessEncoding)
}

// SerializeSizeStripped returns the number of bytes it would take to serialize
// the transaction, excluding any included witness data.
func (tx *Tx) SerializeSizeStripped() int {
	return tx.serializeSize(BaseEncoding)
}

// Weight computes the value of the weight metric for the transaction as
// defined in BIP0141: the stripped size scaled by WitnessScaleFactor-1 plus
// the full size.
func (tx *Tx) Weight() int64 {
	baseSize := tx.SerializeSizeStripped()
	totalSize := tx.SerializeSize()

	return int64((baseSize * (WitnessScaleFactor - 1)) + totalSize)
}

// VirtualSize returns the weight of the transaction divided by
// WitnessScaleFactor, rounded up.
func (tx *Tx) VirtualSize() int64 {
	return (tx.Weight() + (WitnessScaleFactor - 1)) / WitnessScaleFactor
}
