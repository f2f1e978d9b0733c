// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// TxHash generates the Hash for the transaction.  It is the double sha256 of
// the serialization without witness data, in internal byte order.
func (tx *Tx) TxHash() chainhash.Hash {
	return chainhash.DoubleHashH(tx.Bytes())
}

// TxID returns the transaction id: the TxHash with its bytes reversed, as
// lowercase hex.
func (tx *Tx) TxID() string {
	hash := tx.TxHash()
	return hash.String()
}

// WitnessHash generates the hash of the transaction serialized according to
// the new witness serialization defined in BIP0141 and BIP0144.  The final
// output is used within the Segregated Witness commitment of all the witnesses
// within a block.  If a transaction has no witness data, then the witness hash
// is the same as its txid.
func (tx *Tx) WitnessHash() chainhash.Hash {
	return chainhash.DoubleHashH(tx.BytesWithWitness())
}

// WitnessID is TxID for WitnessHash.
func (tx *Tx) WitnessID() string {
	hash := tx.WitnessHash()
	return hash.String()
}
