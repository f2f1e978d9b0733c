// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

// FromMsgTx converts a btcd wire message into a Tx.  Scripts and witnesses
// are copied.  An output value that is negative or above btcutil.MaxSatoshi
// is an ErrInvalidAmount error.
func FromMsgTx(msgTx *wire.MsgTx) (*Tx, error) {
	tx := &Tx{
		Version:  msgTx.Version,
		TxIn:     make([]*TxIn, 0, len(msgTx.TxIn)),
		TxOut:    make([]*TxOut, 0, len(msgTx.TxOut)),
		LockTime: msgTx.LockTime,
	}

	for _, ti := range msgTx.TxIn {
		tx.TxIn = append(tx.TxIn, &TxIn{
			PreviousOutPoint: OutPoint{
				Hash:  ti.PreviousOutPoint.Hash,
				Index: ti.PreviousOutPoint.Index,
			},
			SignatureScript: copyBytes(ti.SignatureScript),
			Witness:         TxWitness(ti.Witness).copyWitness(),
			Sequence:        ti.Sequence,
		})
	}

	for i, to := range msgTx.TxOut {
		if to.Value < 0 {
			str := fmt.Sprintf("output %d has negative value %d", i,
				to.Value)
			return nil, txError(ErrInvalidAmount, str)
		}
		if err := checkAmount(uint64(to.Value)); err != nil {
			return nil, err
		}
		tx.TxOut = append(tx.TxOut, &TxOut{
			Value:    uint64(to.Value),
			PkScript: copyBytes(to.PkScript),
		})
	}

	return tx, nil
}

// MsgTx converts the transaction into a btcd wire message with identical
// serialization.  Values above the int64 range, such as the blanked outputs
// of a signature hash, keep their bit pattern and so their encoding.
func (tx *Tx) MsgTx() *wire.MsgTx {
	msgTx := wire.NewMsgTx(tx.Version)
	msgTx.LockTime = tx.LockTime

	for _, ti := range tx.TxIn {
		prevOut := wire.NewOutPoint(&ti.PreviousOutPoint.Hash,
			ti.PreviousOutPoint.Index)
		var witness wire.TxWitness
		if len(ti.Witness) != 0 {
			witness = wire.TxWitness(ti.Witness.copyWitness())
		}
		txIn := wire.NewTxIn(prevOut, copyBytes(ti.SignatureScript), witness)
		txIn.Sequence = ti.Sequence
		msgTx.AddTxIn(txIn)
	}

	for _, to := range tx.TxOut {
		msgTx.AddTxOut(wire.NewTxOut(int64(to.Value),
			copyBytes(to.PkScript)))
	}

	return msgTx
}
