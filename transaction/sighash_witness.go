// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/davecgh/go-spew/spew"
)

// SigHashMidstate houses the partial set of sighashes introduced within
// BIP0143.  They commit to every input and output of a transaction and can be
// shared by all of its inputs, so signing a transaction with many segwit
// inputs does not rehash the whole transaction once per input.
//
// A SigHashMidstate is only valid for the transaction it was computed from and
// must be recomputed after that transaction changes.
type SigHashMidstate struct {
	HashPrevOuts chainhash.Hash
	HashSequence chainhash.Hash
	HashOutputs  chainhash.Hash
}

// NewSigHashMidstate computes, and returns the cached sighashes of the given
// transaction.
func NewSigHashMidstate(tx *Tx) *SigHashMidstate {
	return &SigHashMidstate{
		HashPrevOuts: calcHashPrevOuts(tx),
		HashSequence: calcHashSequence(tx),
		HashOutputs:  calcHashOutputs(tx),
	}
}

// calcHashPrevOuts calculates a single hash of all the previous outputs
// (txid:index) referenced within the passed transaction.
func calcHashPrevOuts(tx *Tx) chainhash.Hash {
	buf := make([]byte, len(tx.TxIn)*(chainhash.HashSize+4))
	var offset int
	for _, in := range tx.TxIn {
		offset += putOutPoint(buf[offset:], &in.PreviousOutPoint)
	}
	return chainhash.DoubleHashH(buf)
}

// calcHashSequence computes an aggregated hash of each of the sequence numbers
// within the inputs of the passed transaction.
func calcHashSequence(tx *Tx) chainhash.Hash {
	buf := make([]byte, len(tx.TxIn)*4)
	var offset int
	for _, in := range tx.TxIn {
		offset += putUint32LE(buf[offset:], in.Sequence)
	}
	return chainhash.DoubleHashH(buf)
}

// calcHashOutputs computes a hash digest of all outputs created by the
// transaction encoded using the wire format.
func calcHashOutputs(tx *Tx) chainhash.Hash {
	var size int
	for _, out := range tx.TxOut {
		size += out.SerializeSize()
	}
	buf := make([]byte, size)
	var offset int
	for _, out := range tx.TxOut {
		offset += putTxOut(buf[offset:], out)
	}
	return chainhash.DoubleHashH(buf)
}

// WitnessSignatureHash computes the BIP0143 signature hash of the input at idx
// spending an output of amount satoshi locked by prevScript.  The midstate
// hashes are computed afresh; use WitnessSignatureHashWithMidstate to share
// them between inputs.
func (tx *Tx) WitnessSignatureHash(idx int, prevScript []byte, amount uint64,
	hashType SigHashType) (chainhash.Hash, error) {

	return tx.WitnessSignatureHashWithMidstate(nil, idx, prevScript, amount,
		hashType)
}

// WitnessSignatureHashWithMidstate is WitnessSignatureHash using the
// precomputed midstate mid, which must have been computed from tx.  A nil mid
// is computed on demand.
//
// Unlike SignatureHash there is no special digest for an out of range index:
// an idx outside the inputs is an ErrIndexOutOfRange error and an amount
// above btcutil.MaxSatoshi is an ErrInvalidAmount error.
func (tx *Tx) WitnessSignatureHashWithMidstate(mid *SigHashMidstate, idx int,
	prevScript []byte, amount uint64,
	hashType SigHashType) (chainhash.Hash, error) {

	if err := tx.checkInputIndex(idx); err != nil {
		return chainhash.Hash{}, err
	}
	if err := checkAmount(amount); err != nil {
		return chainhash.Hash{}, err
	}
	if mid == nil {
		mid = NewSigHashMidstate(tx)
	}

	// Each midstate is left zeroed when the hash type excludes its
	// scope.
	var hashPrevOuts, hashSequence, hashOutputs chainhash.Hash
	baseType := hashType & sigHashMask
	anyoneCanPay := hashType&SigHashAnyOneCanPay != 0
	signsAllOutputs := baseType != SigHashSingle && baseType != SigHashNone

	if !anyoneCanPay {
		hashPrevOuts = mid.HashPrevOuts
	}
	if !anyoneCanPay && signsAllOutputs {
		hashSequence = mid.HashSequence
	}

	switch {
	case signsAllOutputs:
		hashOutputs = mid.HashOutputs

	case baseType == SigHashSingle && idx < len(tx.TxOut):
		out := tx.TxOut[idx]
		buf := make([]byte, out.SerializeSize())
		putTxOut(buf, out)
		hashOutputs = chainhash.DoubleHashH(buf)
	}

	txIn := tx.TxIn[idx]

	// Version 4 bytes + three midstates + outpoint 36 bytes + script +
	// amount 8 bytes + sequence 4 bytes + lock time 4 bytes + hash type 4
	// bytes.
	size := 4 + 3*chainhash.HashSize + chainhash.HashSize + 4 +
		wire.VarIntSerializeSize(uint64(len(prevScript))) +
		len(prevScript) + 8 + 4 + 4 + 4
	buf := make([]byte, size)

	offset := putUint32LE(buf, uint32(tx.Version))
	offset += copy(buf[offset:], hashPrevOuts[:])
	offset += copy(buf[offset:], hashSequence[:])
	offset += putOutPoint(buf[offset:], &txIn.PreviousOutPoint)
	offset += putVarBytes(buf[offset:], prevScript)
	offset += putUint64LE(buf[offset:], amount)
	offset += putUint32LE(buf[offset:], txIn.Sequence)
	offset += copy(buf[offset:], hashOutputs[:])
	offset += putUint32LE(buf[offset:], tx.LockTime)
	putUint32LE(buf[offset:], uint32(hashType))

	log.Tracef("Witness signature hash preimage for input %d (%v): %v",
		idx, hashType, newLogClosure(func() string {
			return spew.Sdump(buf)
		}))

	return chainhash.DoubleHashH(buf), nil
}
