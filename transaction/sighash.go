// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/davecgh/go-spew/spew"
)

// SigHashType represents hash type bits at the end of a signature.
type SigHashType uint32

// Hash type bits from the end of a signature.
const (
	SigHashOld          SigHashType = 0x0
	SigHashAll          SigHashType = 0x1
	SigHashNone         SigHashType = 0x2
	SigHashSingle       SigHashType = 0x3
	SigHashAnyOneCanPay SigHashType = 0x80

	// sigHashMask defines the number of bits of the hash type which is used
	// to identify which outputs are signed.
	sigHashMask = 0x1f
)

// blankOutputValue is the value given to the outputs before the signed one
// when hashing with SigHashSingle.  It serializes as eight 0xff bytes.
const blankOutputValue = math.MaxUint64

// oneHash is returned by SignatureHash for an input index past the inputs, or
// past the outputs with SigHashSingle.  Signing it is a long standing
// consensus quirk that must be reproduced exactly.
var oneHash = chainhash.Hash{31: 0x01}

// Map of base hash types back to their names for pretty printing.
var sigHashTypeStrings = map[SigHashType]string{
	SigHashOld:    "SIGHASH_OLD",
	SigHashAll:    "SIGHASH_ALL",
	SigHashNone:   "SIGHASH_NONE",
	SigHashSingle: "SIGHASH_SINGLE",
}

// String returns the hash type in the form SIGHASH_SINGLE|ANYONECANPAY.  Types
// with bits outside the base type and the anyone-can-pay flag are printed as
// numbers.
func (t SigHashType) String() string {
	s, ok := sigHashTypeStrings[t&sigHashMask]
	if !ok || t&^(sigHashMask|SigHashAnyOneCanPay) != 0 {
		return fmt.Sprintf("SIGHASH_UNKNOWN(0x%x)", uint32(t))
	}
	if t&SigHashAnyOneCanPay != 0 {
		s += "|ANYONECANPAY"
	}
	return s
}

// ParseSigHashType parses a hash type given either by name, such as "ALL",
// "single|anyonecanpay" or "SIGHASH_NONE|ANYONECANPAY", or as a number such
// as "0x81".
func ParseSigHashType(s string) (SigHashType, error) {
	if v, err := strconv.ParseUint(s, 0, 32); err == nil {
		return SigHashType(v), nil
	}

	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "SIGHASH_")

	var hashType SigHashType
	if base, ok := strings.CutSuffix(name, "|ANYONECANPAY"); ok {
		hashType |= SigHashAnyOneCanPay
		name = base
	}
	switch name {
	case "ALL":
		hashType |= SigHashAll
	case "NONE":
		hashType |= SigHashNone
	case "SINGLE":
		hashType |= SigHashSingle
	default:
		str := fmt.Sprintf("unknown signature hash type %q", s)
		return 0, txError(ErrInvalidSigHashType, str)
	}
	return hashType, nil
}

// removeCodeSeparators returns the script with every OP_CODESEPARATOR opcode
// removed.  Data pushes are never inspected, and the raw bytes of a malformed
// push at the end of the script are kept as they are.  The script itself is
// returned when there is nothing to remove.
func removeCodeSeparators(script []byte) []byte {
	var result []byte
	var prevOffset int32

	const scriptVersion = 0
	tokenizer := txscript.MakeScriptTokenizer(scriptVersion, script)
	for tokenizer.Next() {
		if tokenizer.Opcode() != txscript.OP_CODESEPARATOR {
			continue
		}
		if result == nil {
			result = make([]byte, 0, len(script))
		}
		result = append(result, script[prevOffset:tokenizer.ByteIndex()-1]...)
		prevOffset = tokenizer.ByteIndex()
	}
	if result == nil {
		return script
	}
	return append(result, script[prevOffset:]...)
}

// SignatureHash computes the legacy signature hash of the input at idx for the
// given previous output script and hash type.  The receiver is not modified;
// every scope change is applied to a copy.
//
// An idx past the last input, or past the last output for SigHashSingle,
// yields the hash 0x00..01 rather than an error.  A negative idx is an
// ErrIndexOutOfRange error.
func (tx *Tx) SignatureHash(idx int, prevScript []byte,
	hashType SigHashType) (chainhash.Hash, error) {

	if idx < 0 {
		str := fmt.Sprintf("negative input index %d", idx)
		return chainhash.Hash{}, txError(ErrIndexOutOfRange, str)
	}
	if idx >= len(tx.TxIn) {
		return oneHash, nil
	}
	if hashType&sigHashMask == SigHashSingle && idx >= len(tx.TxOut) {
		return oneHash, nil
	}

	script := removeCodeSeparators(prevScript)

	txCopy := tx.Copy()
	switch hashType & sigHashMask {
	case SigHashNone:
		txCopy.TxOut = txCopy.TxOut[0:0]
		txCopy.zeroOtherSequences(idx)

	case SigHashSingle:
		// Resize output array to up to and including requested index.
		txCopy.TxOut = txCopy.TxOut[:idx+1]

		// All but current output get zeroed out.
		for i := 0; i < idx; i++ {
			txCopy.TxOut[i].Value = blankOutputValue
			txCopy.TxOut[i].PkScript = nil
		}
		txCopy.zeroOtherSequences(idx)

	default:
		// Consensus treats undefined hashtypes like normal SigHashAll
		// for purposes of hash generation.
		fallthrough
	case SigHashOld:
		fallthrough
	case SigHashAll:
		// Nothing special here.
	}

	if hashType&SigHashAnyOneCanPay != 0 {
		txCopy.TxIn = txCopy.TxIn[idx : idx+1]
		txCopy.TxIn[0].SignatureScript = script
	} else {
		for i, txIn := range txCopy.TxIn {
			if i == idx {
				txIn.SignatureScript = script
			} else {
				txIn.SignatureScript = nil
			}
		}
	}

	// The final hash is the double sha256 of both the serialized modified
	// transaction and the hash type (encoded as a 4-byte little-endian
	// value) appended.
	buf := make([]byte, txCopy.SerializeSizeStripped()+4)
	n := txCopy.putTx(buf, BaseEncoding)
	putUint32LE(buf[n:], uint32(hashType))

	log.Tracef("Legacy signature hash preimage for input %d (%v): %v",
		idx, hashType, newLogClosure(func() string {
			return spew.Sdump(buf)
		}))

	return chainhash.DoubleHashH(buf), nil
}

// zeroOtherSequences sets the sequence of every input but the one at idx to
// zero.
func (tx *Tx) zeroOtherSequences(idx int) {
	for i, txIn := range tx.TxIn {
		if i != idx {
			txIn.Sequence = 0
		}
	}
}
