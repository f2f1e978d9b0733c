// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package transaction implements the bitcoin transaction record together with
its wire encoding and the two signature hash algorithms used to sign its
inputs.

# Transaction Record

A Tx holds a version, ordered inputs and outputs, and a lock time.  It can be
built up one input and output at a time:

	tx := transaction.New()
	tx.AddInput(&prevHash, 0, transaction.WithSequence(0xfffffffe))
	tx.AddOutput(pkScript, 50000)

or decoded in one shot with FromBytes, FromBytesNoStrict or FromHex.

# Encodings

Transactions have two serializations.  The base encoding predates BIP0144 and
never carries witness data; it is what TxHash commits to.  The witness
encoding inserts a marker and flag after the version and the witness stacks
before the lock time whenever some input carries a witness; WitnessHash
commits to it.  SerializeSize and SerializeSizeStripped always match the
number of bytes the encoder writes.

# Signature Hashes

SignatureHash implements the original algorithm, quirks included: an input
index past the inputs, or past the outputs for SigHashSingle, yields the
hash 0x00..01 instead of an error, and OP_CODESEPARATOR opcodes are removed
from the previous output script.  WitnessSignatureHash implements BIP0143.
Both leave the receiver untouched, so distinct inputs of one transaction may
be hashed concurrently.

# Errors

Errors returned by this package are of type Error and carry an ErrorCode.
Malformed serializations and violated argument constraints are told apart
with ErrorCode.IsMalformed and ErrorCode.IsConstraint.
*/
package transaction
