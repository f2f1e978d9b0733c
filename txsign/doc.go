// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package txsign signs the inputs of a transaction.Tx with secp256k1 ECDSA keys.

RawTxInSignature and RawTxInWitnessSignature produce DER signatures with the
hash type appended over the legacy and BIP0143 signature hashes respectively.
SignatureScript and WitnessSignature wrap them into the unlocking data of
pay-to-pubkey-hash and pay-to-witness-pubkey-hash outputs.
*/
package txsign
