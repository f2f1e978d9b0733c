// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txsign

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btctx/transaction"
)

// ErrSignatureMismatch is returned by VerifySignature when a well formed
// signature does not sign the given hash with the given key.
var ErrSignatureMismatch = errors.New("signature does not match hash and " +
	"public key")

// RawTxInSignature returns the serialized ECDSA signature for the input idx of
// the given transaction, with hashType appended to it.
func RawTxInSignature(tx *transaction.Tx, idx int, subScript []byte,
	hashType transaction.SigHashType, key *btcec.PrivateKey) ([]byte, error) {

	hash, err := tx.SignatureHash(idx, subScript, hashType)
	if err != nil {
		return nil, err
	}
	signature := ecdsa.Sign(key, hash[:])

	return append(signature.Serialize(), byte(hashType)), nil
}

// RawTxInWitnessSignature returns the serialized ECDSA signature for the input
// idx of the given transaction, with the hashType appended to it.  This
// function is identical to RawTxInSignature, however the signature generated
// signs a new sighash digest defined in BIP0143.  A nil mid is computed on
// demand.
func RawTxInWitnessSignature(tx *transaction.Tx,
	mid *transaction.SigHashMidstate, idx int, subScript []byte,
	amount uint64, hashType transaction.SigHashType,
	key *btcec.PrivateKey) ([]byte, error) {

	hash, err := tx.WitnessSignatureHashWithMidstate(mid, idx, subScript,
		amount, hashType)
	if err != nil {
		return nil, err
	}
	signature := ecdsa.Sign(key, hash[:])

	return append(signature.Serialize(), byte(hashType)), nil
}

// pubKeyData serializes the public key of privKey in the requested format.
func pubKeyData(privKey *btcec.PrivateKey, compress bool) []byte {
	pk := privKey.PubKey()
	if compress {
		return pk.SerializeCompressed()
	}
	return pk.SerializeUncompressed()
}

// SignatureScript creates an input signature script for tx to spend coins sent
// from a previous output to the owner of privKey. tx must include all
// transaction inputs and outputs, however txin scripts are allowed to be filled
// or empty. The returned script is calculated to be used as the idx'th txin
// sigscript for tx. subscript is the PkScript of the previous output being used
// as the idx'th input. privKey is serialized in either a compressed or
// uncompressed format based on compress. This format must match the same format
// used to generate the payment address, or the script validation will fail.
func SignatureScript(tx *transaction.Tx, idx int, subscript []byte,
	hashType transaction.SigHashType, privKey *btcec.PrivateKey,
	compress bool) ([]byte, error) {

	sig, err := RawTxInSignature(tx, idx, subscript, hashType, privKey)
	if err != nil {
		return nil, err
	}

	pkData := pubKeyData(privKey, compress)
	return txscript.NewScriptBuilder().AddData(sig).AddData(pkData).Script()
}

// WitnessSignature creates an input witness stack for tx to spend BTC sent
// from a previous output to the owner of privKey using the p2wkh script
// template. The passed transaction must contain all the inputs and outputs as
// dictated by the passed hashType. The signature generated observes the new
// transaction digest algorithm defined within BIP0143.
func WitnessSignature(tx *transaction.Tx, mid *transaction.SigHashMidstate,
	idx int, subscript []byte, amount uint64,
	hashType transaction.SigHashType, privKey *btcec.PrivateKey,
	compress bool) (transaction.TxWitness, error) {

	sig, err := RawTxInWitnessSignature(tx, mid, idx, subscript, amount,
		hashType, privKey)
	if err != nil {
		return nil, err
	}

	// A witness script is actually a stack, so we return an array of byte
	// slices here, rather than a single byte slice.
	return transaction.TxWitness{sig, pubKeyData(privKey, compress)}, nil
}

// ParseSignature splits a signature as found in signature scripts and
// witnesses into the DER encoded ECDSA signature and the trailing hash type.
func ParseSignature(sig []byte) (*ecdsa.Signature, transaction.SigHashType,
	error) {

	if len(sig) == 0 {
		return nil, 0, errors.New("empty signature")
	}
	hashType := transaction.SigHashType(sig[len(sig)-1])
	signature, err := ecdsa.ParseDERSignature(sig[:len(sig)-1])
	if err != nil {
		return nil, 0, fmt.Errorf("malformed signature: %w", err)
	}
	return signature, hashType, nil
}

// VerifySignature checks that sig, a signature with its hash type appended as
// returned by RawTxInSignature, signs hash for the serialized public key
// pubKey.  It returns ErrSignatureMismatch when both parse but the signature
// is not valid.
func VerifySignature(hash chainhash.Hash, sig, pubKey []byte) error {
	signature, _, err := ParseSignature(sig)
	if err != nil {
		return err
	}
	key, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return fmt.Errorf("malformed public key: %w", err)
	}
	if !signature.Verify(hash[:], key) {
		return ErrSignatureMismatch
	}
	return nil
}
