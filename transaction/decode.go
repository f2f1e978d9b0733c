// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// FromBytes decodes a serialized transaction in either the base or the
// witness encoding.  The whole buffer must be consumed; leftover bytes are
// reported as ErrTrailingData.
func FromBytes(b []byte) (*Tx, error) {
	tx, _, err := decode(b, true)
	return tx, err
}

// FromBytesNoStrict decodes the transaction at the start of b and returns it
// together with the number of bytes it occupied.  Bytes following the
// transaction are ignored.
func FromBytesNoStrict(b []byte) (*Tx, int, error) {
	return decode(b, false)
}

// FromHex decodes a hex-encoded transaction with the same rules as FromBytes.
func FromHex(s string) (*Tx, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		str := fmt.Sprintf("malformed transaction hex: %v", err)
		return nil, txError(ErrInvalidHex, str)
	}
	return FromBytes(b)
}

// txReader is a cursor over a serialized transaction.  Every read is checked
// against the bytes left so malformed input fails with ErrTruncated instead
// of reading past the end.
type txReader struct {
	buf    []byte
	offset int
}

// remaining returns the number of unread bytes.
func (r *txReader) remaining() int {
	return len(r.buf) - r.offset
}

// truncated returns the error for a read of n bytes that does not fit.
func (r *txReader) truncated(fieldName string, n uint64) error {
	str := fmt.Sprintf("failed to read %s: need %d bytes at offset %d, "+
		"have %d", fieldName, n, r.offset, r.remaining())
	return txError(ErrTruncated, str)
}

// readBytes returns a copy of the next n bytes.  A zero length read returns
// nil.
func (r *txReader) readBytes(fieldName string, n uint64) ([]byte, error) {
	if n > uint64(r.remaining()) {
		return nil, r.truncated(fieldName, n)
	}
	if n == 0 {
		return nil, nil
	}
	b := make([]byte, n)
	r.offset += copy(b, r.buf[r.offset:])
	return b, nil
}

func (r *txReader) readUint32(fieldName string) (uint32, error) {
	if r.remaining() < 4 {
		return 0, r.truncated(fieldName, 4)
	}
	v := binary.LittleEndian.Uint32(r.buf[r.offset:])
	r.offset += 4
	return v, nil
}

func (r *txReader) readUint64(fieldName string) (uint64, error) {
	if r.remaining() < 8 {
		return 0, r.truncated(fieldName, 8)
	}
	v := binary.LittleEndian.Uint64(r.buf[r.offset:])
	r.offset += 8
	return v, nil
}

func (r *txReader) readHash(fieldName string, hash *chainhash.Hash) error {
	if r.remaining() < chainhash.HashSize {
		return r.truncated(fieldName, chainhash.HashSize)
	}
	r.offset += copy(hash[:], r.buf[r.offset:])
	return nil
}

// readVarInt reads a variable length integer with wire.ReadVarInt, which also
// rejects encodings that are not minimal.
func (r *txReader) readVarInt(fieldName string) (uint64, error) {
	val, err := wire.ReadVarInt(bytes.NewReader(r.buf[r.offset:]), 0)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		str := fmt.Sprintf("failed to read %s: varint at offset %d "+
			"runs past the end of the buffer", fieldName, r.offset)
		return 0, txError(ErrTruncated, str)

	case err != nil:
		str := fmt.Sprintf("failed to read %s at offset %d: %v",
			fieldName, r.offset, err)
		return 0, txError(ErrNonCanonicalVarInt, str)
	}

	// Only canonical encodings get here, so the consumed length is the
	// serialize size of the value.
	r.offset += wire.VarIntSerializeSize(val)
	return val, nil
}

// readCount reads a varint element count and rejects counts that cannot fit
// into the remaining bytes when every element takes at least minSize bytes.
// This keeps allocations proportional to the input.
func (r *txReader) readCount(fieldName string, minSize int) (uint64, error) {
	count, err := r.readVarInt(fieldName)
	if err != nil {
		return 0, err
	}
	if count > uint64(r.remaining()/minSize) {
		str := fmt.Sprintf("%s of %d does not fit into the remaining "+
			"%d bytes", fieldName, count, r.remaining())
		return 0, txError(ErrTruncated, str)
	}
	return count, nil
}

// readVarBytes reads a varint length prefix followed by that many bytes.
func (r *txReader) readVarBytes(fieldName string) ([]byte, error) {
	n, err := r.readVarInt(fieldName + " length")
	if err != nil {
		return nil, err
	}
	return r.readBytes(fieldName, n)
}

func (r *txReader) readTxIn(ti *TxIn) error {
	err := r.readHash("previous outpoint hash", &ti.PreviousOutPoint.Hash)
	if err != nil {
		return err
	}
	ti.PreviousOutPoint.Index, err = r.readUint32("previous outpoint index")
	if err != nil {
		return err
	}
	ti.SignatureScript, err = r.readVarBytes("signature script")
	if err != nil {
		return err
	}
	ti.Sequence, err = r.readUint32("sequence")
	return err
}

func (r *txReader) readTxOut(to *TxOut) error {
	var err error
	to.Value, err = r.readUint64("output value")
	if err != nil {
		return err
	}
	to.PkScript, err = r.readVarBytes("public key script")
	return err
}

func (r *txReader) readTxWitness() (TxWitness, error) {
	// Every witness item takes at least its one byte length prefix.
	count, err := r.readCount("witness item count", 1)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	witness := make(TxWitness, count)
	for j := range witness {
		witness[j], err = r.readVarBytes("witness item")
		if err != nil {
			return nil, err
		}
	}
	return witness, nil
}

// decode parses a transaction from the start of b.  In strict mode the
// transaction must span the whole buffer and a witness flag must be backed by
// at least one non-empty witness, which guarantees that re-encoding yields b.
func decode(b []byte, strict bool) (*Tx, int, error) {
	r := txReader{buf: b}

	version, err := r.readUint32("version")
	if err != nil {
		return nil, 0, err
	}
	tx := &Tx{Version: int32(version)}

	// A marker byte of zero followed by a flag of one cannot start a
	// valid input count, so it signals the witness encoding.
	var flagged bool
	if r.remaining() >= 2 && b[r.offset] == witnessMarker &&
		b[r.offset+1] == witnessFlag {

		r.offset += 2
		flagged = true
	}

	count, err := r.readCount("input count", minTxInPayload)
	if err != nil {
		return nil, 0, err
	}
	txIns := make([]TxIn, count)
	tx.TxIn = make([]*TxIn, count)
	for i := range txIns {
		ti := &txIns[i]
		if err := r.readTxIn(ti); err != nil {
			return nil, 0, err
		}
		tx.TxIn[i] = ti
	}

	count, err = r.readCount("output count", minTxOutPayload)
	if err != nil {
		return nil, 0, err
	}
	txOuts := make([]TxOut, count)
	tx.TxOut = make([]*TxOut, count)
	for i := range txOuts {
		to := &txOuts[i]
		if err := r.readTxOut(to); err != nil {
			return nil, 0, err
		}
		tx.TxOut[i] = to
	}

	if flagged {
		for _, ti := range tx.TxIn {
			ti.Witness, err = r.readTxWitness()
			if err != nil {
				return nil, 0, err
			}
		}
	}

	tx.LockTime, err = r.readUint32("lock time")
	if err != nil {
		return nil, 0, err
	}

	if !strict {
		return tx, r.offset, nil
	}

	if flagged && !tx.HasWitness() {
		str := "transaction has the witness flag set but no " +
			"input carries witness data"
		return nil, 0, txError(ErrSuperfluousWitness, str)
	}
	if r.remaining() != 0 {
		str := fmt.Sprintf("transaction has %d bytes of unexpected "+
			"data after the lock time", r.remaining())
		return nil, 0, txError(ErrTrailingData, str)
	}

	return tx, r.offset, nil
}
