// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math"
)

// Encoding selects whether witness data is part of a serialization.
type Encoding int

const (
	// BaseEncoding encodes the transaction as it was before BIP0144.  It
	// never includes witness data and is what TxHash and the legacy
	// signature hash commit to.
	BaseEncoding Encoding = iota

	// WitnessEncoding encodes the transaction with the marker, flag and
	// witness section of BIP0144 whenever an input carries witness data.
	WitnessEncoding
)

// String returns the Encoding as a human-readable name.
func (e Encoding) String() string {
	switch e {
	case BaseEncoding:
		return "BaseEncoding"
	case WitnessEncoding:
		return "WitnessEncoding"
	}
	return fmt.Sprintf("Unknown Encoding (%d)", int(e))
}

// PutBytes serializes the transaction into buf starting at offset and
// returns the slice of buf holding the encoding.  An ErrShortBuffer error is
// returned when buf cannot hold the SerializeSize (or SerializeSizeStripped
// for BaseEncoding) bytes following offset.
func (tx *Tx) PutBytes(buf []byte, offset int, enc Encoding) ([]byte, error) {
	if offset < 0 {
		str := fmt.Sprintf("negative buffer offset %d", offset)
		return nil, txError(ErrIndexOutOfRange, str)
	}

	size := tx.serializeSize(enc)
	if offset > len(buf) || len(buf)-offset < size {
		str := fmt.Sprintf("buffer of %d bytes cannot hold a %d byte "+
			"transaction at offset %d", len(buf), size, offset)
		return nil, txError(ErrShortBuffer, str)
	}

	n := tx.putTx(buf[offset:offset+size], enc)
	return buf[offset : offset+n], nil
}

// encode returns a newly allocated serialization of the transaction.
func (tx *Tx) encode(enc Encoding) []byte {
	buf := make([]byte, tx.serializeSize(enc))
	tx.putTx(buf, enc)
	return buf
}

// Bytes returns the serialization of the transaction without witness data.
func (tx *Tx) Bytes() []byte {
	return tx.encode(BaseEncoding)
}

// BytesWithWitness returns the serialization of the transaction including
// witness data when any input carries some.  This is the form relayed on the
// network.
func (tx *Tx) BytesWithWitness() []byte {
	return tx.encode(WitnessEncoding)
}

// Hex returns the hex encoding of Bytes.
func (tx *Tx) Hex() string {
	return hex.EncodeToString(tx.Bytes())
}

// HexWithWitness returns the hex encoding of BytesWithWitness.
func (tx *Tx) HexWithWitness() string {
	return hex.EncodeToString(tx.BytesWithWitness())
}

// Serialize encodes the transaction to w using the witness encoding.
func (tx *Tx) Serialize(w io.Writer) error {
	_, err := w.Write(tx.BytesWithWitness())
	return err
}

// SerializeNoWitness encodes the transaction to w in an identical manner to
// Serialize, however even if the source transaction has inputs with witness
// data, the old serialization format will still be used.
func (tx *Tx) SerializeNoWitness(w io.Writer) error {
	_, err := w.Write(tx.Bytes())
	return err
}

// putTx writes the transaction to buf, which must be at least
// serializeSize(enc) bytes long, and returns the number of bytes written.
func (tx *Tx) putTx(buf []byte, enc Encoding) int {
	doWitness := enc == WitnessEncoding && tx.HasWitness()

	offset := putUint32LE(buf, uint32(tx.Version))

	// If the encoding version is set to WitnessEncoding, and the Flags
	// field for the Tx is set, then the transaction has witness data and
	// the marker and flag bytes are written before the inputs.
	if doWitness {
		buf[offset] = witnessMarker
		buf[offset+1] = witnessFlag
		offset += 2
	}

	offset += putVarInt(buf[offset:], uint64(len(tx.TxIn)))
	for _, ti := range tx.TxIn {
		offset += putTxIn(buf[offset:], ti)
	}

	offset += putVarInt(buf[offset:], uint64(len(tx.TxOut)))
	for _, to := range tx.TxOut {
		offset += putTxOut(buf[offset:], to)
	}

	// The witness data for every input follows the outputs, in input
	// order.
	if doWitness {
		for _, ti := range tx.TxIn {
			offset += putTxWitness(buf[offset:], ti.Witness)
		}
	}

	offset += putUint32LE(buf[offset:], tx.LockTime)
	return offset
}

// putOutPoint writes the hash and index of op and returns 36.
func putOutPoint(buf []byte, op *OutPoint) int {
	offset := copy(buf, op.Hash[:])
	return offset + putUint32LE(buf[offset:], op.Index)
}

// putTxIn writes ti without its witness.
func putTxIn(buf []byte, ti *TxIn) int {
	offset := putOutPoint(buf, &ti.PreviousOutPoint)
	offset += putVarBytes(buf[offset:], ti.SignatureScript)
	return offset + putUint32LE(buf[offset:], ti.Sequence)
}

// putTxOut writes the value and public key script of to.
func putTxOut(buf []byte, to *TxOut) int {
	offset := putUint64LE(buf, to.Value)
	return offset + putVarBytes(buf[offset:], to.PkScript)
}

// putTxWitness writes the item count of wit followed by each item.
func putTxWitness(buf []byte, wit TxWitness) int {
	offset := putVarInt(buf, uint64(len(wit)))
	for _, item := range wit {
		offset += putVarBytes(buf[offset:], item)
	}
	return offset
}

// -----------------------------------------------------------------------------
// A variable length integer (varint) is an encoding for integers up to a max
// value of 2^64-1 that uses a variable number of bytes depending on the value
// being encoded.
//
//   Value                   Len   Format
//   -----                   ---   ------
//   < 0xfd                  1     val as uint8
//   <= 0xffff               3     0xfd followed by val as little-endian uint16
//   <= 0xffffffff           5     0xfe followed by val as little-endian uint32
//   <= 0xffffffffffffffff   9     0xff followed by val as little-endian uint64
//
// The sizes are given by wire.VarIntSerializeSize.
// -----------------------------------------------------------------------------

// putVarInt serializes the provided number to a variable-length integer and
// returns the number of bytes of the encoded value.  The target byte slice
// must be at least large enough to handle the number of bytes returned by
// wire.VarIntSerializeSize or it will panic.
func putVarInt(buf []byte, val uint64) int {
	if val < 0xfd {
		buf[0] = uint8(val)
		return 1
	}

	if val <= math.MaxUint16 {
		buf[0] = 0xfd
		binary.LittleEndian.PutUint16(buf[1:], uint16(val))
		return 3
	}

	if val <= math.MaxUint32 {
		buf[0] = 0xfe
		binary.LittleEndian.PutUint32(buf[1:], uint32(val))
		return 5
	}

	buf[0] = 0xff
	binary.LittleEndian.PutUint64(buf[1:], val)
	return 9
}

// putVarBytes writes the length of b as a varint followed by b itself.
func putVarBytes(buf []byte, b []byte) int {
	offset := putVarInt(buf, uint64(len(b)))
	return offset + copy(buf[offset:], b)
}

// putUint32LE writes the provided uint32 as little endian to the provided slice
// and returns 4 to signify the number of bytes written.  The target byte slice
// must be at least large enough to handle the write or it will panic.
func putUint32LE(buf []byte, val uint32) int {
	binary.LittleEndian.PutUint32(buf, val)
	return 4
}

// putUint64LE writes the provided uint64 as little endian to the provided slice
// and returns 8 to signify the number of bytes written.  The target byte slice
// must be at least large enough to handle the write or it will panic.
func putUint64LE(buf []byte, val uint64) int {
	binary.LittleEndian.PutUint64(buf, val)
	return 8
}
