// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"fmt"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

const (
	// TxVersion is the version given to newly constructed transactions.
	TxVersion = 1

	// MaxTxInSequenceNum is the maximum sequence number the sequence field
	// of a transaction input can be.  It is also the default sequence,
	// meaning no relative lock-time constraint.
	MaxTxInSequenceNum uint32 = 0xffffffff

	// MaxPrevOutIndex is the maximum index the index field of a previous
	// outpoint can be.
	MaxPrevOutIndex uint32 = 0xffffffff

	// MaxScriptSize is the largest signature or public key script accepted
	// by the construction API and the decoder.  No script in a valid
	// transaction can be larger than a block.
	MaxScriptSize = wire.MaxBlockPayload

	// MaxWitnessItemsPerInput is the maximum number of witness items a
	// single input may carry.
	MaxWitnessItemsPerInput = 4_000_000

	// MaxWitnessItemSize is the maximum size of a single witness item.
	MaxWitnessItemSize = wire.MaxBlockPayload
)

const (
	// defaultTxInOutAlloc is the default size used for the backing array
	// for transaction inputs and outputs.
	defaultTxInOutAlloc = 15

	// minTxInPayload is the minimum payload size for a transaction input.
	// PreviousOutPoint.Hash + PreviousOutPoint.Index 4 bytes + Varint for
	// SignatureScript length 1 byte + Sequence 4 bytes.
	minTxInPayload = 9 + chainhash.HashSize

	// minTxOutPayload is the minimum payload size for a transaction output.
	// Value 8 bytes + Varint for PkScript length 1 byte.
	minTxOutPayload = 9

	// witnessMarker and witnessFlag introduce the witness encoding
	// defined in BIP0144.
	witnessMarker = 0x00
	witnessFlag   = 0x01
)

// OutPoint defines a bitcoin data type that is used to track previous
// transaction outputs.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPoint returns a new bitcoin transaction outpoint point with the
// provided hash and index.
func NewOutPoint(hash *chainhash.Hash, index uint32) *OutPoint {
	return &OutPoint{
		Hash:  *hash,
		Index: index,
	}
}

// String returns the OutPoint in the human-readable form "hash:index".
func (o OutPoint) String() string {
	// Allocate enough for hash string, colon, and 10 digits.
	buf := make([]byte, 2*chainhash.HashSize+1, 2*chainhash.HashSize+1+10)
	copy(buf, o.Hash.String())
	buf[2*chainhash.HashSize] = ':'
	buf = strconv.AppendUint(buf, uint64(o.Index), 10)
	return string(buf)
}

// TxWitness defines the witness for a TxIn.  A witness is to be interpreted
// as a slice of byte slices, or a stack with one or many elements.
type TxWitness [][]byte

// SerializeSize returns the number of bytes it would take to serialize the
// target witness.
func (t TxWitness) SerializeSize() int {
	// A varint to signal the number of elements the witness has.
	n := wire.VarIntSerializeSize(uint64(len(t)))

	// For each element in the witness, we'll need a varint to signal the
	// size of the element, then finally the number of bytes the element
	// itself comprises.
	for _, witItem := range t {
		n += wire.VarIntSerializeSize(uint64(len(witItem)))
		n += len(witItem)
	}

	return n
}

// copyWitness returns a deep copy of the witness.
func (t TxWitness) copyWitness() TxWitness {
	if t == nil {
		return nil
	}
	newWitness := make(TxWitness, len(t))
	for i, item := range t {
		newWitness[i] = copyBytes(item)
	}
	return newWitness
}

// TxIn defines a bitcoin transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Witness          TxWitness
	Sequence         uint32
}

// SerializeSize returns the number of bytes it would take to serialize the
// the transaction input, excluding its witness.
func (t *TxIn) SerializeSize() int {
	// Outpoint Hash 32 bytes + Outpoint Index 4 bytes + Sequence 4 bytes +
	// serialized varint size for the length of SignatureScript +
	// SignatureScript bytes.
	return 40 + wire.VarIntSerializeSize(uint64(len(t.SignatureScript))) +
		len(t.SignatureScript)
}

// TxOut defines a bitcoin transaction output.
type TxOut struct {
	Value    uint64
	PkScript []byte
}

// SerializeSize returns the number of bytes it would take to serialize the
// the transaction output.
func (t *TxOut) SerializeSize() int {
	// Value 8 bytes + serialized varint size for the length of PkScript +
	// PkScript bytes.
	return 8 + wire.VarIntSerializeSize(uint64(len(t.PkScript))) +
		len(t.PkScript)
}

// Tx is the in-memory model of a bitcoin transaction: a version, the ordered
// inputs and outputs, and a lock time.  The order of inputs and outputs is
// part of the transaction's identity.
//
// A Tx is a plain value with no internal synchronization.  Signature hash
// computations never mutate the receiver, so several goroutines may hash
// distinct inputs of the same Tx as long as nobody modifies it meanwhile.
type Tx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// New returns a new, empty bitcoin transaction with version TxVersion and a
// zero lock time.
func New() *Tx {
	return &Tx{
		Version: TxVersion,
		TxIn:    make([]*TxIn, 0, defaultTxInOutAlloc),
		TxOut:   make([]*TxOut, 0, defaultTxInOutAlloc),
	}
}

// inputConfig holds the optional fields of an input under construction.
type inputConfig struct {
	sequence        uint32
	signatureScript []byte
}

// defaultInputConfig returns the defaults used when an option is not given:
// MaxTxInSequenceNum and an empty signature script.
func defaultInputConfig() inputConfig {
	return inputConfig{
		sequence: MaxTxInSequenceNum,
	}
}

// InputOption overrides a default of an input added with AddInput or
// AddWitnessInput.
type InputOption func(*inputConfig)

// WithSequence sets the sequence number of the input.
func WithSequence(sequence uint32) InputOption {
	return func(cfg *inputConfig) {
		cfg.sequence = sequence
	}
}

// WithSignatureScript sets the signature script of the input.
func WithSignatureScript(script []byte) InputOption {
	return func(cfg *inputConfig) {
		cfg.signatureScript = script
	}
}

// AddInput appends an input spending output index of the transaction with
// the provided hash and returns the position of the new input.
func (tx *Tx) AddInput(prevHash *chainhash.Hash, index uint32,
	opts ...InputOption) (int, error) {

	return tx.addInput(prevHash, index, nil, opts)
}

// AddWitnessInput is AddInput for inputs that carry a witness stack.
func (tx *Tx) AddWitnessInput(prevHash *chainhash.Hash, index uint32,
	witness TxWitness, opts ...InputOption) (int, error) {

	return tx.addInput(prevHash, index, witness, opts)
}

func (tx *Tx) addInput(prevHash *chainhash.Hash, index uint32,
	witness TxWitness, opts []InputOption) (int, error) {

	cfg := defaultInputConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := checkScript("signature script", cfg.signatureScript); err != nil {
		return 0, err
	}
	if err := checkWitness(witness); err != nil {
		return 0, err
	}

	tx.TxIn = append(tx.TxIn, &TxIn{
		PreviousOutPoint: *NewOutPoint(prevHash, index),
		SignatureScript:  cfg.signatureScript,
		Witness:          witness,
		Sequence:         cfg.sequence,
	})
	return len(tx.TxIn) - 1, nil
}

// AddOutput appends an output paying value satoshi to pkScript and returns
// the position of the new output.
func (tx *Tx) AddOutput(pkScript []byte, value uint64) (int, error) {
	if err := checkAmount(value); err != nil {
		return 0, err
	}
	if err := checkScript("public key script", pkScript); err != nil {
		return 0, err
	}

	tx.TxOut = append(tx.TxOut, &TxOut{
		Value:    value,
		PkScript: pkScript,
	})
	return len(tx.TxOut) - 1, nil
}

// SetInputScript replaces the signature script of the input at idx.
func (tx *Tx) SetInputScript(idx int, script []byte) error {
	if err := tx.checkInputIndex(idx); err != nil {
		return err
	}
	if err := checkScript("signature script", script); err != nil {
		return err
	}
	tx.TxIn[idx].SignatureScript = script
	return nil
}

// SetWitness replaces the witness stack of the input at idx.
func (tx *Tx) SetWitness(idx int, witness TxWitness) error {
	if err := tx.checkInputIndex(idx); err != nil {
		return err
	}
	if err := checkWitness(witness); err != nil {
		return err
	}
	tx.TxIn[idx].Witness = witness
	return nil
}

// HasWitness returns false if none of the inputs within the transaction
// contain witness data, true otherwise.
func (tx *Tx) HasWitness() bool {
	for _, txIn := range tx.TxIn {
		if len(txIn.Witness) != 0 {
			return true
		}
	}

	return false
}

// IsCoinBaseHash returns whether the hash is the all-zero hash that coinbase
// inputs reference.
func IsCoinBaseHash(hash *chainhash.Hash) bool {
	return *hash == chainhash.Hash{}
}

// IsCoinBase determines whether or not a transaction is a coinbase.  A
// coinbase is a special transaction created by miners that has no inputs.
// This is represented in the block chain by a transaction with a single
// input that has a previous output transaction index set to the maximum
// value along with a zero hash.
//
// Only the single input and the zero hash are checked here.
func (tx *Tx) IsCoinBase() bool {
	// A coin base must only have one transaction input.
	if len(tx.TxIn) != 1 {
		return false
	}

	return IsCoinBaseHash(&tx.TxIn[0].PreviousOutPoint.Hash)
}

// Copy creates a deep copy of a transaction so that the original does not get
// modified when the copy is manipulated.
func (tx *Tx) Copy() *Tx {
	// Create new tx and start by copying primitive values and making space
	// for the transaction inputs and outputs.
	newTx := Tx{
		Version:  tx.Version,
		TxIn:     make([]*TxIn, 0, len(tx.TxIn)),
		TxOut:    make([]*TxOut, 0, len(tx.TxOut)),
		LockTime: tx.LockTime,
	}

	for _, oldTxIn := range tx.TxIn {
		newTx.TxIn = append(newTx.TxIn, &TxIn{
			PreviousOutPoint: oldTxIn.PreviousOutPoint,
			SignatureScript:  copyBytes(oldTxIn.SignatureScript),
			Witness:          oldTxIn.Witness.copyWitness(),
			Sequence:         oldTxIn.Sequence,
		})
	}

	for _, oldTxOut := range tx.TxOut {
		newTx.TxOut = append(newTx.TxOut, &TxOut{
			Value:    oldTxOut.Value,
			PkScript: copyBytes(oldTxOut.PkScript),
		})
	}

	return &newTx
}

// copyBytes returns a copy of b that shares no memory with it.  A nil slice
// stays nil.
func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	newBytes := make([]byte, len(b))
	copy(newBytes, b)
	return newBytes
}

func (tx *Tx) checkInputIndex(idx int) error {
	if idx < 0 || idx >= len(tx.TxIn) {
		str := fmt.Sprintf("input index %d out of range for "+
			"transaction with %d inputs", idx, len(tx.TxIn))
		return txError(ErrIndexOutOfRange, str)
	}
	return nil
}

func checkAmount(value uint64) error {
	if value > btcutil.MaxSatoshi {
		str := fmt.Sprintf("output value of %d is higher than max "+
			"allowed value of %d", value, uint64(btcutil.MaxSatoshi))
		return txError(ErrInvalidAmount, str)
	}
	return nil
}

func checkScript(fieldName string, script []byte) error {
	if len(script) > MaxScriptSize {
		str := fmt.Sprintf("%s is larger than the max allowed size "+
			"[size %d, max %d]", fieldName, len(script), MaxScriptSize)
		return txError(ErrScriptTooLarge, str)
	}
	return nil
}

func checkWitness(witness TxWitness) error {
	if len(witness) > MaxWitnessItemsPerInput {
		str := fmt.Sprintf("too many witness items to fit into max "+
			"message size [count %d, max %d]", len(witness),
			MaxWitnessItemsPerInput)
		return txError(ErrWitnessTooLarge, str)
	}
	for i, item := range witness {
		if len(item) > MaxWitnessItemSize {
			str := fmt.Sprintf("witness item %d is larger than the "+
				"max allowed size [size %d, max %d]", i,
				len(item), MaxWitnessItemSize)
			return txError(ErrWitnessTooLarge, str)
		}
	}
	return nil
}
