package sbpf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slot(op Opcode, dst, src Register, off int16, imm int32) []byte {
	data := make([]byte, SlotSize)
	data[0] = byte(op)
	data[1] = byte(dst) | byte(src)<<4
	binary.LittleEndian.PutUint16(data[2:4], uint16(off))
	binary.LittleEndian.PutUint32(data[4:8], uint32(imm))
	return data
}

func TestDecodeStandardWidth(t *testing.T) {
	ins, width, err := Decode(slot(OpMov64Imm, 1, 0, 0, 42))
	require.NoError(t, err)

	assert.Equal(t, SlotSize, width)
	assert.Equal(t, OpMov64Imm, ins.Op)
	assert.Equal(t, Register(1), ins.Dst)
	assert.Equal(t, Imm(42), ins.Imm)
}

func TestDecodeRegistersAndOffset(t *testing.T) {
	ins, width, err := Decode(slot(OpLdxw, 3, 4, 8, 0))
	require.NoError(t, err)

	assert.Equal(t, SlotSize, width)
	assert.Equal(t, Register(3), ins.Dst)
	assert.Equal(t, Register(4), ins.Src)
	assert.Equal(t, int16(8), ins.Off)
	assert.Nil(t, ins.Imm, "memory loads carry no immediate")
}

func TestDecodeNegativeImmediate(t *testing.T) {
	ins, _, err := Decode(slot(OpMov64Imm, 1, 0, 0, -1))
	require.NoError(t, err)
	assert.Equal(t, Imm(-1), ins.Imm)
}

func TestDecodeLddw(t *testing.T) {
	data := append(slot(OpLddw, 1, 0, 0, 1), slot(0, 0, 0, 0, 2)...)

	ins, width, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, 2*SlotSize, width)
	assert.Equal(t, Imm(0x2_0000_0001), ins.Imm)
}

func TestDecodeLddwMissingSecondSlot(t *testing.T) {
	_, _, err := Decode(slot(OpLddw, 1, 0, 0, 1))
	require.ErrorContains(t, err, "second slot")
}

func TestDecodeLddwDirtySecondSlot(t *testing.T) {
	second := slot(0, 0, 0, 0, 2)
	second[0] = 1
	_, _, err := Decode(append(slot(OpLddw, 1, 0, 0, 1), second...))
	require.ErrorContains(t, err, "non-zero")
}

func TestDecodeUnknownOpcode(t *testing.T) {
	_, _, err := Decode(slot(Opcode(0x06), 0, 0, 0, 0))
	require.ErrorContains(t, err, "unknown opcode")
}

func TestDecodeTruncatedSlot(t *testing.T) {
	_, _, err := Decode([]byte{0xb7, 0x01})
	require.ErrorContains(t, err, "truncated")
}

func TestOpcodeSize(t *testing.T) {
	assert.Equal(t, 2*SlotSize, OpLddw.Size())
	assert.Equal(t, SlotSize, OpMov64Imm.Size())
	assert.Equal(t, SlotSize, OpExit.Size())
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		data []byte
		want string
	}{
		{slot(OpMov64Imm, 1, 0, 0, 42), "mov64 r1, 42"},
		{slot(OpAdd64Reg, 1, 2, 0, 0), "add64 r1, r2"},
		{slot(OpNeg64, 5, 0, 0, 0), "neg64 r5"},
		{slot(OpLdxw, 3, 4, 8, 0), "ldxw r3, [r4+8]"},
		{slot(OpStxdw, 10, 1, -16, 0), "stxdw [r10-16], r1"},
		{slot(OpStw, 2, 0, 4, 7), "stw [r2+4], 7"},
		{slot(OpJa, 0, 0, 5, 0), "ja +5"},
		{slot(OpJeqImm, 2, 0, -2, 7), "jeq r2, 7, -2"},
		{slot(OpJsgtReg, 1, 3, 9, 0), "jsgt r1, r3, +9"},
		{slot(OpBe, 1, 0, 0, 32), "be32 r1"},
		{slot(OpCall, 0, 0, 0, 3), "call 3"},
		{slot(OpExit, 0, 0, 0, 0), "exit"},
	}

	for _, tt := range tests {
		ins, _, err := Decode(tt.data)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ins.String())
	}
}

func TestLabelRefString(t *testing.T) {
	ins, _, err := Decode(append(slot(OpLddw, 1, 0, 0, 0), slot(0, 0, 0, 0, 0)...))
	require.NoError(t, err)

	ins.Imm = LabelRef("MSG")
	assert.Equal(t, "lddw r1, MSG", ins.String())
}
