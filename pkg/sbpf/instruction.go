package sbpf

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// SlotSize is the length of a single instruction slot in bytes.
const SlotSize = 8

// Register is one of the eleven sBPF registers (r10 is the frame pointer,
// r11 the stack pointer).
type Register uint8

func (r Register) String() string {
	return fmt.Sprintf("r%d", uint8(r))
}

// Operand is the immediate field of a decoded instruction: a numeric literal
// as decoded from the slot, or a symbolic label once relocation resolution
// has rewritten it.
type Operand interface {
	isOperand()
	String() string
}

// Imm is an integer immediate.
type Imm int64

func (Imm) isOperand() {}

func (i Imm) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// LabelRef is a reference to a named read-only data symbol.
type LabelRef string

func (LabelRef) isOperand() {}

func (l LabelRef) String() string {
	return string(l)
}

// Instruction is a single decoded sBPF instruction. Imm is nil for forms
// that carry no immediate.
type Instruction struct {
	Op  Opcode
	Dst Register
	Src Register
	Off int16
	Imm Operand
}

// Decode decodes one instruction from the start of data and returns it along
// with the number of bytes consumed. The width depends only on the opcode:
// lddw consumes two slots, everything else one.
func Decode(data []byte) (Instruction, int, error) {
	var ins Instruction

	if len(data) < SlotSize {
		return ins, 0, errors.Errorf("truncated instruction slot: %d bytes left", len(data))
	}

	op := Opcode(data[0])
	info, ok := opcodes[op]
	if !ok {
		return ins, 0, errors.Errorf("unknown opcode %#02x", data[0])
	}

	ins.Op = op
	ins.Dst = Register(data[1] & 0xf)
	ins.Src = Register(data[1] >> 4)
	ins.Off = int16(binary.LittleEndian.Uint16(data[2:4]))

	// Convert through int32 so the sign bit survives the widening.
	imm := int64(int32(binary.LittleEndian.Uint32(data[4:8])))

	if !op.IsDWordLoad() {
		if info.form.hasImmediate() {
			ins.Imm = Imm(imm)
		}
		return ins, SlotSize, nil
	}

	if len(data) < 2*SlotSize {
		return ins, 0, errors.New("lddw is missing its second slot")
	}
	if binary.LittleEndian.Uint32(data[SlotSize:SlotSize+4]) != 0 {
		return ins, 0, errors.New("lddw second slot has non-zero fields")
	}

	hi := int64(int32(binary.LittleEndian.Uint32(data[SlotSize+4 : 2*SlotSize])))
	ins.Imm = Imm(hi<<32 | int64(uint32(imm)))

	return ins, 2 * SlotSize, nil
}

func (ins Instruction) String() string {
	name := ins.Op.String()

	switch ins.Op.Form() {
	case FormExit:
		return name
	case FormAluUnary:
		return fmt.Sprintf("%s %s", name, ins.Dst)
	case FormAluImm, FormLoadImm:
		return fmt.Sprintf("%s %s, %s", name, ins.Dst, ins.Imm)
	case FormAluReg:
		return fmt.Sprintf("%s %s, %s", name, ins.Dst, ins.Src)
	case FormEndian:
		if imm, ok := ins.Imm.(Imm); ok && (imm == 16 || imm == 32 || imm == 64) {
			return fmt.Sprintf("%s%d %s", name, imm, ins.Dst)
		}
		return fmt.Sprintf("%s %s, %s", name, ins.Dst, ins.Imm)
	case FormMemLoad:
		return fmt.Sprintf("%s %s, %s", name, ins.Dst, memRef(ins.Src, ins.Off))
	case FormMemStoreImm:
		return fmt.Sprintf("%s %s, %s", name, memRef(ins.Dst, ins.Off), ins.Imm)
	case FormMemStoreReg:
		return fmt.Sprintf("%s %s, %s", name, memRef(ins.Dst, ins.Off), ins.Src)
	case FormJumpAlways:
		return fmt.Sprintf("%s %+d", name, ins.Off)
	case FormJumpCondImm:
		return fmt.Sprintf("%s %s, %s, %+d", name, ins.Dst, ins.Imm, ins.Off)
	case FormJumpCondReg:
		return fmt.Sprintf("%s %s, %s, %+d", name, ins.Dst, ins.Src, ins.Off)
	case FormCall:
		return fmt.Sprintf("%s %s", name, ins.Imm)
	case FormCallReg:
		// callx encodes the target register in the immediate field.
		if imm, ok := ins.Imm.(Imm); ok {
			return fmt.Sprintf("%s r%d", name, imm)
		}
		return fmt.Sprintf("%s %s", name, ins.Imm)
	}

	return name
}

func memRef(base Register, off int16) string {
	if off < 0 {
		return fmt.Sprintf("[%s%d]", base, off)
	}
	return fmt.Sprintf("[%s+%d]", base, off)
}
