package sbpf

import "fmt"

// Opcode is the first byte of an instruction slot. The encoding follows the
// sBPF v0 instruction set: every opcode occupies one 8-byte slot except Lddw,
// which occupies two.
type Opcode uint8

const (
	OpLddw Opcode = 0x18

	OpLdxw  Opcode = 0x61
	OpLdxh  Opcode = 0x69
	OpLdxb  Opcode = 0x71
	OpLdxdw Opcode = 0x79

	OpStb  Opcode = 0x72
	OpSth  Opcode = 0x6a
	OpStw  Opcode = 0x62
	OpStdw Opcode = 0x7a

	OpStxb  Opcode = 0x73
	OpStxh  Opcode = 0x6b
	OpStxw  Opcode = 0x63
	OpStxdw Opcode = 0x7b

	OpAdd32Imm  Opcode = 0x04
	OpAdd32Reg  Opcode = 0x0c
	OpSub32Imm  Opcode = 0x14
	OpSub32Reg  Opcode = 0x1c
	OpMul32Imm  Opcode = 0x24
	OpMul32Reg  Opcode = 0x2c
	OpDiv32Imm  Opcode = 0x34
	OpDiv32Reg  Opcode = 0x3c
	OpOr32Imm   Opcode = 0x44
	OpOr32Reg   Opcode = 0x4c
	OpAnd32Imm  Opcode = 0x54
	OpAnd32Reg  Opcode = 0x5c
	OpLsh32Imm  Opcode = 0x64
	OpLsh32Reg  Opcode = 0x6c
	OpRsh32Imm  Opcode = 0x74
	OpRsh32Reg  Opcode = 0x7c
	OpNeg32     Opcode = 0x84
	OpMod32Imm  Opcode = 0x94
	OpMod32Reg  Opcode = 0x9c
	OpXor32Imm  Opcode = 0xa4
	OpXor32Reg  Opcode = 0xac
	OpMov32Imm  Opcode = 0xb4
	OpMov32Reg  Opcode = 0xbc
	OpArsh32Imm Opcode = 0xc4
	OpArsh32Reg Opcode = 0xcc

	OpLe Opcode = 0xd4
	OpBe Opcode = 0xdc

	OpAdd64Imm  Opcode = 0x07
	OpAdd64Reg  Opcode = 0x0f
	OpSub64Imm  Opcode = 0x17
	OpSub64Reg  Opcode = 0x1f
	OpMul64Imm  Opcode = 0x27
	OpMul64Reg  Opcode = 0x2f
	OpDiv64Imm  Opcode = 0x37
	OpDiv64Reg  Opcode = 0x3f
	OpOr64Imm   Opcode = 0x47
	OpOr64Reg   Opcode = 0x4f
	OpAnd64Imm  Opcode = 0x57
	OpAnd64Reg  Opcode = 0x5f
	OpLsh64Imm  Opcode = 0x67
	OpLsh64Reg  Opcode = 0x6f
	OpRsh64Imm  Opcode = 0x77
	OpRsh64Reg  Opcode = 0x7f
	OpNeg64     Opcode = 0x87
	OpMod64Imm  Opcode = 0x97
	OpMod64Reg  Opcode = 0x9f
	OpXor64Imm  Opcode = 0xa7
	OpXor64Reg  Opcode = 0xaf
	OpMov64Imm  Opcode = 0xb7
	OpMov64Reg  Opcode = 0xbf
	OpArsh64Imm Opcode = 0xc7
	OpArsh64Reg Opcode = 0xcf
	OpHor64     Opcode = 0xf7

	OpJa      Opcode = 0x05
	OpJeqImm  Opcode = 0x15
	OpJeqReg  Opcode = 0x1d
	OpJgtImm  Opcode = 0x25
	OpJgtReg  Opcode = 0x2d
	OpJgeImm  Opcode = 0x35
	OpJgeReg  Opcode = 0x3d
	OpJsetImm Opcode = 0x45
	OpJsetReg Opcode = 0x4d
	OpJneImm  Opcode = 0x55
	OpJneReg  Opcode = 0x5d
	OpJsgtImm Opcode = 0x65
	OpJsgtReg Opcode = 0x6d
	OpJsgeImm Opcode = 0x75
	OpJsgeReg Opcode = 0x7d
	OpJltImm  Opcode = 0xa5
	OpJltReg  Opcode = 0xad
	OpJleImm  Opcode = 0xb5
	OpJleReg  Opcode = 0xbd
	OpJsltImm Opcode = 0xc5
	OpJsltReg Opcode = 0xcd
	OpJsleImm Opcode = 0xd5
	OpJsleReg Opcode = 0xdd

	OpCall  Opcode = 0x85
	OpCallx Opcode = 0x8d
	OpExit  Opcode = 0x95
)

// Form classifies how an opcode uses the operand fields of its slot.
type Form uint8

const (
	FormExit Form = iota
	FormAluImm
	FormAluReg
	FormAluUnary
	FormEndian
	FormLoadImm
	FormMemLoad
	FormMemStoreImm
	FormMemStoreReg
	FormJumpAlways
	FormJumpCondImm
	FormJumpCondReg
	FormCall
	FormCallReg
)

func (f Form) hasImmediate() bool {
	switch f {
	case FormAluImm, FormEndian, FormLoadImm, FormMemStoreImm,
		FormJumpCondImm, FormCall, FormCallReg:
		return true
	}
	return false
}

type opcodeInfo struct {
	name string
	form Form
}

var opcodes = map[Opcode]opcodeInfo{
	OpLddw: {"lddw", FormLoadImm},

	OpLdxw:  {"ldxw", FormMemLoad},
	OpLdxh:  {"ldxh", FormMemLoad},
	OpLdxb:  {"ldxb", FormMemLoad},
	OpLdxdw: {"ldxdw", FormMemLoad},

	OpStb:  {"stb", FormMemStoreImm},
	OpSth:  {"sth", FormMemStoreImm},
	OpStw:  {"stw", FormMemStoreImm},
	OpStdw: {"stdw", FormMemStoreImm},

	OpStxb:  {"stxb", FormMemStoreReg},
	OpStxh:  {"stxh", FormMemStoreReg},
	OpStxw:  {"stxw", FormMemStoreReg},
	OpStxdw: {"stxdw", FormMemStoreReg},

	OpAdd32Imm:  {"add32", FormAluImm},
	OpAdd32Reg:  {"add32", FormAluReg},
	OpSub32Imm:  {"sub32", FormAluImm},
	OpSub32Reg:  {"sub32", FormAluReg},
	OpMul32Imm:  {"mul32", FormAluImm},
	OpMul32Reg:  {"mul32", FormAluReg},
	OpDiv32Imm:  {"div32", FormAluImm},
	OpDiv32Reg:  {"div32", FormAluReg},
	OpOr32Imm:   {"or32", FormAluImm},
	OpOr32Reg:   {"or32", FormAluReg},
	OpAnd32Imm:  {"and32", FormAluImm},
	OpAnd32Reg:  {"and32", FormAluReg},
	OpLsh32Imm:  {"lsh32", FormAluImm},
	OpLsh32Reg:  {"lsh32", FormAluReg},
	OpRsh32Imm:  {"rsh32", FormAluImm},
	OpRsh32Reg:  {"rsh32", FormAluReg},
	OpNeg32:     {"neg32", FormAluUnary},
	OpMod32Imm:  {"mod32", FormAluImm},
	OpMod32Reg:  {"mod32", FormAluReg},
	OpXor32Imm:  {"xor32", FormAluImm},
	OpXor32Reg:  {"xor32", FormAluReg},
	OpMov32Imm:  {"mov32", FormAluImm},
	OpMov32Reg:  {"mov32", FormAluReg},
	OpArsh32Imm: {"arsh32", FormAluImm},
	OpArsh32Reg: {"arsh32", FormAluReg},

	OpLe: {"le", FormEndian},
	OpBe: {"be", FormEndian},

	OpAdd64Imm:  {"add64", FormAluImm},
	OpAdd64Reg:  {"add64", FormAluReg},
	OpSub64Imm:  {"sub64", FormAluImm},
	OpSub64Reg:  {"sub64", FormAluReg},
	OpMul64Imm:  {"mul64", FormAluImm},
	OpMul64Reg:  {"mul64", FormAluReg},
	OpDiv64Imm:  {"div64", FormAluImm},
	OpDiv64Reg:  {"div64", FormAluReg},
	OpOr64Imm:   {"or64", FormAluImm},
	OpOr64Reg:   {"or64", FormAluReg},
	OpAnd64Imm:  {"and64", FormAluImm},
	OpAnd64Reg:  {"and64", FormAluReg},
	OpLsh64Imm:  {"lsh64", FormAluImm},
	OpLsh64Reg:  {"lsh64", FormAluReg},
	OpRsh64Imm:  {"rsh64", FormAluImm},
	OpRsh64Reg:  {"rsh64", FormAluReg},
	OpNeg64:     {"neg64", FormAluUnary},
	OpMod64Imm:  {"mod64", FormAluImm},
	OpMod64Reg:  {"mod64", FormAluReg},
	OpXor64Imm:  {"xor64", FormAluImm},
	OpXor64Reg:  {"xor64", FormAluReg},
	OpMov64Imm:  {"mov64", FormAluImm},
	OpMov64Reg:  {"mov64", FormAluReg},
	OpArsh64Imm: {"arsh64", FormAluImm},
	OpArsh64Reg: {"arsh64", FormAluReg},
	OpHor64:     {"hor64", FormAluImm},

	OpJa:      {"ja", FormJumpAlways},
	OpJeqImm:  {"jeq", FormJumpCondImm},
	OpJeqReg:  {"jeq", FormJumpCondReg},
	OpJgtImm:  {"jgt", FormJumpCondImm},
	OpJgtReg:  {"jgt", FormJumpCondReg},
	OpJgeImm:  {"jge", FormJumpCondImm},
	OpJgeReg:  {"jge", FormJumpCondReg},
	OpJsetImm: {"jset", FormJumpCondImm},
	OpJsetReg: {"jset", FormJumpCondReg},
	OpJneImm:  {"jne", FormJumpCondImm},
	OpJneReg:  {"jne", FormJumpCondReg},
	OpJsgtImm: {"jsgt", FormJumpCondImm},
	OpJsgtReg: {"jsgt", FormJumpCondReg},
	OpJsgeImm: {"jsge", FormJumpCondImm},
	OpJsgeReg: {"jsge", FormJumpCondReg},
	OpJltImm:  {"jlt", FormJumpCondImm},
	OpJltReg:  {"jlt", FormJumpCondReg},
	OpJleImm:  {"jle", FormJumpCondImm},
	OpJleReg:  {"jle", FormJumpCondReg},
	OpJsltImm: {"jslt", FormJumpCondImm},
	OpJsltReg: {"jslt", FormJumpCondReg},
	OpJsleImm: {"jsle", FormJumpCondImm},
	OpJsleReg: {"jsle", FormJumpCondReg},

	OpCall:  {"call", FormCall},
	OpCallx: {"callx", FormCallReg},
	OpExit:  {"exit", FormExit},
}

func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// IsDWordLoad reports whether the opcode uses the double-length encoding.
func (op Opcode) IsDWordLoad() bool {
	return op == OpLddw
}

// Size returns the encoded length of the opcode in bytes.
func (op Opcode) Size() int {
	if op.IsDWordLoad() {
		return 2 * SlotSize
	}
	return SlotSize
}

func (op Opcode) Form() Form {
	return opcodes[op].form
}

func (op Opcode) String() string {
	info, ok := opcodes[op]
	if !ok {
		return fmt.Sprintf("invalid(%#02x)", uint8(op))
	}
	return info.name
}
