package linker

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type ContextArgs struct {
	Output string
}

type Context struct {
	Args ContextArgs
	Log  *zap.Logger
}

func NewContext() *Context {
	return &Context{
		Log: zap.NewNop(),
	}
}

// ParseBytecode reconstructs the symbolic program from one compiled object
// file: locate the interesting sections, name the rodata constants, decode
// the instruction stream, resolve relocations against the rodata table, and
// package the result. A single failure anywhere aborts the whole decode;
// there is no partial result.
func ParseBytecode(ctx *Context, file *File) (*Program, error) {
	obj, err := NewObjectFile(file)
	if err != nil {
		return nil, err
	}

	secs, err := LocateSections(obj)
	if err != nil {
		return nil, err
	}
	ctx.Log.Debug("located sections",
		zap.Bool("text", secs.Text != nil),
		zap.Bool("rodata", secs.Rodata != nil),
		zap.Int("debug", len(secs.Debug)))

	rodataNodes, table, rodataSize, err := BuildRodataTable(secs.Rodata, obj.Symbols)
	if err != nil {
		return nil, err
	}
	ctx.Log.Debug("built rodata table",
		zap.Int("symbols", len(rodataNodes)),
		zap.Uint64("size", rodataSize))

	var insts []*InstructionNode
	var textSize uint64
	if secs.Text != nil {
		var index instructionIndex
		insts, index, err = DecodeText(secs.Text)
		if err != nil {
			return nil, err
		}
		textSize = uint64(len(secs.Text.Data))
		ctx.Log.Debug("decoded text section", zap.Int("instructions", len(insts)))

		if err := ApplyRelocations(obj, secs, index, table); err != nil {
			return nil, err
		}
	}

	var debug []DebugBlob
	for _, sec := range secs.Debug {
		debug = append(debug, DebugBlob{Name: sec.Name, Data: sec.Data})
	}

	prog, errs := BuildProgram(insts, rodataNodes, textSize, rodataSize, debug)
	if len(errs) > 0 {
		return nil, multierr.Combine(errs...)
	}

	return prog, nil
}
