package linker

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	TextSectionName = ".text"
	// Clang splits constants into suffixed sections, e.g. .rodata.str1.1.
	RodataSectionPrefix = ".rodata"
	DebugSectionPrefix  = ".debug_"
)

var ErrMultipleRodata = errors.New("multiple read-only data sections")

// ProgramSections are the sections the decoder cares about. Text and Rodata
// may be nil; Debug preserves object order.
type ProgramSections struct {
	Text   *InputSection
	Rodata *InputSection
	Debug  []*InputSection
}

func LocateSections(obj *ObjectFile) (ProgramSections, error) {
	var secs ProgramSections

	for _, sec := range obj.Sections {
		switch {
		case sec.Name == TextSectionName:
			secs.Text = sec
		case strings.HasPrefix(sec.Name, RodataSectionPrefix):
			if secs.Rodata != nil {
				return ProgramSections{}, errors.Wrapf(ErrMultipleRodata,
					"%s: %s and %s", obj.File.Name, secs.Rodata.Name, sec.Name)
			}
			secs.Rodata = sec
		case strings.HasPrefix(sec.Name, DebugSectionPrefix):
			secs.Debug = append(secs.Debug, sec)
		}
	}

	return secs, nil
}
