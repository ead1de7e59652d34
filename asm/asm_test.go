package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tomasulo/engine"
)

func TestParseComputesDecodedInstructions(t *testing.T) {
	insts, err := Parse("LD,F1,5\nLD,F2,7\nADD,F3,F1,F2\n")
	assert.NoError(t, err)
	assert.Equal(t, []engine.Inst{
		engine.LoadInst(1, 5),
		engine.LoadInst(2, 7),
		engine.BinInst(engine.Add, 3, 1, 2),
	}, insts)
}

func TestParseRDialect(t *testing.T) {
	insts, err := Parse("LD,R0,0x10\nJUMP,0x10,R0,2")
	assert.NoError(t, err)
	assert.Equal(t, []engine.Inst{
		engine.LoadInst(0, 0x10),
		engine.JumpInst(0x10, 0, 2),
	}, insts)
}

func TestParseUnknownOpcode(t *testing.T) {
	_, err := Parse("LD,F1,5\nFOO,F2,F3,F4")
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Line)
}

func TestParseRegisterOutOfRange(t *testing.T) {
	_, err := Parse("LD,F99,5")
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, 0, pe.Line)
}

func TestParseMalformedImmediate(t *testing.T) {
	_, err := Parse("LD,F1,not-a-number")
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, 0, pe.Line)
}

func TestParseTrailingNewlineDoesNotProduceSpuriousLine(t *testing.T) {
	insts, err := Parse("LD,F1,5\n")
	assert.NoError(t, err)
	assert.Len(t, insts, 1)
}
