package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewProgramCode_Formato(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		code := NewProgramCode(now)
		assert.Regexp(t, `^2025BS[0-9A-F]{4}$`, code)
	}
}

func TestEnsureCode_NoSobrescribe(t *testing.T) {
	p := &Program{}
	p.EnsureCode(time.Now())
	first := p.Code
	assert.NotEmpty(t, first)

	p.EnsureCode(time.Now())
	assert.Equal(t, first, p.Code)
}

func TestIsValidProgramState(t *testing.T) {
	for _, s := range ProgramStates() {
		assert.True(t, IsValidProgramState(s), s)
	}
	assert.False(t, IsValidProgramState("draft"))
	assert.False(t, IsValidProgramState(""))
}
