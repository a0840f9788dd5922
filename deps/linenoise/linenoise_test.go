package linenoise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandCompleter(t *testing.T) {
	complete := CommandCompleter([]string{"SADD", "SCARD", "SREM", "KEYS"})

	assert.Equal(t, []string{"SADD"}, complete("sa"))
	assert.Equal(t, []string{"SADD", "SCARD", "SREM"}, complete("S"))
	assert.Nil(t, complete("x"))
	assert.Len(t, complete(""), 4)
}
