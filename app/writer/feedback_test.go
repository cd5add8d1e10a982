package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectCommand(t *testing.T) {
	tbl := []struct {
		comment string
		cmd     Command
	}{
		{"/shorter please", CommandShorter},
		{"もう少し /longer でお願いします", CommandLonger},
		{"/publish", CommandPublish},
		{"この部分を直してください", ""},
		{"", ""},
		// first-in-priority-list wins when several are present
		{"maybe /shorter or /casual", CommandShorter},
		{"/casual and also /regenerate", CommandRegenerate},
	}

	for _, tt := range tbl {
		t.Run(tt.comment, func(t *testing.T) {
			assert.Equal(t, tt.cmd, DetectCommand(tt.comment))
		})
	}
}

func TestDirective(t *testing.T) {
	for _, cmd := range []Command{CommandShorter, CommandLonger, CommandCasual, CommandFormal} {
		assert.NotEmpty(t, Directive(cmd), "command %s must carry an instruction", cmd)
	}

	assert.Empty(t, Directive(CommandRegenerate))
	assert.Empty(t, Directive(CommandPublish))
	assert.Empty(t, Directive(""))
}
