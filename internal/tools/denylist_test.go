package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDangerous(t *testing.T) {
	tests := []struct {
		command string
		want    bool
	}{
		{"ls -la", false},
		{"rm file.txt", false},
		{"sudo apt install x", true},
		{"SUDO reboot", true},
		{"rm -rf /", true},
		{"echo hi > /dev/sda", true},
		{"ls | rm", true},
		{"ls & rm x", true},
		{"ls; rm x", true},
		{"ls && rm x", true},
		{"echo pseudo", false},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDangerous(tt.command))
		})
	}
}

func TestUnsafeCommandMessage(t *testing.T) {
	err := unsafeCommand()
	assert.Equal(t, "Potentially dangerous command detected.", err.Error())
	assert.Equal(t, KindUnsafe, err.Kind)
}
