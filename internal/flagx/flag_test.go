package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-e", "client.env", "-v"},
			allowed: []string{"-e"},
			want:    []string{"-e", "client.env"},
		},
		{
			name:    "equals form",
			args:    []string{"--env=client.env", "-x", "1"},
			allowed: []string{"--env"},
			want:    []string{"--env=client.env"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "b"},
			allowed: []string{"-e"},
			want:    []string{},
		},
		{
			name:    "flag without value at end",
			args:    []string{"-e"},
			allowed: []string{"-e"},
			want:    []string{"-e"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}
