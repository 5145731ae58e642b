package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		names []string
		want  []string
	}{
		{
			name:  "short flag with separate value",
			args:  []string{"-c", "conf.json", "-a", ":50051"},
			names: []string{"c"},
			want:  []string{"-c", "conf.json"},
		},
		{
			name:  "double dash with inline value",
			args:  []string{"--config=alt.json", "-a", ":50051"},
			names: []string{"config"},
			want:  []string{"--config=alt.json"},
		},
		{
			name:  "dashes in allowed names are ignored",
			args:  []string{"-d", "memory"},
			names: []string{"-d"},
			want:  []string{"-d", "memory"},
		},
		{
			name:  "unknown flags and positionals ignored",
			args:  []string{"-x", "1", "--y=2", "positional"},
			names: []string{"c"},
			want:  []string{},
		},
		{
			name:  "next dash token is not consumed as value",
			args:  []string{"-c", "-a", ":1"},
			names: []string{"c", "a"},
			want:  []string{"-c", "-a", ":1"},
		},
		{
			name:  "bare dashes are skipped",
			args:  []string{"-", "--", "-c", "x.json"},
			names: []string{"c"},
			want:  []string{"-c", "x.json"},
		},
		{
			name:  "repeated flag preserved in order",
			args:  []string{"-c", "one.json", "-c", "two.json"},
			names: []string{"c"},
			want:  []string{"-c", "one.json", "-c", "two.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.names))
		})
	}
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, "/etc/um.json", ConfigFile([]string{"-c", "/etc/um.json"}))
	assert.Equal(t, "/etc/long.json", ConfigFile([]string{"-a", ":1", "-config", "/etc/long.json"}))
	assert.Equal(t, "/etc/2.json", ConfigFile([]string{"-c", "/etc/1.json", "--config=/etc/2.json"}))
	assert.Empty(t, ConfigFile([]string{"-x", "1"}))
	assert.Empty(t, ConfigFile(nil))
}
