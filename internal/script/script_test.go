package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/chains/pkg/types"
)

func quiet() logrus.FieldLogger {
	l, _ := test.NewNullLogger()
	return l
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name: "valid",
			yaml: "topology: doubly\nops:\n  - op: push_back\n    value: a\n",
		},
		{
			name:    "no ops",
			yaml:    "topology: singly\n",
			wantErr: ErrNoOps,
		},
		{
			name:    "unknown topology",
			yaml:    "topology: tree\nops:\n  - op: len\n",
			wantErr: types.ErrTopologyUnknown,
		},
		{
			name:    "unknown op",
			yaml:    "ops:\n  - op: sort\n",
			wantErr: ErrUnknownOp,
		},
		{
			name:    "insert without index",
			yaml:    "ops:\n  - op: insert_at\n    value: a\n",
			wantErr: ErrMissingIndex,
		},
		{
			name:    "push without value",
			yaml:    "ops:\n  - op: push_front\n",
			wantErr: ErrMissingValue,
		},
		{
			name:    "node push without values",
			yaml:    "ops:\n  - op: push_back_nodes\n",
			wantErr: ErrMissingValues,
		},
		{
			name:    "negative max nodes",
			yaml:    "max_nodes: -1\nops:\n  - op: len\n",
			wantErr: types.ErrMaxNodesInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseRejectsBadModeAndHex(t *testing.T) {
	_, err := Parse([]byte("ops:\n  - op: push_back\n    mode: lend\n    value: a\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("ops:\n  - op: push_back\n    hex: zz\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("format: octal\nops:\n  - op: len\n"))
	assert.Error(t, err)
}

func TestEmptyValueIsAllowed(t *testing.T) {
	s, err := Parse([]byte("ops:\n  - op: push_back\n    value: \"\"\n  - op: find\n    value: \"\"\n"))
	require.NoError(t, err)

	rep, err := Run(s, types.Config{Topology: types.TopologySingly}, quiet())
	require.NoError(t, err)
	assert.True(t, rep.Results[1].OK)
	assert.Equal(t, []string{""}, rep.Forward)
}

func TestSettingsOverlay(t *testing.T) {
	base := types.Config{Topology: types.TopologySingly, MaxNodes: 5, MaxBytes: 100}

	s := &Script{Topology: types.TopologyCircular, MaxBytes: 10}
	got := s.Settings(base)
	assert.Equal(t, types.Config{Topology: types.TopologyCircular, MaxNodes: 5, MaxBytes: 10}, got)

	assert.Equal(t, base, (&Script{}).Settings(base))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(p, []byte("name: x\nops:\n  - op: len\n"), 0o644))

	s, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "x", s.Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestDecodeHex(t *testing.T) {
	b, err := decodeHex("0x01_00 00 00")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0, 0}, b)
}
