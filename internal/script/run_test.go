package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/chains/pkg/types"
)

func run(t *testing.T, yaml string, cfg types.Config) *Report {
	t.Helper()
	s, err := Parse([]byte(yaml))
	require.NoError(t, err)
	rep, err := Run(s, s.Settings(cfg), quiet())
	require.NoError(t, err)
	return rep
}

func TestRunDoublyDemo(t *testing.T) {
	s, err := Demo("doubly")
	require.NoError(t, err)
	rep, err := Run(s, s.Settings(types.Config{Topology: types.TopologySingly}), quiet())
	require.NoError(t, err)

	assert.Equal(t, types.TopologyDoubly, rep.Topology)
	assert.Equal(t, []string{"Front", "Inserted", "0x01000000"}, rep.Forward)
	assert.Equal(t, []string{"0x01000000", "Inserted", "Front"}, rep.Backward)
	assert.Equal(t, "nil <- Front <-> Inserted <-> 0x01000000 -> nil", rep.Chain)

	require.Len(t, rep.Results, 7)
	assert.True(t, rep.Results[1].SlotCleared, "moved int slot must be cleared")
	assert.True(t, rep.Results[3].SlotCleared, "moved insert slot must be cleared")
	assert.Equal(t, "0x01000000", rep.Results[5].Value)
	assert.Equal(t, "3", rep.Results[6].Value)
	for _, res := range rep.Results {
		assert.True(t, res.OK, "step %d (%s): %s", res.Step, res.Op, res.Error)
	}
	assert.Equal(t, 0, rep.Refused())
}

func TestRunSinglyDemo(t *testing.T) {
	s, err := Demo("singly")
	require.NoError(t, err)
	rep, err := Run(s, s.Settings(types.Config{}), quiet())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"First", "Second", "Third", "Fourth",
		"-First", "-Second", "-Third", "-Fourth",
	}, rep.Forward)
	assert.Empty(t, rep.Backward)
	assert.True(t, rep.Results[0].SlotCleared)
	require.NotNil(t, rep.Results[6].Index)
	assert.Equal(t, 2, *rep.Results[6].Index)
	assert.Equal(t, "-First", rep.Results[8].Value)
}

func TestRunCircularDemo(t *testing.T) {
	s, err := Demo("circular")
	require.NoError(t, err)
	rep, err := Run(s, s.Settings(types.Config{}), quiet())
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, rep.Forward)
	assert.Equal(t, "A -> B -> C -> (A)", rep.Chain)
	assert.Equal(t, "false", rep.Results[5].Value)
	require.NotNil(t, rep.Results[6].Index)
	assert.Equal(t, 2, *rep.Results[6].Index)

	last := rep.Results[7]
	assert.False(t, last.OK)
	assert.False(t, last.Refused)
	assert.Contains(t, last.Error, "index out of range")
	assert.Equal(t, 3, last.Len)
}

func TestRunUnknownDemo(t *testing.T) {
	_, err := Demo("tree")
	assert.Error(t, err)
	assert.ElementsMatch(t, []string{"circular", "doubly", "singly"}, Demos())
}

func TestRunRecordsRefusedAllocations(t *testing.T) {
	rep := run(t, `
ops:
  - op: push_back
    value: abcd
  - op: push_back
    value: efgh
  - op: push_back
    mode: ref
    value: ijkl
`, types.Config{Topology: types.TopologySingly, MaxBytes: 6})

	assert.True(t, rep.Results[0].OK)
	assert.False(t, rep.Results[1].OK)
	assert.True(t, rep.Results[1].Refused)
	assert.True(t, rep.Results[2].OK, "borrowed payloads need no bytes")
	assert.Equal(t, 1, rep.Refused())
	assert.Equal(t, []string{"abcd", "ijkl"}, rep.Forward)
	assert.Equal(t, 4, rep.Stats.Live)
}

func TestRunMaxNodes(t *testing.T) {
	rep := run(t, `
max_nodes: 2
ops:
  - op: push_back_nodes
    values: [a, b, c]
  - op: push_back_nodes
    mode: move
    values: [a, b]
`, types.Config{Topology: types.TopologyDoubly})

	assert.False(t, rep.Results[0].OK)
	assert.True(t, rep.Results[0].Refused)
	assert.True(t, rep.Results[1].OK)
	assert.True(t, rep.Results[1].SlotCleared)
	assert.Equal(t, []string{"a", "b"}, rep.Forward)
}

func TestRunNodeModes(t *testing.T) {
	rep := run(t, `
ops:
  - op: push_back_nodes
    mode: ref
    values: [r1, r2]
  - op: push_front_nodes
    mode: copy
    values: [c1]
  - op: insert_nodes_at
    mode: move
    index: 1
    values: [m1, m2]
`, types.Config{Topology: types.TopologySingly})

	for _, res := range rep.Results {
		assert.True(t, res.OK, "step %d: %s", res.Step, res.Error)
	}
	assert.Equal(t, []string{"c1", "m1", "m2", "r1", "r2"}, rep.Forward)
}

func TestRunMissesAndEmptyList(t *testing.T) {
	rep := run(t, `
ops:
  - op: get
    index: 0
  - op: delete_at
    index: 0
  - op: delete_value
    value: x
  - op: push_back
    value: x
  - op: delete_value
    value: y
  - op: free_all
  - op: len
`, types.Config{Topology: types.TopologyCircular})

	assert.False(t, rep.Results[0].OK)
	assert.Contains(t, rep.Results[0].Error, "empty")
	assert.True(t, rep.Results[1].OK, "delete on empty list is a no-op")
	assert.True(t, rep.Results[2].OK, "delete on empty list is a no-op")
	assert.False(t, rep.Results[4].OK)
	assert.Equal(t, "0", rep.Results[6].Value)
	assert.Equal(t, "(empty)", rep.Chain)
}

func TestRunDoublyRejectsAppendByIndex(t *testing.T) {
	rep := run(t, `
topology: doubly
ops:
  - op: insert_at
    index: 0
    value: a
`, types.Config{})

	assert.False(t, rep.Results[0].OK)
	assert.Empty(t, rep.Forward)
}

func TestRunInvalidConfig(t *testing.T) {
	s, err := Parse([]byte("ops:\n  - op: len\n"))
	require.NoError(t, err)
	_, err = Run(s, types.Config{}, quiet())
	assert.ErrorIs(t, err, types.ErrTopologyEmpty)
}
