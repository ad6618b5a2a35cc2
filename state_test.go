package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_roundTrip(t *testing.T) {
	in := New()
	_, err := in.Execute("[dup add] 'double' def 1 2/3 'hi' true nil [1 ['x']] 'out' print")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, in.SaveState(&buf))

	restored := New()
	require.NoError(t, restored.LoadState(&buf))

	assert.Equal(t, in.StackSnapshot(), restored.StackSnapshot())
	assert.Equal(t, in.Words(), restored.Words())
	assert.Equal(t, in.Output(), restored.Output())

	// compiled word calls survive: double must still run as code
	_, err = restored.Execute("clear [1 2 3] @double print")
	require.NoError(t, err)
	assert.Equal(t, "[2 4 6]", restored.Output())
}

func TestState_loadReplaces(t *testing.T) {
	src := New()
	_, err := src.Execute("42")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, src.SaveState(&buf))

	in := New()
	_, err = in.Execute("[1] 'junk' def 'old' print 7 7")
	require.NoError(t, err)

	require.NoError(t, in.LoadState(&buf))
	assert.Equal(t, []string{"42"}, in.StackSnapshot())
	assert.Empty(t, in.Words())
	assert.Equal(t, "", in.Output())
}

func TestState_loadErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
	}{
		{"not json", "{nonsense"},
		{"unknown tag", `{"stack":[{"t":"wat"}]}`},
		{"bad rational", `{"stack":[{"t":"rat","rat":"x"}]}`},
		{"bad word body", `{"stack":[],"words":{"w":[{"t":"rat","rat":""}]}}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			in := New()
			_, err := in.Execute("1 'keep' print")
			require.NoError(t, err)

			err = in.LoadState(strings.NewReader(tc.in))
			assert.ErrorIs(t, err, errStateLoad)

			// a failed load leaves the session untouched
			assert.Equal(t, []string{"1"}, in.StackSnapshot())
			assert.Equal(t, "'keep'", in.Output())
		})
	}
}
