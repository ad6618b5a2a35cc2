package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type interpTestCases []interpTestCase

func (its interpTestCases) run(t *testing.T) {
	for _, it := range its {
		if !t.Run(it.name, it.run) {
			return
		}
	}
}

func interpTest(name string) (it interpTestCase) {
	it.name = name
	return it
}

type interpTestCase struct {
	name    string
	opts    []Option
	inputs  []string
	wantErr error
	expect  []func(t *testing.T, in *Interp)
}

func (it interpTestCase) withOptions(opts ...Option) interpTestCase {
	it.opts = append(it.opts, opts...)
	return it
}

// withInput appends one Execute call's worth of program text; multiple calls
// model a session.
func (it interpTestCase) withInput(inputs ...string) interpTestCase {
	it.inputs = append(it.inputs, inputs...)
	return it
}

func (it interpTestCase) expectError(err error) interpTestCase {
	it.wantErr = err
	return it
}

func (it interpTestCase) expectOutput(output string) interpTestCase {
	it.expect = append(it.expect, func(t *testing.T, in *Interp) {
		assert.Equal(t, output, in.Output(), "expected output")
	})
	return it
}

// expectStack asserts the stack snapshot, top first.
func (it interpTestCase) expectStack(displays ...string) interpTestCase {
	it.expect = append(it.expect, func(t *testing.T, in *Interp) {
		if displays == nil {
			displays = []string{}
		}
		assert.Equal(t, displays, in.StackSnapshot(), "expected stack (top first)")
	})
	return it
}

func (it interpTestCase) expectWords(names ...string) interpTestCase {
	it.expect = append(it.expect, func(t *testing.T, in *Interp) {
		if names == nil {
			names = []string{}
		}
		assert.Equal(t, names, in.Words(), "expected defined words")
	})
	return it
}

func (it interpTestCase) run(t *testing.T) {
	in := New(it.opts...)

	defer func() {
		if t.Failed() {
			var sb strings.Builder
			interpDumper{in: in, out: &sb}.dump()
			t.Logf("%s", sb.String())
		}
	}()

	var execErr error
	for _, input := range it.inputs {
		if _, execErr = in.Execute(input); execErr != nil {
			break
		}
	}

	if it.wantErr != nil {
		require.Error(t, execErr, "expected execute error %v", it.wantErr)
		assert.True(t, errors.Is(execErr, it.wantErr), "expected error %v\ngot: %+v", it.wantErr, execErr)
	} else {
		require.NoError(t, execErr, "unexpected execute error")
	}

	for _, expect := range it.expect {
		expect(t, in)
	}
}
