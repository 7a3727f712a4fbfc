package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCommands(t *testing.T) {
	cases := map[string]struct {
		stdin          string
		args           []string
		expectedOutput string
		expectedErr    bool
	}{
		"Union": {
			args:           []string{"union", "1-3", "10-12", "4-9"},
			expectedOutput: "[1-12]\n",
		},
		"UnionStdin": {
			stdin:          "5\n6\n\n20-22\n",
			args:           []string{"union", "1", "-"},
			expectedOutput: "[1 5-6 20-22]\n",
		},
		"UnionYAML": {
			args:           []string{"union", "-o", "yaml", "5-10", "1-3"},
			expectedOutput: "ranges: 1-3,5-10\nsize: 9\n",
		},
		"UnionJSON": {
			args:           []string{"union", "--output=json", "1-5", "5-10"},
			expectedOutput: "{\n  \"ranges\": \"1-10\",\n  \"size\": 10\n}\n",
		},
		"UnionInvalid": {
			args:        []string{"union", "1-x"},
			expectedErr: true,
		},
		"UnionInvalidStdin": {
			stdin:       "1\nfoo\n",
			args:        []string{"union", "-"},
			expectedErr: true,
		},
		"Contains": {
			args:           []string{"contains", "1-3,10", "2", "10"},
			expectedOutput: "2\ttrue\n10\ttrue\n",
		},
		"ContainsMissing": {
			args:           []string{"contains", "1-3,10", "2", "5"},
			expectedOutput: "2\ttrue\n5\tfalse\n",
			expectedErr:    true,
		},
		"ContainsNegative": {
			args:        []string{"contains", "1-3", "-1"},
			expectedErr: true,
		},
		"Remove": {
			args:           []string{"remove", "0,2-3", "a", "b", "c", "d", "e"},
			expectedOutput: "b\ne\n",
		},
		"RemoveJSON": {
			args:           []string{"remove", "-o", "json", "1", "a", "b"},
			expectedOutput: "[\n  \"a\"\n]\n",
		},
		"RemoveOutOfRange": {
			args:        []string{"remove", "5", "a", "b"},
			expectedErr: true,
		},
		"UnknownOutput": {
			args:        []string{"union", "-o", "xml", "1"},
			expectedErr: true,
		},
		"UnknownLogLevel": {
			args:        []string{"union", "--log-level", "loud", "1"},
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			out, _, err := run(t, tc.stdin, tc.args...)
			if tc.expectedErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tc.expectedOutput != "" {
				assert.Equal(t, tc.expectedOutput, out)
			}
		})
	}
}

func TestDebugLog(t *testing.T) {
	_, stderr, err := run(t, "", "union", "--log-level", "debug", "1-3", "4")
	assert.NoError(t, err)
	assert.Contains(t, stderr, "union")
	assert.Contains(t, stderr, "set=[1-4]")

	_, stderr, err = run(t, "", "union", "1-3", "4")
	assert.NoError(t, err)
	assert.Empty(t, stderr)
}
