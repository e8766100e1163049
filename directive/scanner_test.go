package directive

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func printOptions(options map[string]string) ([]string, error) {
	return []string{fmt.Sprint(options)}, nil
}

func TestReplaceOptions(t *testing.T) {
	source := strings.Join([]string{
		"# Some content",
		"foo",
		"::: target",
		"    :option1: value1",
		"    :optiøn2: value2",
		"\t:option3:",
		"    :option4: ",
		"bar",
	}, "\n")

	out, err := ReplaceBlocks(strings.Split(source, "\n"), "target", printOptions)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"# Some content",
		"foo",
		"map[option1:value1 option3: option4: optiøn2:value2]",
		"bar",
	}, out)
}

func TestReplaceNoOptions(t *testing.T) {
	lines := []string{"# Some content", "foo", "::: target", "bar"}
	out, err := ReplaceBlocks(lines, "target", func(map[string]string) ([]string, error) {
		return []string{"> mock"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"# Some content", "foo", "> mock", "bar"}, out)
}

func TestOtherBlocksUnchanged(t *testing.T) {
	lines := []string{
		"# Some content",
		"::: target",
		"::: plugin1",
		"    :option1: value1",
		"::: target",
		"    :option: value",
		"::: plugin2",
		"    :option2: value2",
		"bar",
	}
	out, err := ReplaceBlocks(lines, "target", func(map[string]string) ([]string, error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"# Some content",
		"::: plugin1",
		"    :option1: value1",
		"::: plugin2",
		"    :option2: value2",
		"bar",
	}, out)
}

func TestAdjacentBlocks(t *testing.T) {
	lines := []string{
		"::: target",
		"    :n: 1",
		"::: target",
		"    :n: 2",
		"",
	}
	out, err := ReplaceBlocks(lines, "target", printOptions)
	require.NoError(t, err)
	assert.Equal(t, []string{"map[n:1]", "map[n:2]", ""}, out)
}

func TestUnterminatedBlockIsFlushed(t *testing.T) {
	lines := []string{"intro", "::: target", "    :module: app"}
	out, err := ReplaceBlocks(lines, "target", printOptions)
	require.NoError(t, err)
	assert.Equal(t, []string{"intro", "map[module:app]"}, out)
}

func TestMarkerMustMatchExactly(t *testing.T) {
	lines := []string{
		"::: targets",
		"    :a: b",
		"  ::: target",
		"::: target   ",
		"    :c: d e f",
		"    :e:f",
		"    no option",
	}
	out, err := ReplaceBlocks(lines, "target", printOptions)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"::: targets",
		"    :a: b",
		"  ::: target",
		"map[c:d e:]",
		"    no option",
	}, out)
}

func TestOptionLineNeedsIndentAndKey(t *testing.T) {
	tests := map[string]struct {
		line       string
		key, value string
		ok         bool
	}{
		"spaces":      {line: "    :module: app", key: "module", value: "app", ok: true},
		"tab":         {line: "\t:flag:", key: "flag", ok: true},
		"extra words": {line: "  :k: first second", key: "k", value: "first", ok: true},
		"no indent":   {line: ":module: app"},
		"empty key":   {line: "    :: app"},
		"no colon":    {line: "    module: app"},
		"unclosed":    {line: "    :module app"},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			key, value, ok := parseOptionLine(test.line)
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.key, key)
			assert.Equal(t, test.value, value)
		})
	}
}

func TestReplaceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := ReplaceBlocks([]string{"::: target", "x"}, "target", func(map[string]string) ([]string, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestScan(t *testing.T) {
	in := "# Title\r\n::: target\r\n    :module: app\r\ntext\n::: target\n    :tail: yes"
	var out bytes.Buffer
	require.NoError(t, Scan(strings.NewReader(in), &out, "target", printOptions))
	assert.Equal(t, "# Title\r\nmap[module:app]\r\ntext\nmap[tail:yes]", out.String())
}

func TestScanPassesThroughUnchanged(t *testing.T) {
	tests := map[string]string{
		"empty":            "",
		"lf":               "# Notes\n\nText.\n",
		"crlf":             "# Notes\r\n\r\nText.\r\n",
		"no final newline": "# Notes",
		"mixed endings":    "a\r\nb\nc",
		"blank lines only": "\n\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, Scan(strings.NewReader(in), &out, "target", printOptions))
			assert.Equal(t, in, out.String())
		})
	}
}

func TestScanLongLine(t *testing.T) {
	long := "![logo](data:image/png;base64," + strings.Repeat("A", 2<<20) + ")"
	in := "# Title\n" + long + "\n::: target\n    :k: v\n"
	var out bytes.Buffer
	require.NoError(t, Scan(strings.NewReader(in), &out, "target", printOptions))
	assert.Equal(t, "# Title\n"+long+"\nmap[k:v]\n", out.String())
}
