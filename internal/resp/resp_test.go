package resp

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecoderReadCommand_Array(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "ping",
			in:   "*1\r\n$4\r\nPING\r\n",
			want: []string{"PING"},
		},
		{
			name: "echo",
			in:   "*2\r\n$4\r\nECHO\r\n$3\r\nhey\r\n",
			want: []string{"ECHO", "hey"},
		},
		{
			name: "set with options",
			in:   "*5\r\n$3\r\nSET\r\n$3\r\nkey\r\n$5\r\nvalue\r\n$2\r\nPX\r\n$3\r\n100\r\n",
			want: []string{"SET", "key", "value", "PX", "100"},
		},
		{
			name: "empty array",
			in:   "*0\r\n",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(strings.NewReader(tt.in))
			args, err := d.ReadCommand()
			require.NoError(t, err)
			got := make([]string, len(args))
			for i, a := range args {
				got[i] = string(a)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDecoderReadCommand_Inline(t *testing.T) {
	d := NewDecoder(strings.NewReader("PING\r\n"))
	args, err := d.ReadCommand()
	require.NoError(t, err)
	require.Equal(t, []string{"PING"}, toStrings(args))
}

func TestDecoderPipelined(t *testing.T) {
	in := "*1\r\n$4\r\nPING\r\n*1\r\n$4\r\nPING\r\n"
	d := NewDecoder(strings.NewReader(in))
	for i := 0; i < 2; i++ {
		args, err := d.ReadCommand()
		require.NoError(t, err)
		require.Equal(t, []string{"PING"}, toStrings(args))
	}
	_, err := d.ReadCommand()
	require.ErrorIs(t, err, io.EOF)
}

func TestDecoderMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"bad array len", "*x\r\n"},
		{"negative array len", "*-5\r\n"},
		{"bad bulk prefix", "*1\r\nPING\r\n"},
		{"bad bulk len", "*1\r\n$x\r\n"},
		{"negative bulk len not -1", "*1\r\n$-5\r\n"},
		{"missing trailing crlf", "*1\r\n$4\r\nPINGXX"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(strings.NewReader(tt.in))
			_, err := d.ReadCommand()
			require.Error(t, err)
			require.True(t, IsProtocolError(err), "expected protocol error, got %v", err)
		})
	}
}

func TestEncoderWritesFrames(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	require.NoError(t, enc.WriteFlush(OK))
	require.Equal(t, "+OK\r\n", buf.String())

	buf.Reset()
	require.NoError(t, enc.WriteFlush(Error("WRONGTYPE Operation against a key holding the wrong kind of value")))
	require.Equal(t, "-WRONGTYPE Operation against a key holding the wrong kind of value\r\n", buf.String())

	buf.Reset()
	require.NoError(t, enc.WriteFlush(Integer(42)))
	require.Equal(t, ":42\r\n", buf.String())

	buf.Reset()
	require.NoError(t, enc.WriteFlush(BulkString("hey")))
	require.Equal(t, "$3\r\nhey\r\n", buf.String())

	buf.Reset()
	require.NoError(t, enc.WriteFlush(NullBulk()))
	require.Equal(t, "$-1\r\n", buf.String())

	buf.Reset()
	require.NoError(t, enc.WriteFlush(Array()))
	require.Equal(t, "*0\r\n", buf.String())

	buf.Reset()
	require.NoError(t, enc.WriteFlush(Array(BulkString("mylist"), BulkString("foo"))))
	require.Equal(t, "*2\r\n$6\r\nmylist\r\n$3\r\nfoo\r\n", buf.String())
}

func TestEncodeDecodeIdentityOnArrays(t *testing.T) {
	v := Array(BulkString("SET"), BulkString("key"), BulkString("value"))
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	require.NoError(t, enc.WriteFlush(v))

	d := NewDecoder(&buf)
	args, err := d.ReadCommand()
	require.NoError(t, err)
	require.Equal(t, []string{"SET", "key", "value"}, toStrings(args))
}

func toStrings(args [][]byte) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = string(a)
	}
	return out
}
