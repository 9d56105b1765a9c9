package resp

import (
	"bufio"
	"fmt"
	"io"
)

// Encoder writes RESP reply frames to a buffered writer. Callers must call
// Flush after each reply (or batch of pipelined replies) to apply the
// write-drain back-pressure the connection handler relies on.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder wraps w for buffered frame encoding.
func NewEncoder(w io.Writer) *Encoder {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriterSize(w, 32*1024)
	}
	return &Encoder{w: bw}
}

// Flush drains any buffered bytes to the underlying writer.
func (e *Encoder) Flush() error { return e.w.Flush() }

// Write encodes and buffers a single frame (does not flush).
func (e *Encoder) Write(v Value) error {
	switch v.Kind {
	case KindSimpleString:
		return e.writeLine('+', v.Str)
	case KindError:
		return e.writeLine('-', v.Str)
	case KindInteger:
		return e.writeLine(':', itoa(v.Int))
	case KindBulkString:
		return e.writeBulk(v.Str)
	case KindNullBulk:
		_, err := e.w.WriteString("$-1\r\n")
		return err
	case KindArray:
		if err := e.writeLine('*', itoa(int64(len(v.Array)))); err != nil {
			return err
		}
		for _, elem := range v.Array {
			if err := e.Write(elem); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("resp: unknown value kind %d", v.Kind)
	}
}

// WriteFlush is a convenience for the common single-reply case.
func (e *Encoder) WriteFlush(v Value) error {
	if err := e.Write(v); err != nil {
		return err
	}
	return e.Flush()
}

func (e *Encoder) writeLine(prefix byte, text string) error {
	if err := e.w.WriteByte(prefix); err != nil {
		return err
	}
	if _, err := e.w.WriteString(text); err != nil {
		return err
	}
	_, err := e.w.WriteString("\r\n")
	return err
}

func (e *Encoder) writeBulk(s string) error {
	if _, err := e.w.WriteString("$" + itoa(int64(len(s))) + "\r\n"); err != nil {
		return err
	}
	if _, err := e.w.WriteString(s); err != nil {
		return err
	}
	_, err := e.w.WriteString("\r\n")
	return err
}
