// Package opsfile loads and writes the operation-stream text format
// consumed by cmd/unionfind-bench: a header line "N M" followed by M
// lines of "T a b", T in {0,1,2} for UNION, FIND, SAMESET. Scanning is
// done with concurrentuf/numfmt's zero-allocation integer parser over
// the whole file in memory, rather than bufio.Scanner plus strconv, to
// keep large operation streams off the allocator.
package opsfile

import (
	"errors"
	"fmt"
	"os"

	"concurrentuf/dsuops"
	"concurrentuf/numfmt"
)

// ErrParse is wrapped with line-number context when the operation
// stream is malformed.
var ErrParse = errors.New("opsfile: malformed operation stream")

// File holds a loaded operation stream together with the element count
// it was generated against.
type File struct {
	NumElements int
	Ops         []dsuops.Operation
}

// Load reads an operation stream from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opsfile: %w", err)
	}
	return Parse(data)
}

// Parse decodes an operation stream already read into memory.
func Parse(data []byte) (*File, error) {
	i := 0
	n, i, ok := scanInt(data, i)
	if !ok {
		return nil, fmt.Errorf("%w: missing element count", ErrParse)
	}
	m, i, ok := scanInt(data, i)
	if !ok {
		return nil, fmt.Errorf("%w: missing operation count", ErrParse)
	}
	if n < 0 {
		return nil, dsuops.ErrInvalidSize
	}

	ops := make([]dsuops.Operation, 0, m)
	for line := 0; line < m; line++ {
		t, next, ok := scanInt(data, i)
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing operation type", ErrParse, line+2)
		}
		i = next
		a, next, ok := scanInt(data, i)
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing operand a", ErrParse, line+2)
		}
		i = next
		b, next, ok := scanInt(data, i)
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing operand b", ErrParse, line+2)
		}
		i = next

		if t < 0 || t > 2 {
			return nil, fmt.Errorf("%w: line %d: unrecognized operation type %d", ErrParse, line+2, t)
		}
		ops = append(ops, dsuops.Operation{Kind: dsuops.OpKind(t), A: a, B: b})
	}

	return &File{NumElements: n, Ops: ops}, nil
}

func scanInt(b []byte, i int) (v int, next int, ok bool) {
	i = numfmt.SkipSpaces(b, i)
	return numfmt.ParseInt(b, i)
}

// Write encodes ops in the operation-stream format and writes it to
// path, used by cmd/genops.
func Write(path string, numElements int, ops []dsuops.Operation) error {
	buf := make([]byte, 0, 16+len(ops)*12)
	buf = numfmt.AppendInt(buf, numElements)
	buf = append(buf, ' ')
	buf = numfmt.AppendInt(buf, len(ops))
	buf = append(buf, '\n')
	for _, op := range ops {
		buf = numfmt.AppendInt(buf, int(op.Kind))
		buf = append(buf, ' ')
		buf = numfmt.AppendInt(buf, op.A)
		buf = append(buf, ' ')
		buf = numfmt.AppendInt(buf, op.B)
		buf = append(buf, '\n')
	}
	return os.WriteFile(path, buf, 0o644)
}
