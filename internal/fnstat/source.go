package fnstat

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/kbukum/fnkit/seq"
)

// Line is one input line.
type Line struct {
	Source string
	No     int
	Text   string
}

// Input is a named reader.
type Input struct {
	Name   string
	Reader io.Reader
}

// Lines returns a lazy iterator over the lines of every input, in order.
// Elements are Line values; a read error surfaces from Next.
func Lines(inputs ...Input) seq.Iterator[any] {
	iters := make([]seq.Iterator[any], len(inputs))
	for i, in := range inputs {
		iters[i] = scanLines(in)
	}
	return seq.Concat(iters...)
}

func scanLines(in Input) seq.Iterator[any] {
	sc := bufio.NewScanner(in.Reader)
	no := 0
	return seq.FromFunc(func(_ context.Context) (any, bool, error) {
		if !sc.Scan() {
			return nil, false, sc.Err()
		}
		no++
		return Line{Source: in.Name, No: no, Text: sc.Text()}, true, nil
	})
}

// isData reports whether a line carries a value.
func isData(l Line) bool {
	s := strings.TrimSpace(l.Text)
	return s != "" && !strings.HasPrefix(s, "#")
}
