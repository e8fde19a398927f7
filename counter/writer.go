package counter

import (
	"io"
)

// CountWriter counts the bytes that reached the underlying writer.
type CountWriter struct {
	Writer  io.Writer
	counter int
}

func NewCountWriter(w io.Writer) *CountWriter {
	return &CountWriter{Writer: w}
}

func (c *CountWriter) Write(b []byte) (int, error) {
	n, err := c.Writer.Write(b)
	c.counter += n
	return n, err
}

func (c *CountWriter) Count() int {
	return c.counter
}
