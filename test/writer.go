// This file is part of symtab.
//
// symtab is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// symtab is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with symtab.  If not, see <https://www.gnu.org/licenses/>.

package test

import "errors"

// Writer is an implementation of the io.Writer interface. It should be used
// to capture output and to compare with predefined strings.
type Writer struct {
	buffer []byte
}

func (tw *Writer) Write(p []byte) (n int, err error) {
	tw.buffer = append(tw.buffer, p...)
	return len(p), nil
}

// Clear string empties the write buffer.
func (tw *Writer) Clear() {
	tw.buffer = tw.buffer[:0]
}

// Compare buffered output with predefined/example string.
func (tw *Writer) Compare(s string) bool {
	return s == string(tw.buffer)
}

// String returns the current contents of the writer's buffer.
func (tw *Writer) String() string {
	return string(tw.buffer)
}

// ErrWriterFull is returned by FailingWriter once its limit has been reached.
var ErrWriterFull = errors.New("test writer is full")

// FailingWriter accepts Limit bytes and then fails every subsequent write.
type FailingWriter struct {
	Limit   int
	written int
}

func (fw *FailingWriter) Write(p []byte) (n int, err error) {
	remaining := fw.Limit - fw.written
	if remaining <= 0 {
		return 0, ErrWriterFull
	}
	if len(p) > remaining {
		fw.written += remaining
		return remaining, ErrWriterFull
	}
	fw.written += len(p)
	return len(p), nil
}
