// Copyright 2012 Luuk van Dijk. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file contains the code to write CDF variable data. Mirrors the
// layout math in reader.go so that bytes written at record r line up
// with what a Reader reading the same variable would see at record r.

package cdf

import (
	"encoding/binary"
	"errors"
)

// A Writer is an object that can write values to a CDF file.
type Writer interface {
	// Write writes len(values.([]T)) elements from values to the
	// underlying file. Values must be a slice of int{8,16,32} or
	// float{32,64} matching the variable's type. If n <
	// len(values.([]T)), err will be set.
	Write(values interface{}) (n int, err error)
}

// Writer returns a Writer for v, starting at the corner begin and
// stopping at end, with the same defaulting rules as File.Reader.
func (f *File) Writer(v string, begin, end []int) Writer {
	vv := f.Header.varByName(v)
	if vv == nil {
		return nil
	}

	if begin != nil && len(begin) != len(vv.dim) {
		panic("invalid begin index vector")
	}
	if end != nil && len(end) != len(vv.dim) {
		panic("invalid end index vector")
	}

	var b, e, sz, sk int64

	if begin != nil {
		b = vv.offsetOf(begin)
	} else {
		b = vv.begin
	}

	if end != nil {
		e = vv.offsetOf(end)
	} else if !vv.isRecordVariable() {
		e = vv.offsetOf(vv.lengths)
	}

	if !vv.isRecordVariable() {
		sz = e - b
		sk = e - b
	} else {
		sz = vv.strides[0]
		sk = vv.strides[1]
	}

	switch vv.dtype {
	case _BYTE, _CHAR:
		return &int8Writer{f.rw, b, e, sz, sk, b}
	case _SHORT:
		return &int16Writer{f.rw, b, e, sz, sk, b}
	case _INT:
		return &int32Writer{f.rw, b, e, sz, sk, b}
	case _FLOAT:
		return &float32Writer{f.rw, b, e, sz, sk, b}
	case _DOUBLE:
		return &float64Writer{f.rw, b, e, sz, sk, b}
	}
	panic("invalid variable data type")
}

type stridedWriter struct {
	w                  ReaderWriterAt
	begin, end         int64
	stripesize, stride int64
	curr               int64
}

// Write is the WriterAt-side mirror of stridedReader.Read: it walks the
// same begin/stripesize/stride geometry, wrapping at stripe boundaries
// so successive calls advance one record at a time for record
// variables, and write contiguously for non-record variables.
func (w *stridedWriter) Write(p []byte) (n int, err error) {
	se := (w.curr - w.begin) / w.stride
	se = w.begin + se*w.stride
	se += w.stripesize

	for len(p) > 0 {
		nn := int64(len(p))
		if w.curr+nn > se {
			nn = se - w.curr
		}
		if w.end > 0 && w.curr+nn > w.end {
			nn = w.end - w.curr
		}

		nw, err := w.w.WriteAt(p[:nn], w.curr)
		w.curr += int64(nw)
		n += nw
		p = p[nw:]
		if w.curr == se {
			w.curr += w.stride - w.stripesize
			se += w.stride
		}
		if err != nil {
			return n, err
		}
		if w.end > 0 && w.curr == w.end {
			return n, nil
		}
	}
	return n, nil
}

var badWriteValueType = errors.New("value type mismatch")

type int8Writer stridedWriter
type int16Writer stridedWriter
type int32Writer stridedWriter
type float32Writer stridedWriter
type float64Writer stridedWriter

func (w *int8Writer) Write(values interface{}) (int, error) {
	v, ok := values.([]int8)
	if !ok {
		return 0, badWriteValueType
	}
	return writeElems((*stridedWriter)(w), 1, v)
}

func (w *int16Writer) Write(values interface{}) (int, error) {
	v, ok := values.([]int16)
	if !ok {
		return 0, badWriteValueType
	}
	return writeElems((*stridedWriter)(w), 2, v)
}

func (w *int32Writer) Write(values interface{}) (int, error) {
	v, ok := values.([]int32)
	if !ok {
		return 0, badWriteValueType
	}
	return writeElems((*stridedWriter)(w), 4, v)
}

func (w *float32Writer) Write(values interface{}) (int, error) {
	v, ok := values.([]float32)
	if !ok {
		return 0, badWriteValueType
	}
	return writeElems((*stridedWriter)(w), 4, v)
}

func (w *float64Writer) Write(values interface{}) (int, error) {
	v, ok := values.([]float64)
	if !ok {
		return 0, badWriteValueType
	}
	return writeElems((*stridedWriter)(w), 8, v)
}

func writeElems(w *stridedWriter, elemsz int64, values interface{}) (int, error) {
	before := (w.curr - w.begin) / elemsz
	err := binary.Write(w, binary.BigEndian, values)
	after := (w.curr - w.begin) / elemsz
	return int(after - before), err
}
