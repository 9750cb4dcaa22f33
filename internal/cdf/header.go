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

// This file contains the Header type: the classic NetCDF header (magic,
// dimension list, global attribute list, variable list) and the code to
// read, build and write it. The on-disk layout follows the "classic"
// CDF format used by the original NetCDF library: a 4 byte magic+version,
// a record count, then three XDR-encoded lists.

package cdf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const _magic = "CDF"

// _STREAMING is the value of the numrecs field while a file's record
// count has not yet been fixed.
const _STREAMING = -1

const (
	_tagDimension = 0x0A
	_tagVariable  = 0x0B
	_tagAttribute = 0x0C
)

// ncType is the on-disk tag for a variable or attribute's element type.
type ncType int32

const (
	_BYTE   ncType = 1
	_CHAR   ncType = 2
	_SHORT  ncType = 3
	_INT    ncType = 4
	_FLOAT  ncType = 5
	_DOUBLE ncType = 6
)

func (t ncType) size() int64 {
	switch t {
	case _BYTE, _CHAR:
		return 1
	case _SHORT:
		return 2
	case _INT, _FLOAT:
		return 4
	case _DOUBLE:
		return 8
	}
	panic("cdf: invalid nc_type")
}

func ncTypeOf(zero interface{}) ncType {
	switch zero.(type) {
	case int8, []int8:
		return _BYTE
	case byte, []byte, string:
		return _CHAR
	case int16, []int16:
		return _SHORT
	case int, int32, []int32:
		return _INT
	case float32, []float32:
		return _FLOAT
	case float64, []float64:
		return _DOUBLE
	}
	panic(fmt.Sprintf("cdf: unsupported value type %T", zero))
}

type dimension struct {
	name   string
	length int64 // 0 marks the record (unlimited) dimension
}

type attribute struct {
	name  string
	typ   ncType
	value interface{}
}

type variable struct {
	name  string
	dim   []int // indices into Header.dims
	atts  []attribute
	dtype ncType
	vsize int64
	begin int64

	// derived, not stored on disk
	isRecVar bool
	lengths  []int
	strides  []int64 // strides[0]=vsize, strides[1]=slabsize (record stride)
}

// Header describes the dimensions, attributes and variables of a CDF
// file, in the order they will be (or were) written.
type Header struct {
	version int32
	numrecs int32

	dims  []dimension
	gatts []attribute
	vars  []variable

	recordDim    int // index into dims, or -1
	defined      bool
	dataStartVal int64
}

// NewHeader starts a new, mutable header with the given dimensions. A
// dimension whose length is given as 0 becomes the record (unlimited)
// dimension; at most one dimension may do so.
func NewHeader(dimNames []string, dimLengths []int) *Header {
	return newHeader(1, dimNames, dimLengths)
}

func newHeader(version int32, dimNames []string, dimLengths []int) *Header {
	h := &Header{version: version, numrecs: _STREAMING, recordDim: -1}
	for i, name := range dimNames {
		length := dimLengths[i]
		if length == 0 {
			if h.recordDim >= 0 {
				panic("cdf: more than one unlimited dimension")
			}
			h.recordDim = i
		}
		h.dims = append(h.dims, dimension{name: name, length: int64(length)})
	}
	return h
}

// isMutable reports whether the header's variable offsets have not yet
// been fixed by Define/setOffsets. Create panics on a mutable header.
func (h *Header) isMutable() bool {
	return !h.defined
}

// AddAttribute attaches an attribute to the global namespace (varName
// == "") or to the named variable. Must be called before Define.
func (h *Header) AddAttribute(varName, name string, value interface{}) {
	h.addAttribute(varName, name, value)
}

func (h *Header) addAttribute(varName, name string, value interface{}) {
	a := attribute{name: name, typ: ncTypeOf(value), value: value}
	if varName == "" {
		h.gatts = append(h.gatts, a)
		return
	}
	v := h.varByName(varName)
	if v == nil {
		panic("cdf: AddAttribute: no such variable " + varName)
	}
	v.atts = append(v.atts, a)
}

// AddVariable declares a variable over the named dimensions. zero is a
// zero-length (or scalar) value of the variable's element type, used
// only to determine its nc_type. Must be called before Define.
func (h *Header) AddVariable(name string, dimNames []string, zero interface{}) {
	h.addVariable(name, dimNames, zero)
}

func (h *Header) addVariable(name string, dimNames []string, zero interface{}) {
	dimids := make([]int, len(dimNames))
	for i, dn := range dimNames {
		idx := h.dimIndex(dn)
		if idx < 0 {
			panic("cdf: AddVariable: no such dimension " + dn)
		}
		dimids[i] = idx
	}
	h.vars = append(h.vars, variable{
		name:  name,
		dim:   dimids,
		dtype: ncTypeOf(zero),
	})
}

func (h *Header) dimIndex(name string) int {
	for i, d := range h.dims {
		if d.name == name {
			return i
		}
	}
	return -1
}

// Define fixes the header: every variable's vsize and begin offset is
// computed, and it becomes safe to pass to Create.
func (h *Header) Define() error {
	return h.setOffsets(h.encodedSize())
}

// setOffsets assigns variable offsets assuming the data section begins
// at byte start (i.e. the header itself occupies [0, start)). Exposed
// at package level so a header can be laid out to match another file's
// data section exactly.
func (h *Header) setOffsets(start int64) error {
	h.dataStartVal = start

	var nonRec, rec []int
	for i := range h.vars {
		if h.isRecordVar(&h.vars[i]) {
			rec = append(rec, i)
		} else {
			nonRec = append(nonRec, i)
		}
	}

	offs := start
	for _, i := range nonRec {
		v := &h.vars[i]
		v.isRecVar = false
		v.lengths = h.varLengths(v)
		sz := pad4(productInts(v.lengths) * v.dtype.size())
		v.vsize = sz
		v.begin = offs
		v.strides = []int64{sz, sz}
		offs += sz
	}

	recStart := offs
	slab := int64(0)
	for _, i := range rec {
		v := &h.vars[i]
		v.isRecVar = true
		v.lengths = h.varLengths(v)
		inner := int64(1)
		if len(v.lengths) > 1 {
			inner = productInts(v.lengths[1:])
		}
		v.vsize = pad4(inner * v.dtype.size())
		slab += v.vsize
	}
	offs = recStart
	for _, i := range rec {
		v := &h.vars[i]
		v.begin = offs
		v.strides = []int64{v.vsize, slab}
		offs += v.vsize
	}

	h.defined = true
	return nil
}

func (h *Header) encodedSize() int64 {
	var cw countingWriter
	h.writeHeader(&cw)
	return cw.n
}

type countingWriter struct{ n int64 }

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

func (h *Header) isRecordVar(v *variable) bool {
	return h.recordDim >= 0 && len(v.dim) > 0 && v.dim[0] == h.recordDim
}

// varLengths returns the per-dimension element counts for v, substituting
// the current record count (if known) for the record dimension's
// declared length of 0.
func (h *Header) varLengths(v *variable) []int {
	out := make([]int, len(v.dim))
	for i, d := range v.dim {
		out[i] = int(h.dims[d].length)
	}
	if h.isRecordVar(v) && h.numrecs >= 0 {
		out[0] = int(h.numrecs)
	}
	return out
}

// slabs returns the file offset of the first record variable's data and
// the total byte size of one record (the sum of every record variable's
// per-record size).
func (h *Header) slabs() (offs, size int64) {
	offs = -1
	for i := range h.vars {
		v := &h.vars[i]
		if !h.isRecordVar(v) {
			continue
		}
		if offs < 0 {
			offs = v.begin
		}
		size = v.strides[1]
	}
	if offs < 0 {
		offs = 0
	}
	return
}

func (h *Header) dataStart() int64 {
	return h.dataStartVal
}

func (h *Header) varByName(name string) *variable {
	for i := range h.vars {
		if h.vars[i].name == name {
			return &h.vars[i]
		}
	}
	return nil
}

// Dimensions returns the dimension names of the named variable, or of
// the whole header if v is "".
func (h *Header) Dimensions(v string) []string {
	if v == "" {
		names := make([]string, len(h.dims))
		for i, d := range h.dims {
			names[i] = d.name
		}
		return names
	}
	vv := h.varByName(v)
	if vv == nil {
		return nil
	}
	names := make([]string, len(vv.dim))
	for i, d := range vv.dim {
		names[i] = h.dims[d].name
	}
	return names
}

// Lengths returns the dimension lengths of the named variable, or of
// the whole header if v is "".
func (h *Header) Lengths(v string) []int {
	if v == "" {
		out := make([]int, len(h.dims))
		for i, d := range h.dims {
			out[i] = int(d.length)
		}
		return out
	}
	vv := h.varByName(v)
	if vv == nil {
		return nil
	}
	return h.varLengths(vv)
}

// Attributes returns the attribute names attached to the named
// variable, or to the global namespace if v is "".
func (h *Header) Attributes(v string) []string {
	atts := h.gatts
	if v != "" {
		vv := h.varByName(v)
		if vv == nil {
			return nil
		}
		atts = vv.atts
	}
	names := make([]string, len(atts))
	for i, a := range atts {
		names[i] = a.name
	}
	return names
}

// GetAttribute returns the value of a named attribute, or nil if it is
// not present.
func (h *Header) GetAttribute(v, name string) interface{} {
	atts := h.gatts
	if v != "" {
		vv := h.varByName(v)
		if vv == nil {
			return nil
		}
		atts = vv.atts
	}
	for _, a := range atts {
		if a.name == name {
			return a.value
		}
	}
	return nil
}

// Variables returns the variable names in declaration order.
func (h *Header) Variables() []string {
	names := make([]string, len(h.vars))
	for i, v := range h.vars {
		names[i] = v.name
	}
	return names
}

// ZeroValue returns a zero-filled slice of length n of the named
// variable's element type, suitable as a buffer for Reader.Read or as
// the zero argument to AddVariable (n == 0).
func (h *Header) ZeroValue(v string, n int) interface{} {
	vv := h.varByName(v)
	if vv == nil {
		return nil
	}
	if n < 0 {
		n = 0
	}
	switch vv.dtype {
	case _BYTE:
		return make([]int8, n)
	case _CHAR:
		return make([]byte, n)
	case _SHORT:
		return make([]int16, n)
	case _INT:
		return make([]int32, n)
	case _FLOAT:
		return make([]float32, n)
	case _DOUBLE:
		return make([]float64, n)
	}
	return nil
}

// Check validates internal consistency and returns every problem found,
// or nil if the header is well formed.
func (h *Header) Check() []error {
	var errs []error
	seenRecordDim := false
	for i, d := range h.dims {
		if d.length == 0 {
			if seenRecordDim {
				errs = append(errs, fmt.Errorf("cdf: more than one unlimited dimension (dim %d %q)", i, d.name))
			}
			seenRecordDim = true
		}
	}
	for _, v := range h.vars {
		for j, d := range v.dim {
			if d < 0 || d >= len(h.dims) {
				errs = append(errs, fmt.Errorf("cdf: variable %q: dimension index %d at position %d out of range", v.name, d, j))
			}
		}
		if len(v.dim) > 1 {
			for _, d := range v.dim[1:] {
				if h.dims[d].length == 0 {
					errs = append(errs, fmt.Errorf("cdf: variable %q: unlimited dimension must be outermost", v.name))
				}
			}
		}
	}
	return errs
}

func productInts(xs []int) int64 {
	p := int64(1)
	for _, x := range xs {
		p *= int64(x)
	}
	return p
}

func pad4(n int64) int64 {
	if r := n % 4; r != 0 {
		return n + (4 - r)
	}
	return n
}

func (v *variable) isRecordVariable() bool {
	return v.isRecVar
}

func (v *variable) offsetOf(idx []int) int64 {
	if isFullExtent(idx, v.lengths) && !v.isRecVar {
		return v.begin + productInts(v.lengths)*v.dtype.size()
	}
	off := v.begin
	elemsz := v.dtype.size()
	if v.isRecVar {
		off += int64(idx[0]) * v.strides[1]
		off += innerOffset(idx[1:], v.lengths[1:], elemsz)
	} else {
		off += innerOffset(idx, v.lengths, elemsz)
	}
	return off
}

func isFullExtent(idx, lengths []int) bool {
	if len(idx) != len(lengths) {
		return false
	}
	for i := range idx {
		if idx[i] != lengths[i] {
			return false
		}
	}
	return true
}

func innerOffset(idx []int, lengths []int, elemsz int64) int64 {
	var off int64
	mul := elemsz
	for i := len(idx) - 1; i >= 0; i-- {
		off += int64(idx[i]) * mul
		mul *= int64(lengths[i])
	}
	return off
}

// ---- encoding ----

func (h *Header) WriteHeader(w io.Writer) error {
	return h.writeHeader(w)
}

func (h *Header) writeHeader(w io.Writer) error {
	if _, err := w.Write([]byte(_magic)); err != nil {
		return err
	}
	if _, err := w.Write([]byte{byte(h.version)}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, h.numrecs); err != nil {
		return err
	}

	if len(h.dims) == 0 {
		if err := writeListHeader(w, 0, 0); err != nil {
			return err
		}
	} else {
		if err := writeListHeader(w, _tagDimension, len(h.dims)); err != nil {
			return err
		}
		for _, d := range h.dims {
			if err := writeName(w, d.name); err != nil {
				return err
			}
			if err := binary.Write(w, binary.BigEndian, int32(d.length)); err != nil {
				return err
			}
		}
	}

	if err := writeAttrList(w, h.gatts); err != nil {
		return err
	}

	if len(h.vars) == 0 {
		return writeListHeader(w, 0, 0)
	}

	if err := writeListHeader(w, _tagVariable, len(h.vars)); err != nil {
		return err
	}
	for _, v := range h.vars {
		if err := writeName(w, v.name); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, int32(len(v.dim))); err != nil {
			return err
		}
		for _, d := range v.dim {
			if err := binary.Write(w, binary.BigEndian, int32(d)); err != nil {
				return err
			}
		}
		if err := writeAttrList(w, v.atts); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, int32(v.dtype)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, int32(v.vsize)); err != nil {
			return err
		}
		if h.version >= 2 {
			if err := binary.Write(w, binary.BigEndian, v.begin); err != nil {
				return err
			}
		} else {
			if err := binary.Write(w, binary.BigEndian, int32(v.begin)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeListHeader(w io.Writer, tag, count int) error {
	if err := binary.Write(w, binary.BigEndian, int32(tag)); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, int32(count))
}

func writeAttrList(w io.Writer, atts []attribute) error {
	if len(atts) == 0 {
		return writeListHeader(w, 0, 0)
	}
	if err := writeListHeader(w, _tagAttribute, len(atts)); err != nil {
		return err
	}
	for _, a := range atts {
		if err := writeName(w, a.name); err != nil {
			return err
		}
		if err := writeAttrValue(w, a); err != nil {
			return err
		}
	}
	return nil
}

func writeAttrValue(w io.Writer, a attribute) error {
	if err := binary.Write(w, binary.BigEndian, int32(a.typ)); err != nil {
		return err
	}
	switch val := a.value.(type) {
	case string:
		return writeName(w, val)
	case []byte:
		return writeName(w, string(val))
	case int8:
		return writeNumArray(w, []int8{val}, 1)
	case []int8:
		return writeNumArray(w, val, 1)
	case int16:
		return writeNumArray(w, []int16{val}, 2)
	case []int16:
		return writeNumArray(w, val, 2)
	case int:
		return writeNumArray(w, []int32{int32(val)}, 4)
	case int32:
		return writeNumArray(w, []int32{val}, 4)
	case []int32:
		return writeNumArray(w, val, 4)
	case float32:
		return writeNumArray(w, []float32{val}, 4)
	case []float32:
		return writeNumArray(w, val, 4)
	case float64:
		return writeNumArray(w, []float64{val}, 8)
	case []float64:
		return writeNumArray(w, val, 8)
	default:
		return fmt.Errorf("cdf: unsupported attribute value type %T", a.value)
	}
}

func writeNumArray(w io.Writer, data interface{}, elemsz int) error {
	n := sliceLen(data)
	if err := binary.Write(w, binary.BigEndian, int32(n)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, data); err != nil {
		return err
	}
	return writePad(w, n*elemsz)
}

func sliceLen(data interface{}) int {
	switch v := data.(type) {
	case []int8:
		return len(v)
	case []int16:
		return len(v)
	case []int32:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	}
	return 0
}

func writeName(w io.Writer, s string) error {
	if err := binary.Write(w, binary.BigEndian, int32(len(s))); err != nil {
		return err
	}
	if _, err := w.Write([]byte(s)); err != nil {
		return err
	}
	return writePad(w, len(s))
}

func writePad(w io.Writer, n int) error {
	if pad := (4 - n%4) % 4; pad != 0 {
		_, err := w.Write(make([]byte, pad))
		return err
	}
	return nil
}

// ---- decoding ----

func ReadHeader(r io.Reader) (*Header, error) {
	return readHeader(r)
}

func readHeader(r io.Reader) (*Header, error) {
	magic := make([]byte, 3)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, err
	}
	if string(magic) != _magic {
		return nil, errors.New("cdf: bad magic number")
	}
	var versionByte [1]byte
	if _, err := io.ReadFull(r, versionByte[:]); err != nil {
		return nil, err
	}

	h := &Header{version: int32(versionByte[0]), recordDim: -1}
	if err := binary.Read(r, binary.BigEndian, &h.numrecs); err != nil {
		return nil, err
	}

	dimTag, dimCount, err := readListHeader(r)
	if err != nil {
		return nil, err
	}
	if dimTag != 0 && dimTag != _tagDimension {
		return nil, errors.New("cdf: bad dim_list tag")
	}
	for i := 0; i < dimCount; i++ {
		name, err := readName(r)
		if err != nil {
			return nil, err
		}
		var length int32
		if err := binary.Read(r, binary.BigEndian, &length); err != nil {
			return nil, err
		}
		if length == 0 {
			h.recordDim = i
		}
		h.dims = append(h.dims, dimension{name: name, length: int64(length)})
	}

	gatts, err := readAttrList(r)
	if err != nil {
		return nil, err
	}
	h.gatts = gatts

	varTag, varCount, err := readListHeader(r)
	if err != nil {
		return nil, err
	}
	if varTag != 0 && varTag != _tagVariable {
		return nil, errors.New("cdf: bad var_list tag")
	}
	for i := 0; i < varCount; i++ {
		name, err := readName(r)
		if err != nil {
			return nil, err
		}
		var ndims int32
		if err := binary.Read(r, binary.BigEndian, &ndims); err != nil {
			return nil, err
		}
		dimids := make([]int, ndims)
		for j := range dimids {
			var d int32
			if err := binary.Read(r, binary.BigEndian, &d); err != nil {
				return nil, err
			}
			dimids[j] = int(d)
		}
		atts, err := readAttrList(r)
		if err != nil {
			return nil, err
		}
		var typ int32
		if err := binary.Read(r, binary.BigEndian, &typ); err != nil {
			return nil, err
		}
		var vsize int32
		if err := binary.Read(r, binary.BigEndian, &vsize); err != nil {
			return nil, err
		}
		var begin int64
		if h.version >= 2 {
			if err := binary.Read(r, binary.BigEndian, &begin); err != nil {
				return nil, err
			}
		} else {
			var b32 int32
			if err := binary.Read(r, binary.BigEndian, &b32); err != nil {
				return nil, err
			}
			begin = int64(b32)
		}
		h.vars = append(h.vars, variable{
			name:  name,
			dim:   dimids,
			atts:  atts,
			dtype: ncType(typ),
			vsize: int64(vsize),
			begin: begin,
		})
	}

	slab := int64(0)
	for i := range h.vars {
		if h.isRecordVar(&h.vars[i]) {
			slab += h.vars[i].vsize
		}
	}
	minBegin := int64(-1)
	for i := range h.vars {
		v := &h.vars[i]
		v.isRecVar = h.isRecordVar(v)
		v.lengths = h.varLengths(v)
		if v.isRecVar {
			v.strides = []int64{v.vsize, slab}
		} else {
			v.strides = []int64{v.vsize, v.vsize}
		}
		if minBegin < 0 || v.begin < minBegin {
			minBegin = v.begin
		}
	}
	if minBegin < 0 {
		minBegin = 0
	}

	h.defined = true
	h.dataStartVal = minBegin
	return h, nil
}

func readListHeader(r io.Reader) (tag int, count int, err error) {
	var t, c int32
	if err = binary.Read(r, binary.BigEndian, &t); err != nil {
		return
	}
	if err = binary.Read(r, binary.BigEndian, &c); err != nil {
		return
	}
	return int(t), int(c), nil
}

func readAttrList(r io.Reader) ([]attribute, error) {
	tag, count, err := readListHeader(r)
	if err != nil {
		return nil, err
	}
	if tag != 0 && tag != _tagAttribute {
		return nil, errors.New("cdf: bad attr_list tag")
	}
	atts := make([]attribute, 0, count)
	for i := 0; i < count; i++ {
		name, err := readName(r)
		if err != nil {
			return nil, err
		}
		typ, val, err := readAttrValue(r)
		if err != nil {
			return nil, err
		}
		atts = append(atts, attribute{name: name, typ: typ, value: val})
	}
	return atts, nil
}

func readAttrValue(r io.Reader) (ncType, interface{}, error) {
	var t int32
	if err := binary.Read(r, binary.BigEndian, &t); err != nil {
		return 0, nil, err
	}
	typ := ncType(t)
	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return 0, nil, err
	}
	switch typ {
	case _CHAR:
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, nil, err
		}
		if err := readPad(r, int(n)); err != nil {
			return 0, nil, err
		}
		return typ, string(buf), nil
	case _BYTE:
		v := make([]int8, n)
		if err := binary.Read(r, binary.BigEndian, v); err != nil {
			return 0, nil, err
		}
		if err := readPad(r, int(n)); err != nil {
			return 0, nil, err
		}
		return typ, v, nil
	case _SHORT:
		v := make([]int16, n)
		if err := binary.Read(r, binary.BigEndian, v); err != nil {
			return 0, nil, err
		}
		if err := readPad(r, int(n)*2); err != nil {
			return 0, nil, err
		}
		return typ, v, nil
	case _INT:
		v := make([]int32, n)
		if err := binary.Read(r, binary.BigEndian, v); err != nil {
			return 0, nil, err
		}
		if err := readPad(r, int(n)*4); err != nil {
			return 0, nil, err
		}
		return typ, v, nil
	case _FLOAT:
		v := make([]float32, n)
		if err := binary.Read(r, binary.BigEndian, v); err != nil {
			return 0, nil, err
		}
		if err := readPad(r, int(n)*4); err != nil {
			return 0, nil, err
		}
		return typ, v, nil
	case _DOUBLE:
		v := make([]float64, n)
		if err := binary.Read(r, binary.BigEndian, v); err != nil {
			return 0, nil, err
		}
		if err := readPad(r, int(n)*8); err != nil {
			return 0, nil, err
		}
		return typ, v, nil
	}
	return 0, nil, fmt.Errorf("cdf: unknown attribute type %d", typ)
}

func readName(r io.Reader) (string, error) {
	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	if err := readPad(r, int(n)); err != nil {
		return "", err
	}
	return string(buf), nil
}

func readPad(r io.Reader, n int) error {
	if pad := (4 - n%4) % 4; pad != 0 {
		_, err := io.ReadFull(r, make([]byte, pad))
		return err
	}
	return nil
}
