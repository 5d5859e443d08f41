package smartchip

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeZlib
	DataTypeBZip2
)

func (dt DataType) String() string {
	switch dt {
	case DataTypeNoCompression:
		return "uncompressed"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZ:
		return "compress (.Z)"
	case DataTypeZlib:
		return "zlib"
	case DataTypeBZip2:
		return "bzip2"
	}

	return "invalid"
}

// Byte code signatures from https://stackoverflow.com/a/19127748/199475,
// checked in order.
var byteCodeSigs = []struct {
	DataType
	sig []byte
}{
	{DataTypeGzip, []byte{0x1f, 0x8b, 0x08}},
	{DataTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{DataTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{DataTypeZ, []byte{0x1f, 0x9d}},
	{DataTypeBZip2, []byte{0x42, 0x5a, 0x68}},
	{DataTypeZlib, []byte{0x78, 0x01}},
	{DataTypeZlib, []byte{0x78, 0x9c}},
	{DataTypeZlib, []byte{0x78, 0xda}},
}

// DetectDataType matches the leading bytes of a stream against the known
// compression signatures. Anything else, including a stream too short to hold
// a signature, is treated as uncompressed.
func DetectDataType(head []byte) DataType {
	for _, v := range byteCodeSigs {
		if bytes.HasPrefix(head, v.sig) {
			return v.DataType
		}
	}

	return DataTypeNoCompression
}

// MaybeDecompress peeks at the start of r and, if it carries a known
// compression signature, wraps r in the matching decompressor. Closing the
// result does not close r.
func MaybeDecompress(r io.Reader) (io.ReadCloser, DataType, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return nil, DataTypeInvalid, err
	}

	dt := DetectDataType(head)

	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		return gz, dt, err
	case DataTypeZip:
		// Only the first file of an archive is read
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			return nil, dt, err
		}
		return io.NopCloser(zr), dt, nil
	case DataTypeBZip2:
		return io.NopCloser(bzip2.NewReader(br)), dt, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, dt, err
		}
		return io.NopCloser(reader), dt, nil
	case DataTypeZlib:
		zr, err := zlib.NewReader(br)
		return zr, dt, err
	case DataTypeZ:
		return nil, dt, fmt.Errorf("Files compressed with compress(1) are not supported; recompress with gzip")
	}

	// No data type detected. For now, we assume this is uncompressed.
	return io.NopCloser(br), dt, nil
}
