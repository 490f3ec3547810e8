package mnist_go

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

// Layout of the classic IDX record-file distribution: a fixed-length header
// of big-endian uint32 values followed by fixed-size records.
const (
	// ImageHeaderBytes Header length of an image file (magic, count, rows, columns)
	ImageHeaderBytes = 16
	// LabelHeaderBytes Header length of a label file (magic, count)
	LabelHeaderBytes = 8

	// ImageHeight Number of pixel rows in one image record
	ImageHeight = 28
	// ImageWidth Number of pixel columns in one image record
	ImageWidth = 28
	// NumClasses Label cardinality of the dataset
	NumClasses = 10
)

const imageRecordBytes = ImageHeight * ImageWidth

// ParseHeader Read headerBytes/4 big-endian uint32 values from the start of raw
//
// headerBytes must be a positive multiple of 4 and must not exceed len(raw),
// otherwise ErrMalformedHeader is returned. The header content is exposed as-is
// for diagnostics and is not interpreted here: record counts downstream are
// derived from the actual byte length, not from the declared value at index 1.
func ParseHeader(raw []byte, headerBytes int) ([]uint32, error) {
	if headerBytes <= 0 || headerBytes%4 != 0 {
		return nil, errors.Wrap(ErrMalformedHeader, fmt.Sprintf("header byte count %d is not a positive multiple of 4", headerBytes))
	}
	if headerBytes > len(raw) {
		return nil, errors.Wrap(ErrMalformedHeader, fmt.Sprintf("header needs %d bytes but file has only %d", headerBytes, len(raw)))
	}
	header := make([]uint32, headerBytes/4)
	for i := range header {
		header[i] = binary.BigEndian.Uint32(raw[i*4 : i*4+4])
	}
	return header, nil
}
