package mnist_go

import (
	"fmt"

	"github.com/pkg/errors"
)

// DecodeImages Decode every image record of one IDX file into normalized pixel arrays
//
// raw - Whole file content, header included
// headerBytes - Header length to skip (ImageHeaderBytes for standard image files)
// recordBytes - Pixel count per record (ImageHeight*ImageWidth for standard image files)
//
// Starting right after the header the stream is consumed recordBytes at a time,
// each byte normalized to [0.0, 1.0] by dividing by 255. Records keep file order,
// which is the implicit index used to align images with labels. Trailing bytes
// that do not form a whole record yield ErrMalformedRecordStream.
func DecodeImages(raw []byte, headerBytes, recordBytes int) ([][]float64, error) {
	if _, err := ParseHeader(raw, headerBytes); err != nil {
		return nil, err
	}
	if recordBytes <= 0 {
		return nil, fmt.Errorf("record byte size must be positive, but got %d", recordBytes)
	}
	body := raw[headerBytes:]
	if rem := len(body) % recordBytes; rem != 0 {
		return nil, errors.Wrap(ErrMalformedRecordStream, fmt.Sprintf("%d trailing bytes do not form a whole %d-byte record", rem, recordBytes))
	}
	images := make([][]float64, len(body)/recordBytes)
	for i := range images {
		record := body[i*recordBytes : (i+1)*recordBytes]
		pixels := make([]float64, recordBytes)
		for j, b := range record {
			pixels[j] = float64(b) / 255.0
		}
		images[i] = pixels
	}
	return images, nil
}

// DecodeLabels Decode every label record of one IDX file into bare class indices
//
// Same iteration as DecodeImages with a record size of one byte and no
// normalization. Range checking against NumClasses is the assembler's job.
func DecodeLabels(raw []byte, headerBytes int) ([]int, error) {
	if _, err := ParseHeader(raw, headerBytes); err != nil {
		return nil, err
	}
	body := raw[headerBytes:]
	labels := make([]int, len(body))
	for i, b := range body {
		labels[i] = int(b)
	}
	return labels, nil
}
