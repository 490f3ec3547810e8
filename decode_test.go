package mnist_go

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// imageFile builds a well-formed IDX image file with the standard 16-byte
// header declaring len(records) records, followed by the raw records.
func imageFile(records ...[]byte) []byte {
	raw := make([]byte, ImageHeaderBytes)
	binary.BigEndian.PutUint32(raw[0:], 2051)
	binary.BigEndian.PutUint32(raw[4:], uint32(len(records)))
	binary.BigEndian.PutUint32(raw[8:], ImageHeight)
	binary.BigEndian.PutUint32(raw[12:], ImageWidth)
	for _, record := range records {
		raw = append(raw, record...)
	}
	return raw
}

// labelFile builds a well-formed IDX label file with the standard 8-byte header.
func labelFile(labels ...byte) []byte {
	raw := make([]byte, LabelHeaderBytes)
	binary.BigEndian.PutUint32(raw[0:], 2049)
	binary.BigEndian.PutUint32(raw[4:], uint32(len(labels)))
	return append(raw, labels...)
}

func gradientRecord(offset byte) []byte {
	record := make([]byte, imageRecordBytes)
	for i := range record {
		record[i] = byte(i) + offset
	}
	return record
}

func TestDecodeImages(t *testing.T) {
	t.Run("TwoRecords", func(t *testing.T) {
		first := gradientRecord(0)
		second := gradientRecord(11)
		images, err := DecodeImages(imageFile(first, second), ImageHeaderBytes, imageRecordBytes)
		require.NoError(t, err)
		require.Len(t, images, 2)
		for i, record := range [][]byte{first, second} {
			require.Len(t, images[i], imageRecordBytes)
			for j, b := range record {
				require.Equal(t, float64(b)/255.0, images[i][j])
			}
		}
	})

	t.Run("NormalizationBoundaries", func(t *testing.T) {
		record := make([]byte, imageRecordBytes)
		record[0] = 0
		record[1] = 255
		record[2] = 51
		images, err := DecodeImages(imageFile(record), ImageHeaderBytes, imageRecordBytes)
		require.NoError(t, err)
		require.Equal(t, 0.0, images[0][0])
		require.Equal(t, 1.0, images[0][1])
		require.Equal(t, 0.2, images[0][2])
	})

	t.Run("HeaderOnly", func(t *testing.T) {
		images, err := DecodeImages(imageFile(), ImageHeaderBytes, imageRecordBytes)
		require.NoError(t, err)
		require.Len(t, images, 0)
	})

	t.Run("TrailingBytesRejected", func(t *testing.T) {
		raw := append(imageFile(gradientRecord(0)), 1, 2, 3)
		_, err := DecodeImages(raw, ImageHeaderBytes, imageRecordBytes)
		require.ErrorIs(t, err, ErrMalformedRecordStream)
	})

	t.Run("MalformedHeaderPropagates", func(t *testing.T) {
		_, err := DecodeImages([]byte{1, 2, 3}, ImageHeaderBytes, imageRecordBytes)
		require.ErrorIs(t, err, ErrMalformedHeader)
	})

	t.Run("NonPositiveRecordSize", func(t *testing.T) {
		_, err := DecodeImages(imageFile(), ImageHeaderBytes, 0)
		require.Error(t, err)
	})
}

func TestDecodeLabels(t *testing.T) {
	t.Run("RawBytesKeepOrder", func(t *testing.T) {
		labels, err := DecodeLabels(labelFile(3, 7, 0, 9), LabelHeaderBytes)
		require.NoError(t, err)
		require.Equal(t, []int{3, 7, 0, 9}, labels)
	})

	// Header [0,0,8,1][0,0,0,2] (magic 2049, declared count 2) + bytes [3,7].
	t.Run("HandAssembledFile", func(t *testing.T) {
		raw := []byte{0, 0, 8, 1, 0, 0, 0, 2, 3, 7}
		labels, err := DecodeLabels(raw, LabelHeaderBytes)
		require.NoError(t, err)
		require.Equal(t, []int{3, 7}, labels)
	})

	t.Run("HeaderOnly", func(t *testing.T) {
		labels, err := DecodeLabels(labelFile(), LabelHeaderBytes)
		require.NoError(t, err)
		require.Len(t, labels, 0)
	})

	t.Run("MalformedHeaderPropagates", func(t *testing.T) {
		_, err := DecodeLabels([]byte{1, 2}, LabelHeaderBytes)
		require.ErrorIs(t, err, ErrMalformedHeader)
	})
}
