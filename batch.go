package mnist_go

import (
	"fmt"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Batch One whole split assembled into dense tensors
//
// Images is shaped [Size, ImageHeight, ImageWidth, 1], row-major, values in
// [0.0, 1.0]. Labels is the one-hot encoding shaped [Size, NumClasses] with a
// single 1.0 per row.
type Batch struct {
	Images *tensor.Dense
	Labels *tensor.Dense
	Size   int
}

// Batch Assemble the requested split into an image tensor and a one-hot label tensor
//
// Pure read of loaded state: every call runs one assembly pass over fresh
// backing buffers and unchanged state produces identical output. Calling
// before a successful Load returns ErrNotLoaded.
func (d *Dataset) Batch(s Split) (*Batch, error) {
	if !d.loaded {
		return nil, errors.Wrap(ErrNotLoaded, fmt.Sprintf("Can't assemble %s batch", s))
	}
	var data *splitData
	switch s {
	case Train:
		data = &d.train
	case Test:
		data = &d.test
	default:
		return nil, fmt.Errorf("unknown split %s", s)
	}
	return assembleBatch(data)
}

// TrainBatch Shorthand for Batch(Train)
func (d *Dataset) TrainBatch() (*Batch, error) {
	return d.Batch(Train)
}

// TestBatch Shorthand for Batch(Test)
func (d *Dataset) TestBatch() (*Batch, error) {
	return d.Batch(Test)
}

func assembleBatch(data *splitData) (*Batch, error) {
	n := len(data.images)
	pixels := make([]float64, n*imageRecordBytes)
	for i, image := range data.images {
		copy(pixels[i*imageRecordBytes:(i+1)*imageRecordBytes], image)
	}
	oneHot, err := oneHotEncode(data.labels, NumClasses)
	if err != nil {
		return nil, err
	}
	return &Batch{
		Images: tensor.New(tensor.WithShape(n, ImageHeight, ImageWidth, 1), tensor.WithBacking(pixels)),
		Labels: tensor.New(tensor.WithShape(n, NumClasses), tensor.WithBacking(oneHot)),
		Size:   n,
	}, nil
}

// oneHotEncode Expand class indices into a flat row-major one-hot float buffer
func oneHotEncode(labels []int, numClasses int) ([]float64, error) {
	encoded := make([]float64, len(labels)*numClasses)
	for i, label := range labels {
		if label < 0 || label >= numClasses {
			return nil, errors.Wrap(ErrLabelOutOfRange, fmt.Sprintf("label %d at record %d exceeds %d classes", label, i, numClasses))
		}
		encoded[i*numClasses+label] = 1.0
	}
	return encoded, nil
}
