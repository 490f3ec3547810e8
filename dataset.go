package mnist_go

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Split Named partition of the dataset
type Split int

const (
	Train = Split(iota)
	Test
)

func (s Split) String() string {
	switch s {
	case Train:
		return "train"
	case Test:
		return "test"
	default:
		return fmt.Sprintf("split(%d)", int(s))
	}
}

// Sources Locators of the four files making up one dataset
//
// A locator ending in ".gz" is fetched with decompression requested.
type Sources struct {
	TrainImages string
	TrainLabels string
	TestImages  string
	TestLabels  string
}

// DefaultSources Conventional distribution file names of the MNIST dataset
var DefaultSources = Sources{
	TrainImages: "https://storage.googleapis.com/cvdf-datasets/mnist/train-images-idx3-ubyte.gz",
	TrainLabels: "https://storage.googleapis.com/cvdf-datasets/mnist/train-labels-idx1-ubyte.gz",
	TestImages:  "https://storage.googleapis.com/cvdf-datasets/mnist/t10k-images-idx3-ubyte.gz",
	TestLabels:  "https://storage.googleapis.com/cvdf-datasets/mnist/t10k-labels-idx1-ubyte.gz",
}

type splitData struct {
	images [][]float64
	labels []int
}

// Dataset Two-split image/label collection decoded from IDX files
//
// Constructed empty, populated by Load, read-only afterwards. A repeated Load
// replaces all state atomically: the previous content survives any failed
// attempt untouched. Batch assembly is a pure read and is safe for concurrent
// readers once Load has returned; Load itself must not run concurrently with
// readers or with another Load.
type Dataset struct {
	fetcher Fetcher
	loaded  bool
	train   splitData
	test    splitData
}

// NewDataset Return empty dataset fetching its files through the provided collaborator
func NewDataset(fetcher Fetcher) *Dataset {
	return &Dataset{fetcher: fetcher}
}

// Loaded Report whether a Load has succeeded
func (d *Dataset) Loaded() bool {
	return d.loaded
}

// TrainSize Number of records in the train split (zero before Load)
func (d *Dataset) TrainSize() int {
	return len(d.train.images)
}

// TestSize Number of records in the test split (zero before Load)
func (d *Dataset) TestSize() int {
	return len(d.test.images)
}

// Load Fetch and decode all four source files, committing only on full success
//
// The four fetch+decode operations run concurrently and are joined before any
// validation. If any of them fails (including context cancellation) nothing is
// committed and the dataset keeps its previous state. After the join each split
// must pair equally many images and labels and every label must be a valid
// class index, otherwise the source is treated as malformed.
func (d *Dataset) Load(ctx context.Context, sources Sources) error {
	var (
		wg         sync.WaitGroup
		train      splitData
		test       splitData
		loadErrors [4]error
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		train.images, loadErrors[0] = d.loadImages(ctx, sources.TrainImages)
	}()
	go func() {
		defer wg.Done()
		train.labels, loadErrors[1] = d.loadLabels(ctx, sources.TrainLabels)
	}()
	go func() {
		defer wg.Done()
		test.images, loadErrors[2] = d.loadImages(ctx, sources.TestImages)
	}()
	go func() {
		defer wg.Done()
		test.labels, loadErrors[3] = d.loadLabels(ctx, sources.TestLabels)
	}()
	wg.Wait()
	for _, err := range loadErrors {
		if err != nil {
			return errors.Wrap(err, "Can't load dataset")
		}
	}
	if len(train.images) != len(train.labels) {
		return errors.Wrap(ErrRecordCountMismatch, fmt.Sprintf("train split has %d images but %d labels", len(train.images), len(train.labels)))
	}
	if len(test.images) != len(test.labels) {
		return errors.Wrap(ErrRecordCountMismatch, fmt.Sprintf("test split has %d images but %d labels", len(test.images), len(test.labels)))
	}
	if err := checkLabels(train.labels); err != nil {
		return errors.Wrap(err, "Can't commit train split")
	}
	if err := checkLabels(test.labels); err != nil {
		return errors.Wrap(err, "Can't commit test split")
	}
	d.train = train
	d.test = test
	d.loaded = true
	return nil
}

func (d *Dataset) loadImages(ctx context.Context, locator string) ([][]float64, error) {
	raw, err := d.fetcher.Fetch(ctx, locator, isCompressed(locator))
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Can't fetch images from '%s'", locator))
	}
	return DecodeImages(raw, ImageHeaderBytes, imageRecordBytes)
}

func (d *Dataset) loadLabels(ctx context.Context, locator string) ([]int, error) {
	raw, err := d.fetcher.Fetch(ctx, locator, isCompressed(locator))
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Can't fetch labels from '%s'", locator))
	}
	return DecodeLabels(raw, LabelHeaderBytes)
}

func checkLabels(labels []int) error {
	for i, label := range labels {
		if label < 0 || label >= NumClasses {
			return errors.Wrap(ErrLabelOutOfRange, fmt.Sprintf("label %d at record %d exceeds %d classes", label, i, NumClasses))
		}
	}
	return nil
}

func isCompressed(locator string) bool {
	return strings.HasSuffix(locator, ".gz")
}
