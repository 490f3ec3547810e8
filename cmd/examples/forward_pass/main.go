package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"path/filepath"

	mnist "github.com/LdDl/mnist-go"
	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

var (
	dataDir = flag.String("dir", "", "directory with the four IDX files (downloaded when empty)")
)

func main() {
	flag.Parse()

	// Initialize seed with constant value to reproduce results
	rand.Seed(1337)

	var (
		fetcher mnist.Fetcher
		sources mnist.Sources
	)
	if *dataDir != "" {
		fetcher = mnist.FileFetcher{}
		sources = mnist.Sources{
			TrainImages: filepath.Join(*dataDir, "train-images-idx3-ubyte.gz"),
			TrainLabels: filepath.Join(*dataDir, "train-labels-idx1-ubyte.gz"),
			TestImages:  filepath.Join(*dataDir, "t10k-images-idx3-ubyte.gz"),
			TestLabels:  filepath.Join(*dataDir, "t10k-labels-idx1-ubyte.gz"),
		}
	} else {
		fetcher = &mnist.HTTPFetcher{}
		sources = mnist.DefaultSources
	}

	dataset := mnist.NewDataset(fetcher)
	err := dataset.Load(context.Background(), sources)
	if err != nil {
		panic(err)
	}
	testBatch, err := dataset.TestBatch()
	if err != nil {
		panic(err)
	}

	/* Flatten [n, 28, 28, 1] batch into [n, 784] matrix for a dense layer */
	flatSize := mnist.ImageHeight * mnist.ImageWidth
	err = testBatch.Images.Reshape(testBatch.Size, flatSize)
	if err != nil {
		panic(err)
	}

	/* Define graph for a single untrained dense layer */
	g := gorgonia.NewGraph()
	input := gorgonia.NewMatrix(g, gorgonia.Float64, gorgonia.WithShape(testBatch.Size, flatSize), gorgonia.WithName("batch_input"))
	weights := gorgonia.NewMatrix(g, gorgonia.Float64, gorgonia.WithShape(flatSize, mnist.NumClasses), gorgonia.WithName("dense_weights"), gorgonia.WithInit(gorgonia.GlorotN(1.0)))
	scores := gorgonia.Must(gorgonia.Mul(input, weights))
	probabilities := gorgonia.Must(gorgonia.SoftMax(scores))

	var out gorgonia.Value
	gorgonia.Read(probabilities, &out)

	vm := gorgonia.NewTapeMachine(g)
	defer vm.Close()

	err = gorgonia.Let(input, testBatch.Images)
	if err != nil {
		panic(err)
	}
	err = vm.RunAll()
	if err != nil {
		panic(err)
	}
	vm.Reset()

	outTensor := out.(*tensor.Dense)
	fmt.Printf("Forward pass over %d test images, output shape %v\n", testBatch.Size, outTensor.Shape())

	/* Report the (untrained) arg-max of the first row against its one-hot label */
	probs := outTensor.Data().([]float64)
	predicted := 0
	for j := 1; j < mnist.NumClasses; j++ {
		if probs[j] > probs[predicted] {
			predicted = j
		}
	}
	oneHot := testBatch.Labels.Data().([]float64)
	label := 0
	for j := 0; j < mnist.NumClasses; j++ {
		if oneHot[j] == 1.0 {
			label = j
			break
		}
	}
	fmt.Printf("First test image: predicted %d, labeled %d\n", predicted, label)
}
