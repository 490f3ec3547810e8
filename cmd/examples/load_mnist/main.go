package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	mnist "github.com/LdDl/mnist-go"
)

var (
	dataDir  = flag.String("dir", "", "directory with the four IDX files (downloaded when empty)")
	cacheDir = flag.String("cache", defaultCacheDir(), "download cache directory")
)

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mnist-go"
	}
	return filepath.Join(home, ".mnist-go")
}

func main() {
	flag.Parse()

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
		fetcher = &mnist.HTTPFetcher{CacheDir: *cacheDir}
		sources = mnist.DefaultSources
	}

	dataset := mnist.NewDataset(fetcher)
	err := dataset.Load(context.Background(), sources)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Loaded %d train and %d test records\n", dataset.TrainSize(), dataset.TestSize())

	trainBatch, err := dataset.TrainBatch()
	if err != nil {
		panic(err)
	}
	testBatch, err := dataset.TestBatch()
	if err != nil {
		panic(err)
	}
	fmt.Printf("Train images: %v, train labels: %v\n", trainBatch.Images.Shape(), trainBatch.Labels.Shape())
	fmt.Printf("Test images: %v, test labels: %v\n", testBatch.Images.Shape(), testBatch.Labels.Shape())

	/* Render first training digit as ASCII */
	pixels := trainBatch.Images.Data().([]float64)
	oneHot := trainBatch.Labels.Data().([]float64)
	label := 0
	for j := 0; j < mnist.NumClasses; j++ {
		if oneHot[j] == 1.0 {
			label = j
			break
		}
	}
	fmt.Printf("First training digit (label %d):\n", label)
	for y := 0; y < mnist.ImageHeight; y++ {
		for x := 0; x < mnist.ImageWidth; x++ {
			if pixels[y*mnist.ImageWidth+x] > 0.5 {
				fmt.Print("#")
			} else {
				fmt.Print(".")
			}
		}
		fmt.Println()
	}
}
