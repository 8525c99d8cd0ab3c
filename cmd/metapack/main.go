package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/milk9111/hdparallax/meta"
)

var (
	srcPath  string
	outPath  string
	keepBad  bool
	showKeys bool
)

func parseFlags() {
	flag.StringVar(&srcPath, "src", "./assets",
		"Directory mirroring the atlas layout that holds .meta.yaml files.")
	flag.StringVar(&outPath, "out", "./meta.res",
		"Resource file to store the metadata documents in.")
	flag.BoolVar(&keepBad, "keep-invalid", false,
		"Pack documents that fail validation instead of aborting.")
	flag.BoolVar(&showKeys, "list", false,
		"List the keys in -out after packing.")

	flag.Parse()
}

func main() {
	parseFlags()

	p, err := meta.OpenPack(outPath, false)
	handleError(err)
	defer p.Close()

	n, size, err := packDir(srcPath, p, keepBad)
	handleError(err)
	log.Printf("[metapack] packed %d documents (%s) into %s", n, humanize.Bytes(uint64(size)), outPath)

	if showKeys {
		keys, err := p.Keys()
		handleError(err)
		for _, k := range keys {
			fmt.Println(k)
		}
	}
}

// packDir stores every metadata document below src in p. It returns the
// number of documents and their total size.
func packDir(src string, p *meta.Pack, keepInvalid bool) (int, int, error) {
	var n, size int
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		key, ok := meta.KeyFromFile(src, path)
		if !ok {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := validate(data); err != nil {
			if !keepInvalid {
				return fmt.Errorf("%s: %w", path, err)
			}
			log.Printf("[metapack] packing invalid %s: %v", key, err)
		}
		if err := p.Put(key, data); err != nil {
			return fmt.Errorf("put %s: %w", key, err)
		}
		n++
		size += len(data)
		return nil
	})
	return n, size, err
}

func validate(data []byte) error {
	md, err := meta.Parse(data)
	if err != nil {
		return err
	}
	return md.Validate(0)
}

func handleError(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
