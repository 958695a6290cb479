package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"pkg.jsn.cam/geotally/cmd/testdata/generator"
)

/*generates a synthetic tweet stream and the matching reference table*/

var (
	Name        = flag.String("generator", "tweets", "Generator to use")
	AuthorCount = flag.Int("author_count", 0, "Number of unique authors (0 keeps the generator default)")
	TotalCount  = flag.Int64("total_count", 0, "Number of records to generate (0 uses the generator default)")
	Seed        = flag.Uint64("seed", 1, "Random seed")
	OutputPath  = flag.String("output", "var/tweets.json", "Output stream path")
	CatalogPath = flag.String("catalog_output", "var/sal.json", "Output reference table path (empty to skip)")
	ListOnly    = flag.Bool("list", false, "List generators and exit")
)

func main() {
	flag.Parse()

	if *ListOnly {
		for _, name := range generator.List() {
			g, _ := generator.Get(name)
			fmt.Printf("%-10s %s\n", name, g.Description())
		}
		return
	}

	if *AuthorCount > 0 {
		generator.SetAuthorCount(*Name, *AuthorCount)
	}

	g, err := generator.Get(*Name)
	if err != nil {
		log.Fatal(err)
	}
	g.Init(rand.New(rand.NewPCG(*Seed, *Seed^0x9e3779b97f4a7c15)))

	count := *TotalCount
	if count <= 0 {
		count = g.DefaultCount()
	}

	if err := writeFile(*OutputPath, func(f *os.File) error {
		return generator.WriteStream(f, g, count)
	}); err != nil {
		log.Fatalf("write stream: %v", err)
	}

	if *CatalogPath != "" {
		if err := writeFile(*CatalogPath, func(f *os.File) error {
			return generator.WriteCatalog(f)
		}); err != nil {
			log.Fatalf("write catalog: %v", err)
		}
	}

	info, err := os.Stat(*OutputPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[TESTDATA] Wrote %d records (%s) to %s", count, humanize.Bytes(uint64(info.Size())), *OutputPath)
}

func writeFile(path string, fn func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
