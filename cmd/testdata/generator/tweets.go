package generator

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
)

// TweetGenerator writes records laid out like the pretty-printed tweet
// dumps the scanner reads: an author_id line inside "data" followed later
// by a full_name line inside "includes.places".
type TweetGenerator struct {
	rand *rand.Rand
	// Authors is the number of distinct author ids.
	Authors int
	// Orphans is the fraction of records that carry no place at all.
	Orphans float64
	// Padding adds that many filler lines to every record so records are
	// long relative to small partitions.
	Padding int
}

func (g *TweetGenerator) Init(r *rand.Rand) {
	g.rand = r
}

func (g *TweetGenerator) authorID() string {
	n := max(g.Authors, 1)
	return strconv.FormatUint(100000000000000000+uint64(g.rand.IntN(n))*7919, 10)
}

func (g *TweetGenerator) WriteRecord(w io.Writer, seq int64) error {
	author := g.authorID()
	place := Places[g.rand.IntN(len(Places))]
	orphan := g.Orphans > 0 && g.rand.Float64() < g.Orphans

	_, err := fmt.Fprintf(w, "{\n  \"_id\": \"%d\",\n  \"data\": {\n    \"author_id\": \"%s\",\n"+
		"    \"created_at\": \"2022-02-%02dT%02d:%02d:00.000Z\",\n"+
		"    \"geo\": {\n      \"place_id\": \"%016x\"\n    },\n",
		seq, author, 1+g.rand.IntN(28), g.rand.IntN(24), g.rand.IntN(60), g.rand.Uint64())
	if err != nil {
		return err
	}

	for i := range g.Padding {
		if _, err := fmt.Fprintf(w, "    \"note_%d\": \"%s\",\n", i, "lorem ipsum dolor sit amet"); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "    \"lang\": \"en\"\n  },\n  \"includes\": {\n    \"places\": [\n"); err != nil {
		return err
	}

	if !orphan {
		_, err = fmt.Fprintf(w, "      {\n        \"full_name\": \"%s\",\n"+
			"        \"geo\": {\n          \"type\": \"Feature\"\n        }\n      }\n", place)
		if err != nil {
			return err
		}
	}

	_, err = io.WriteString(w, "    ]\n  }\n}")
	return err
}

func (g *TweetGenerator) Description() string {
	return "Pretty-printed tweets with author_id and places.full_name lines"
}

func (g *TweetGenerator) DefaultCount() int64 {
	return 1e4
}

// WriteStream writes count records from g as one JSON array.
func WriteStream(w io.Writer, g Generator, count int64) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString("[\n"); err != nil {
		return err
	}
	for seq := range count {
		if seq > 0 {
			if _, err := bw.WriteString(",\n"); err != nil {
				return err
			}
		}
		if err := g.WriteRecord(bw, seq); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\n]\n"); err != nil {
		return err
	}

	return bw.Flush()
}
