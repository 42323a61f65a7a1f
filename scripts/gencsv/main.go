package main

// Generates CSV fixtures for exercising the transform API locally. A small
// share of cells is left empty so pipelines see missing values.

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
)

var names = [...]string{
	"alice", "bob", "carol", "dave", "erin", "frank", "grace", "heidi",
	"ivan", "judy", "mallory", "oscar", "peggy", "trent", "walter",
}

var cities = [...]string{
	"amsterdam", "berlin", "copenhagen", "dublin", "helsinki",
	"lisbon", "madrid", "oslo", "prague", "vienna",
}

func main() {
	out := flag.String("out", "fixture.csv", "output file")
	rows := flag.Int("rows", 1000, "number of data rows")
	seed := flag.Int64("seed", 1, "PRNG seed")
	sparse := flag.Float64("sparse", 0.05, "fraction of empty cells")
	flag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create:", err)
		os.Exit(1)
	}
	defer f.Close()

	rng := rand.New(rand.NewSource(*seed))
	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "city", "age", "score"}); err != nil {
		fmt.Fprintln(os.Stderr, "write:", err)
		os.Exit(1)
	}
	for i := 0; i < *rows; i++ {
		rec := []string{
			names[rng.Intn(len(names))],
			cities[rng.Intn(len(cities))],
			strconv.Itoa(18 + rng.Intn(60)),
			strconv.FormatFloat(rng.Float64()*100, 'f', 2, 64),
		}
		for c := range rec {
			if rng.Float64() < *sparse {
				rec[c] = ""
			}
		}
		if err := w.Write(rec); err != nil {
			fmt.Fprintln(os.Stderr, "write:", err)
			os.Exit(1)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintln(os.Stderr, "flush:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d rows to %s\n", *rows, *out)
}
