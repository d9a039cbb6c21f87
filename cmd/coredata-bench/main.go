// Command coredata-bench exercises the dictionary and quicklist cores
// end to end and prints a short report, in the spirit of
// cmd/validate-limits: a small, single-file driver over a library
// package rather than a standalone service.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/coredata-kv/coredata/pkg/dict"
	"github.com/coredata-kv/coredata/pkg/quicklist"
	"github.com/coredata-kv/coredata/pkg/sipkey"
)

func main() {
	keys := flag.Int("keys", 2000, "number of dictionary keys to insert")
	elements := flag.Int("elements", 2000, "number of quicklist elements to push")
	fill := flag.Int("fill", -2, "quicklist fill policy")
	compress := flag.Int("compress", 1, "quicklist compression depth")
	flag.Parse()

	runID := uuid.NewString()
	fmt.Printf("coredata-bench run=%s\n", runID)

	runDict(*keys)
	runQuicklist(*elements, *fill, *compress)
}

func runDict(n int) {
	typ := &dict.Type{
		HashFunction: func(key any) uint64 {
			return sipkey.GenHashFunction([]byte(key.(string)))
		},
		KeyCompare: func(_ *dict.Dict, a, b any) bool {
			return a.(string) == b.(string)
		},
	}
	d := dict.Create(typ)

	for i := 0; i < n; i++ {
		key := fmt.Sprintf("key-%d", i)
		if err := d.Add(key, dict.Int64Value(int64(i))); err != nil {
			fmt.Fprintf(os.Stderr, "dict add failed for %s: %v\n", key, err)
			os.Exit(1)
		}
	}

	fmt.Printf("\n-- dict (%d keys) --\n", n)
	fmt.Println(d.Stats())
}

func runQuicklist(n, fill, compress int) {
	ql := quicklist.New(fill, compress)

	for i := 0; i < n; i++ {
		ql.PushTail([]byte(fmt.Sprintf("element-%08d-payload", i)))
	}

	fmt.Printf("\n-- quicklist (%d elements, fill=%d, compress=%d) --\n", n, fill, compress)
	fmt.Print(ql.Repr(false))

	snapshot := ql.Dup()
	ql.DelRange(0, int64(n/2))
	fmt.Printf("after deleting the first half: count=%d (snapshot retained count=%d)\n", ql.Count(), snapshot.Count())
}
