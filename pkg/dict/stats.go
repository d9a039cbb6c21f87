package dict

import (
	"fmt"
	"strings"
)

// Stats renders a human-readable multi-line report of both tables'
// slot/used counts and chain-length histogram (dictGetStats), used by
// cmd/coredata-bench to print a post-run summary.
func (d *Dict) Stats() string {
	var b strings.Builder
	for ti := 0; ti < 2; ti++ {
		t := &d.ht[ti]
		if t.size() == 0 {
			continue
		}
		fmt.Fprintf(&b, "[Table %d]\n", ti)
		fmt.Fprintf(&b, "  slots: %d\n", t.size())
		fmt.Fprintf(&b, "  used: %d\n", t.used)

		maxChain := 0
		totalChain := 0
		nonEmpty := 0
		for _, bucket := range t.buckets {
			n := 0
			for e := bucket; e != nil; e = e.next {
				n++
			}
			if n > 0 {
				nonEmpty++
				totalChain += n
				if n > maxChain {
					maxChain = n
				}
			}
		}
		fmt.Fprintf(&b, "  non-empty buckets: %d\n", nonEmpty)
		fmt.Fprintf(&b, "  max chain length: %d\n", maxChain)
		if nonEmpty > 0 {
			fmt.Fprintf(&b, "  avg chain length (non-empty): %.2f\n", float64(totalChain)/float64(nonEmpty))
		}
	}
	if d.isRehashing() {
		fmt.Fprintf(&b, "rehashing: bucket %d of %d in table 0\n", d.rehashIdx, d.ht[0].size())
	}
	return b.String()
}
