package jobscript

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func groupSizes[T any](groups [][]T) []int {
	sizes := make([]int, 0, len(groups))
	for _, g := range groups {
		sizes = append(sizes, len(g))
	}
	return sizes
}

func TestPartitionSizes(t *testing.T) {
	testCases := []struct {
		name string
		n, k int
		want []int
	}{
		{name: "seven into three", n: 7, k: 3, want: []int{3, 2, 2}},
		{name: "even split", n: 6, k: 3, want: []int{2, 2, 2}},
		{name: "single group", n: 5, k: 1, want: []int{5}},
		{name: "one per group", n: 4, k: 4, want: []int{1, 1, 1, 1}},
		{name: "more groups than items", n: 2, k: 3, want: []int{1, 1, 0}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			items := make([]int, tc.n)
			got := groupSizes(Partition(items, tc.k))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("sizes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPartitionBalance(t *testing.T) {
	for n := 1; n <= 40; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}

		for k := 1; k <= 12; k++ {
			groups := Partition(items, min(k, n))
			if len(groups) != min(k, n) {
				t.Fatalf("n=%d k=%d: got %d groups", n, k, len(groups))
			}

			var joined []int
			lo, hi := n, 0
			for i, g := range groups {
				lo, hi = min(lo, len(g)), max(hi, len(g))
				if i > 0 && len(g) > len(groups[i-1]) {
					t.Fatalf("n=%d k=%d: group %d larger than its predecessor", n, k, i)
				}
				joined = append(joined, g...)
			}
			if hi-lo > 1 {
				t.Fatalf("n=%d k=%d: sizes range from %d to %d", n, k, lo, hi)
			}
			if diff := cmp.Diff(items, joined); diff != "" {
				t.Fatalf("n=%d k=%d: concatenation mismatch (-want +got):\n%s", n, k, diff)
			}
		}
	}
}

func TestPartitionGroupsDoNotAlias(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	groups := Partition(items, 2)

	groups[0] = append(groups[0], "x")
	if items[2] != "c" {
		t.Fatalf("appending to a group overwrote the next group: %q", items)
	}
}
