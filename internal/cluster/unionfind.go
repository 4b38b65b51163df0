package cluster

import "sort"

// forest is a union-find structure over a fixed universe of record
// identifiers. Roots carry their negated tree size; non-roots carry the index
// of their parent.
type forest struct {
	ids   []string
	index map[string]int
	ptr   []int
}

// newForest builds a forest over the sorted-unique identifiers appearing in
// the pair list, each starting as its own tree of size one.
func newForest(uniqueSorted []string) *forest {
	f := &forest{
		ids:   uniqueSorted,
		index: make(map[string]int, len(uniqueSorted)),
		ptr:   make([]int, len(uniqueSorted)),
	}
	for i, id := range uniqueSorted {
		f.index[id] = i
		f.ptr[i] = -1
	}
	return f
}

// find walks parent links to the root, compressing the path on the way back.
// Compression changes parent chains only, never which elements share a root
// or which element is the root.
func (f *forest) find(i int) int {
	root := i
	for f.ptr[root] >= 0 {
		root = f.ptr[root]
	}
	for f.ptr[i] >= 0 {
		next := f.ptr[i]
		f.ptr[i] = root
		i = next
	}
	return root
}

// union merges the trees containing a and b by size. The more negative size
// counter wins; on equal sizes the left-hand tree remains the root.
func (f *forest) union(a, b int) {
	leftRoot := f.find(a)
	rightRoot := f.find(b)
	if leftRoot == rightRoot {
		return
	}
	bigger, smaller := leftRoot, rightRoot
	if f.ptr[rightRoot] < f.ptr[leftRoot] {
		bigger, smaller = rightRoot, leftRoot
	}
	f.ptr[bigger] += f.ptr[smaller]
	f.ptr[smaller] = bigger
}

// sortedUnique returns the distinct values of ids in ascending order.
func sortedUnique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
