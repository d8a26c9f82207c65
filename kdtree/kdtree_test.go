package kdtree

import (
	"errors"
	"math/rand"
	"testing"
)

var uniqueVals = []Point{
	{1, 2},
	{3, 4},
	{5, 6},
	{7, 8},
	{9, 10},
}

func TestInsert(t *testing.T) {
	// 1. Check root inserts into empty k-d tree
	tree := New[int](2)
	rootVal := Point{0, 0}
	if err := tree.Insert(rootVal, -1); err != nil {
		t.Fatalf("Unexpected insert failure for root: %v", err)
	}
	if tree.Size() != 1 {
		t.Fatalf("Expected size 1. Got: %d", tree.Size())
	}

	// 2. Check that duplicate inserts fail and leave the size alone
	if err := tree.Insert(rootVal, -2); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey. Got: %v", err)
	}
	if tree.Size() != 1 {
		t.Fatalf("Expected duplicate insert to leave size 1. Got: %d", tree.Size())
	}

	// 3. Check that a bunch of unique values insert successfully
	for i, v := range uniqueVals {
		if err := tree.Insert(v, i); err != nil {
			t.Fatalf("Unexpected insert failure for uniqueVals[%d]: %v", i, err)
		}
	}

	// 4. Try a couple of times to reinsert the same values
	for i := 0; i < 3; i++ {
		if err := tree.Insert(uniqueVals[i], 100); !errors.Is(err, ErrDuplicateKey) {
			t.Fatalf("Expected insert of uniqueVals[%d] to fail", i)
		}
	}
	if tree.Size() != len(uniqueVals)+1 {
		t.Fatalf("Expected size %d. Got: %d", len(uniqueVals)+1, tree.Size())
	}

	// 5. Try re-inserting the root one more time. Equivalent value, new memory
	if err := tree.Insert(NewPoint(0, 0), 0); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("Expected root value to already exist")
	}
}

func TestInsertDoesNotAlias(t *testing.T) {
	tree := New[string](2)
	p := Point{4, 4}
	if err := tree.Insert(p, "a"); err != nil {
		t.Fatal(err)
	}
	p[0] = 9
	if ok, _ := tree.Contains(Point{4, 4}); !ok {
		t.Fatalf("Expected tree to keep its own copy of the point")
	}
}

func TestDimensionMismatch(t *testing.T) {
	tree := New[int](3)
	var dm *DimensionMismatchError
	err := tree.Insert(Point{1, 2}, 0)
	if !errors.As(err, &dm) || dm.Expected != 3 || dm.Actual != 2 {
		t.Fatalf("Expected dimension mismatch 3/2. Got: %v", err)
	}
	if tree.Size() != 0 {
		t.Fatalf("Expected failed insert to leave tree empty")
	}
	if err := tree.Insert(Point{1, 2, 3}, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.Nearest(Point{1, 2, 3, 4}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("Expected Nearest to fail with ErrDimensionMismatch. Got: %v", err)
	}
	if err := tree.Delete(Point{1}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("Expected Delete to fail with ErrDimensionMismatch. Got: %v", err)
	}
	if _, err := tree.Contains(Point{}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("Expected Contains to fail with ErrDimensionMismatch. Got: %v", err)
	}
	if tree.Size() != 1 {
		t.Fatalf("Expected size 1. Got: %d", tree.Size())
	}
}

func TestNewInvalidDimension(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Expected New(0) to panic")
		}
	}()
	New[int](0)
}

func TestContains(t *testing.T) {
	tree := New[int](2)

	// 1. Check that searching an empty k-d tree yields no result
	for i := range uniqueVals {
		if ok, err := tree.Contains(uniqueVals[i]); ok || err != nil {
			t.Fatalf("Expected searching empty tree to yield nothing")
		}
	}

	// 2. Insert all uniqueVals
	for i, v := range uniqueVals {
		if err := tree.Insert(v, i); err != nil {
			t.Fatal(err)
		}
	}

	// 3. Search for all uniqueVals
	for i := range uniqueVals {
		if ok, _ := tree.Contains(uniqueVals[i]); !ok {
			t.Fatalf("Expected search to find uniqueVals[%d]", i)
		}
	}
	if ok, _ := tree.Contains(Point{2, 1}); ok {
		t.Fatalf("Unexpected match for (2, 1)")
	}
}

// cube returns a tree over the corners of {0,1}^3 valued by coordinate sum
func cube(t *testing.T) *Tree[int] {
	tree := New[int](3)
	for x := 0; x <= 1; x++ {
		for y := 0; y <= 1; y++ {
			for z := 0; z <= 1; z++ {
				if err := tree.Insert(Point{x, y, z}, x+y+z); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
	return tree
}

func TestCubeCorners(t *testing.T) {
	tree := cube(t)
	origin := Point{0, 0, 0}
	if v, err := tree.Nearest(origin); err != nil || v != 0 {
		t.Fatalf("Expected 0. Got: %d, %v", v, err)
	}
	if err := tree.Delete(origin); err != nil {
		t.Fatal(err)
	}
	if v, _ := tree.Nearest(origin); v != 1 {
		t.Fatalf("Expected 1 after deleting the origin. Got: %d", v)
	}
	for _, p := range []Point{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
		if err := tree.Delete(p); err != nil {
			t.Fatalf("Delete %v: %v", p, err)
		}
	}
	if v, _ := tree.Nearest(origin); v != 2 {
		t.Fatalf("Expected 2 after deleting unit neighbors. Got: %d", v)
	}
	if tree.Size() != 4 {
		t.Fatalf("Expected size 4. Got: %d", tree.Size())
	}
}

func TestSinglePoint(t *testing.T) {
	tree := New[string](2)
	if err := tree.Insert(Point{5, -5}, "only"); err != nil {
		t.Fatal(err)
	}
	for _, q := range []Point{{5, -5}, {1000000, 1000000}, {-1000000, 3}, {0, 0}} {
		if v, err := tree.Nearest(q); err != nil || v != "only" {
			t.Fatalf("Nearest %v: %q, %v", q, v, err)
		}
	}
	if err := tree.Delete(Point{5, -5}); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.Nearest(Point{5, -5}); !errors.Is(err, ErrEmptyTree) {
		t.Fatalf("Expected ErrEmptyTree. Got: %v", err)
	}
	if tree.Depth() != 0 {
		t.Fatalf("Expected empty tree to have depth 0")
	}
}

func TestDeleteMissing(t *testing.T) {
	tree := New[int](2)
	if err := tree.Delete(Point{0, 0}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on empty tree. Got: %v", err)
	}
	for i, v := range uniqueVals {
		if err := tree.Insert(v, i); err != nil {
			t.Fatal(err)
		}
	}
	// Same discriminating coordinate as the root but a different point
	if err := tree.Delete(Point{1, 3}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound. Got: %v", err)
	}
	if tree.Size() != len(uniqueVals) {
		t.Fatalf("Expected failed delete to leave size %d. Got: %d", len(uniqueVals), tree.Size())
	}
}

// checkInvariant walks the tree verifying the lo <= node <= hi ordering on
// every discriminator
func checkInvariant[V any](t *testing.T, tree *Tree[V]) {
	t.Helper()
	var walk func(n *node[V], d int) int
	walk = func(n *node[V], d int) int {
		if n == nil {
			return 0
		}
		n.lo.walk(func(p Point, _ V) bool {
			if p[d] > n.point[d] {
				t.Fatalf("lo point %v above %v on axis %d", p, n.point, d)
			}
			return true
		})
		n.hi.walk(func(p Point, _ V) bool {
			if p[d] < n.point[d] {
				t.Fatalf("hi point %v below %v on axis %d", p, n.point, d)
			}
			return true
		})
		nd := (d + 1) % tree.k
		return 1 + walk(n.lo, nd) + walk(n.hi, nd)
	}
	if count := walk(tree.root, 0); count != tree.Size() {
		t.Fatalf("Expected %d nodes. Counted: %d", tree.Size(), count)
	}
}

func TestDeleteKeepsInvariant(t *testing.T) {
	// Small coordinate range so ties on the discriminator are common
	const N = 400
	r := rand.New(rand.NewSource(1))
	tree := New[int](3)
	var points []Point
	for len(points) < N {
		p := Point{r.Intn(8), r.Intn(8), r.Intn(8)}
		if tree.Insert(p, len(points)) == nil {
			points = append(points, p)
		}
	}
	checkInvariant(t, tree)
	r.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})
	for i, p := range points {
		if err := tree.Delete(p); err != nil {
			t.Fatalf("Delete %v (%d): %v", p, i, err)
		}
		if tree.Size() != N-i-1 {
			t.Fatalf("Expected size %d. Got: %d", N-i-1, tree.Size())
		}
		if ok, _ := tree.Contains(p); ok {
			t.Fatalf("Deleted point %v still present", p)
		}
		if i%50 == 0 {
			checkInvariant(t, tree)
			for _, q := range points[i+1:] {
				if ok, _ := tree.Contains(q); !ok {
					t.Fatalf("Lost point %v after deleting %v", q, p)
				}
			}
		}
	}
	if tree.root != nil {
		t.Fatalf("Expected empty root after deleting every point")
	}
}

func TestAll(t *testing.T) {
	tree := New[int](2)
	for i, v := range uniqueVals {
		if err := tree.Insert(v, i); err != nil {
			t.Fatal(err)
		}
	}
	seen := make(map[int]bool)
	for p, v := range tree.All() {
		if ok, _ := p.Equal(uniqueVals[v]); !ok {
			t.Fatalf("Value %d paired with %v", v, p)
		}
		seen[v] = true
	}
	if len(seen) != len(uniqueVals) {
		t.Fatalf("Expected %d entries. Got: %d", len(uniqueVals), len(seen))
	}

	// Early break stops the walk
	n := 0
	for range tree.All() {
		n++
		break
	}
	if n != 1 {
		t.Fatalf("Expected break to stop iteration")
	}
}
