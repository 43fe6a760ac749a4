package depsolve_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"go.arcalot.io/assert"
	"go.arcalot.io/depsolve"
)

func chain(length int) []*depsolve.Node[U] {
	nodes := make([]*depsolve.Node[U], length)
	for i := length - 1; i >= 0; i-- {
		nodes[i] = leaf(U(fmt.Sprintf("n%d", i)))
		if i < length-1 {
			nodes[i].Dependency = depsolve.NewLeaf(nodes[i+1])
		}
	}
	return nodes
}

// wideGraph builds a root with several alternatives, each requiring a pair of leaves, where one
// alternative in three pulls in a conflicting identity.
func wideGraph() *depsolve.Node[U] {
	shared := leaf("shared")
	var alternatives []*depsolve.Node[U]
	for i := 0; i < 9; i++ {
		left := leaf(U(fmt.Sprintf("left%d", i)))
		right := leaf(U(fmt.Sprintf("right%d", i)))
		if i%3 == 0 {
			right = depsolve.NewNode[U](right.ID, depsolve.NewLeaf(leaf("root")))
		}
		alternatives = append(alternatives, depsolve.NewNode[U](
			U(fmt.Sprintf("alt%d", i)),
			depsolve.NewOrAnd(depsolve.NewOr(
				depsolve.NewAnd(left, right),
				depsolve.NewAnd(left, shared),
			)),
		))
	}
	return depsolve.NewNode[U]("root", depsolve.NewAny(alternatives...))
}

func TestSolver_MatchesNodeSolve(t *testing.T) {
	a, _, c, d := orAndGraph()
	s := depsolve.NewSolver[U]()

	res, err := s.Solve(context.Background(), a)
	assert.NoError(t, err)
	assert.Equals(t, res, a.Solve(empty()))
	assert.Equals(t, res.Paths, []depsolve.Path[U]{depsolve.NewPath(a, c, d)})
}

func TestSolver_Concurrency(t *testing.T) {
	root := wideGraph()
	expected := root.Solve(empty())
	assert.Equals(t, len(expected.Paths), 15)

	for _, limit := range []int{1, 2, 8} {
		t.Run(fmt.Sprintf("limit %d", limit), func(t *testing.T) {
			s := depsolve.NewSolver[U](depsolve.WithConcurrency(limit))
			res, err := s.Solve(context.Background(), root)
			assert.NoError(t, err)
			assert.Equals(t, res.Equal(expected), true)
		})
	}
}

func TestSolver_MaxDepth(t *testing.T) {
	nodes := chain(5)

	t.Run("exceeded", func(t *testing.T) {
		s := depsolve.NewSolver[U](depsolve.WithMaxDepth(3))
		res, err := s.Solve(context.Background(), nodes[0])
		assert.Error(t, err)
		var depthErr depsolve.ErrDepthExceeded
		assert.Equals(t, errors.As(err, &depthErr), true)
		assert.Equals(t, depthErr.NodeID, "n3")
		assert.Equals(t, res.IsSuccess(), false)
	})
	t.Run("within", func(t *testing.T) {
		s := depsolve.NewSolver[U](depsolve.WithMaxDepth(5))
		res, err := s.Solve(context.Background(), nodes[0])
		assert.NoError(t, err)
		assert.Equals(t, res, depsolve.Success(depsolve.NewPath(nodes...)))
	})
}

func TestSolver_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := depsolve.NewSolver[U]()
	res, err := s.Solve(ctx, wideGraph())
	assert.Error(t, err)
	assert.Equals(t, errors.Is(err, context.Canceled), true)
	assert.Equals(t, res.IsSuccess(), false)
}

func TestSolver_Logger(t *testing.T) {
	var lines []string
	logger := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 2})

	a := leaf("a")
	b := depsolve.NewNode[U]("b", depsolve.NewLeaf(a))
	a.Dependency = depsolve.NewLeaf(b)

	s := depsolve.NewSolver[U](depsolve.WithLogger(logger))
	res, err := s.Solve(context.Background(), a)
	assert.NoError(t, err)
	assert.Equals(t, res, depsolve.Failure(depsolve.EmptyCause[U]()))

	logged := strings.Join(lines, "\n")
	assert.Equals(t, strings.Count(logged, `"msg"="visiting node"`), 3)
	assert.Equals(t, strings.Contains(logged, `"msg"="identity conflict"`), true)
	assert.Equals(t, strings.Contains(logged, `"path"="a -> b -> a"`), true)
	assert.Equals(t, strings.Contains(logged, `"msg"="solve finished"`), true)
	assert.Equals(t, strings.Contains(logged, `"result"="failure"`), true)
}
