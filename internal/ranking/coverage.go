// Package ranking scores a resume against a job record: skill coverage,
// experience and education sub-scores, and the weighted overall score.
package ranking

import (
	"context"
	"sort"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/types"
	"golang.org/x/sync/errgroup"
)

// DefaultSimilarityThreshold is the cosine similarity at which a held skill
// counts as covering a required one
const DefaultSimilarityThreshold = 0.75

// Coverage is the share of required skills a candidate covers, in [0,100]
type Coverage struct {
	Score   float64
	Matched []string
	Missing []string
	Method  string
}

// ExactCoverage matches required skills by set membership. No required skills
// means nothing can be missing, so the score is 100.
func ExactCoverage(required, held []string) Coverage {
	req := uniqueSorted(required)
	if len(req) == 0 {
		return Coverage{Score: 100, Matched: []string{}, Missing: []string{}, Method: types.MethodExact}
	}

	have := make(map[string]struct{}, len(held))
	for _, h := range held {
		have[h] = struct{}{}
	}

	matched := make([]string, 0, len(req))
	missing := make([]string, 0)
	for _, r := range req {
		if _, ok := have[r]; ok {
			matched = append(matched, r)
		} else {
			missing = append(missing, r)
		}
	}

	return Coverage{
		Score:   float64(len(matched)) / float64(len(req)) * 100,
		Matched: matched,
		Missing: missing,
		Method:  types.MethodExact,
	}
}

// SemanticCoverage counts a required skill as matched when its nearest held
// skill has cosine similarity >= threshold. A nil embedder or empty required
// set falls back to ExactCoverage.
func SemanticCoverage(ctx context.Context, embedder llm.Embedder, required, held []string, threshold float64) (Coverage, error) {
	req := uniqueSorted(required)
	if embedder == nil || len(req) == 0 {
		return ExactCoverage(required, held), nil
	}

	hold := uniqueSorted(held)
	if len(hold) == 0 {
		return Coverage{Score: 0, Matched: []string{}, Missing: req, Method: types.MethodSemantic}, nil
	}

	var reqVecs, heldVecs [][]float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reqVecs, err = embedder.EmbedStrings(gctx, req)
		return err
	})
	g.Go(func() error {
		var err error
		heldVecs, err = embedder.EmbedStrings(gctx, hold)
		return err
	})
	if err := g.Wait(); err != nil {
		return Coverage{}, err
	}
	if len(reqVecs) != len(req) || len(heldVecs) != len(hold) {
		return Coverage{}, &llm.EmbeddingError{Message: "embedding count does not match input count"}
	}

	matched := make([]string, 0, len(req))
	missing := make([]string, 0)
	for i, rv := range reqVecs {
		best := -1.0
		for _, hv := range heldVecs {
			if sim := llm.Dot(rv, hv); sim > best {
				best = sim
			}
		}
		if best >= threshold {
			matched = append(matched, req[i])
		} else {
			missing = append(missing, req[i])
		}
	}

	return Coverage{
		Score:   float64(len(matched)) / float64(len(req)) * 100,
		Matched: matched,
		Missing: missing,
		Method:  types.MethodSemantic,
	}, nil
}

func uniqueSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
