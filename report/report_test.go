package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildScore(t *testing.T) {
	tests := []struct {
		issues int
		score  int
	}{
		{0, 100},
		{1, 90},
		{4, 60},
		{9, 10},
		{10, 0},
		{11, 0},
		{15, 0},
	}

	for _, tt := range tests {
		issues := make([]string, tt.issues)
		for i := range issues {
			issues[i] = fmt.Sprintf("issue %d", i)
		}

		rep := Build(issues, nil)
		assert.Equal(t, tt.score, rep.Score, "%d issues", tt.issues)
	}
}

func TestBuildScoreNeverRises(t *testing.T) {
	prev := MaxScore + 1
	for n := 0; n <= 12; n++ {
		rep := Build(make([]string, n), nil)
		assert.LessOrEqual(t, rep.Score, prev, "%d issues", n)
		assert.GreaterOrEqual(t, rep.Score, 0)
		prev = rep.Score
	}
}

func TestBuildNilSlicesBecomeEmpty(t *testing.T) {
	rep := Build(nil, nil)

	assert.NotNil(t, rep.Issues)
	assert.NotNil(t, rep.Recommendations)
	assert.Empty(t, rep.Issues)
	assert.Empty(t, rep.Recommendations)
	assert.Equal(t, 100, rep.Score)
}

func TestBuildKeepsInputOrder(t *testing.T) {
	issues := []string{"first", "second"}
	recs := []string{"only"}

	rep := Build(issues, recs)

	assert.Equal(t, issues, rep.Issues)
	assert.Equal(t, recs, rep.Recommendations)
	assert.Equal(t, 80, rep.Score)
}
