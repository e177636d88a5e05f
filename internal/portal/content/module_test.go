package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenticlearn/educator-portal/internal/portal/view"
	"github.com/agenticlearn/educator-portal/pkg/ui"
)

type fakeAPI struct {
	insightsErr error
}

func (fakeAPI) GetContentLibrary(context.Context) ([]map[string]any, error) {
	return []map[string]any{{
		"title":       "Introduction to Data Science",
		"type":        "video",
		"file_format": "MP4",
		"file_url":    "https://storage.googleapis.com/agenticlearn/videos/intro-data-science.mp4",
		"views_count": float64(156),
		"rating":      4.8,
		"tags":        []any{"data-science", "introduction"},
	}, {
		"title":    "<script>x</script>",
		"type":     "document",
		"file_url": "javascript:alert(1)",
	}}, nil
}

func (f fakeAPI) GetAIInsights(context.Context) ([]map[string]any, error) {
	if f.insightsErr != nil {
		return nil, f.insightsErr
	}
	return []map[string]any{{
		"insight_type":     "at_risk_student",
		"title":            "Student at Risk: Maya Rajin",
		"description":      "Inactive for 7 days",
		"confidence_score": 85.5,
		"action_required":  true,
	}}, nil
}

func TestInitialize_RendersLibraryAndInsights(t *testing.T) {
	doc := view.NewDocument()
	center := ui.NewCenter()
	require.NoError(t, New(fakeAPI{}, doc, center, nil).Initialize(context.Background()))

	html := doc.HTML(RegionContainer)
	assert.Contains(t, html, `href="https://storage.googleapis.com/agenticlearn/videos/intro-data-science.mp4"`)
	assert.Contains(t, html, `<p class="content-count">2 items</p>`)
	assert.Contains(t, html, "🎬 video · MP4")
	assert.Contains(t, html, "⭐ 4.8")
	assert.Contains(t, html, "data-science, introduction")
	assert.Contains(t, html, "&lt;script&gt;x&lt;/script&gt;")
	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, `<li class="insight insight-at_risk_student"><strong>Student at Risk: Maya Rajin</strong> <span class="badge badge-warning">Action required</span>`)
	assert.Contains(t, html, "Confidence 85.5%")
	assert.Empty(t, center.Items())
	assert.True(t, doc.Handles(ActionRefresh))
}

func TestInitialize_InsightsFailureKeepsLibrary(t *testing.T) {
	doc := view.NewDocument()
	center := ui.NewCenter()
	err := New(fakeAPI{insightsErr: errors.New("status 502")}, doc, center, nil).Initialize(context.Background())
	require.Error(t, err)

	html := doc.HTML(RegionContainer)
	assert.Contains(t, html, "Introduction to Data Science")
	assert.Contains(t, html, "No insights yet")
	items := center.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Failed to load content: ai insights: status 502", items[0].Message)
}
