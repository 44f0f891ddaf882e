package formatter

import (
	"testing"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestItemRef(t *testing.T) {
	it := testutil.NewTestItem("g", "Design", testutil.WithSeq(3))

	assert.Equal(t, "WEB01#3", ItemRef(testutil.NewTestGroup("Web", testutil.WithShortID("WEB01")), it))
	assert.Equal(t, "#3", ItemRef(nil, it))
	assert.Equal(t, "#3", ItemRef(&domain.Group{}, it))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "abcdef12", TruncID("abcdef12-3456-7890"))
	assert.Equal(t, "short", TruncID("short"))
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "DEPS\n────", stripStyles(Header("deps")))
}

func TestRenderBox(t *testing.T) {
	out := stripStyles(RenderBox("window", "body"))
	assert.Contains(t, out, "WINDOW")
	assert.Contains(t, out, "body")
	assert.Contains(t, out, "╭")
}
