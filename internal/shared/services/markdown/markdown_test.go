package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_ToHTML(t *testing.T) {
	r := NewRenderer()

	out, err := r.ToHTML("**Members** unlock prompts <script>alert(1)</script>")
	require.NoError(t, err)

	assert.Contains(t, out, "<strong>Members</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestRenderer_StripTags(t *testing.T) {
	r := NewRenderer()

	assert.Equal(t, "Founder", r.StripTags("<b onclick=\"x()\">Founder</b>"))
	assert.Equal(t, "", r.StripTags("<img src=x onerror=alert(1)>"))
}
