package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticContainsClient(t *testing.T) {
	for _, name := range []string{"index.html", "app.js", "styles.css"} {
		data, err := fs.ReadFile(Static(), name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}

// Profile fields are untrusted. The client must only place them in the
// page as text, so a name like "<script>" shows up literally.
func TestClientRendersTextOnly(t *testing.T) {
	data, err := fs.ReadFile(Static(), "app.js")
	require.NoError(t, err)
	js := string(data)

	for _, sink := range []string{"innerHTML", "outerHTML", "insertAdjacentHTML", "document.write", "eval(", "new Function"} {
		assert.NotContains(t, js, sink)
	}
	assert.Contains(t, js, "node.textContent = String(text)")
	assert.Contains(t, js, "if (isSafeHref(link))")
}
