package assets

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	fsys := fstest.MapFS{
		"manifest.json": {Data: []byte(`{"css/styles.css":"css/styles.3f2a.css"}`)},
	}
	r, err := NewAssetResolverFromFS(fsys, "manifest.json")
	require.NoError(t, err)

	assert.Equal(t, "/static/css/styles.3f2a.css", r.Resolve("css/styles.css"))
	assert.Equal(t, "/static/js/app.js", r.Resolve("js/app.js"))
}

func TestMissingManifest(t *testing.T) {
	r, err := NewAssetResolverFromFS(fstest.MapFS{}, "manifest.json")
	require.NoError(t, err)
	assert.Equal(t, "/static/js/app.js", r.Resolve("js/app.js"))
}

func TestInvalidManifest(t *testing.T) {
	_, err := NewAssetResolverFromFS(fstest.MapFS{"manifest.json": {Data: []byte("{")}}, "manifest.json")
	require.Error(t, err)
}

func TestResolveAsset_DevReload(t *testing.T) {
	fsys := fstest.MapFS{"manifest.json": {Data: []byte(`{}`)}}
	r, err := NewAssetResolverFromFS(fsys, "manifest.json")
	require.NoError(t, err)
	assert.Equal(t, "/static/js/app.js", ResolveAsset(r, "js/app.js", true))

	fsys["manifest.json"] = &fstest.MapFile{Data: []byte(`{"js/app.js":"js/app.9c1d.js"}`)}
	assert.Equal(t, "/static/js/app.9c1d.js", ResolveAsset(r, "js/app.js", true))
	assert.Equal(t, "/static/x.css", ResolveAsset(nil, "x.css", false))
}
