package assets

import "errors"

// AssetResolver serves styles from a custom directory when configured and
// falls back to the embedded set for styles the custom directory lacks.
type AssetResolver struct {
	custom   StyleLoader // nil without --asset-path
	embedded StyleLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath means
// embedded styles only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}
	if customBasePath == "" {
		return r, nil
	}

	fsLoader, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	r.custom = fsLoader
	return r, nil
}

// LoadStyle loads a style, trying the custom directory first. Only
// ErrStyleNotFound triggers the fallback; validation and I/O errors surface.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}
	return r.embedded.LoadStyle(name)
}

// HasCustomLoader reports whether a custom asset directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ StyleLoader = (*AssetResolver)(nil)
