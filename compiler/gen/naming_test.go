package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descware/apigen/compiler/load"
)

func TestNaming(t *testing.T) {
	require := require.New(t)
	n, err := NewNaming([]*load.File{
		{Name: "library.proto", Package: "example.library.v1"},
	})
	require.NoError(err)
	require.Equal("Library", n.Name)
	require.Equal([]string{"Example"}, n.Namespace)
	require.Equal("v1", n.Version)
	require.Equal("Library", n.ProductName)
	require.Empty(n.ProductURL)
	require.False(n.IsZero())

	n, err = NewNaming([]*load.File{
		{Name: "speech.proto", Package: "acme.cloud.speech.v2beta1"},
	})
	require.NoError(err)
	require.Equal("Speech", n.Name)
	require.Equal([]string{"Acme", "Cloud"}, n.Namespace)
	require.Equal("v2beta1", n.Version)

	// A single file needs no version to resolve.
	n, err = NewNaming([]*load.File{
		{Name: "library.proto", Package: "example.library"},
	})
	require.NoError(err)
	require.Equal("Library", n.Name)
	require.Empty(n.Version)

	// Same package up to and including the version is consistent even
	// when the paths differ below it.
	n, err = NewNaming([]*load.File{
		{Name: "library.proto", Package: "example.library.v1"},
		{Name: "admin.proto", Package: "example.library.v1.admin"},
	})
	require.NoError(err)
	require.Equal("Library", n.Name)
	require.Equal("v1", n.Version)
}

func TestNaming_AmbiguousVersion(t *testing.T) {
	require := require.New(t)
	_, err := NewNaming([]*load.File{
		{Name: "foo.proto", Package: "a.foo"},
		{Name: "bar.proto", Package: "a.bar"},
	})
	require.Error(err)
	require.ErrorIs(err, ErrAmbiguousVersion)
	require.True(IsAmbiguousVersionError(err))

	var verErr *AmbiguousVersionError
	require.True(errors.As(err, &verErr))
	require.Equal([]string{"a.foo", "a.bar"}, verErr.Packages)

	// Identical packages do not trip the check.
	_, err = NewNaming([]*load.File{
		{Name: "foo.proto", Package: "a.foo"},
		{Name: "bar.proto", Package: "a.foo"},
	})
	require.NoError(err)
}

func TestNaming_MetadataOverride(t *testing.T) {
	require := require.New(t)
	n, err := NewNaming([]*load.File{
		{
			Name:    "library.proto",
			Package: "example.library.v1",
			Metadata: &load.Metadata{
				ProductName: "Acme Library",
				ProductURL:  "https://example.com/library",
			},
		},
	})
	require.NoError(err)
	require.Equal("Acme Library", n.Name)
	require.Equal("Acme Library", n.ProductName)
	require.Equal("https://example.com/library", n.ProductURL)
	// The annotation carries no version, so the package-derived version
	// survives the merge.
	require.Equal("v1", n.Version)
	require.Equal([]string{"Example"}, n.Namespace)

	// An explicit package name wins over the product name.
	n, err = NewNaming([]*load.File{
		{
			Name:    "library.proto",
			Package: "example.library.v1",
			Metadata: &load.Metadata{
				PackageName:      "bookstore",
				PackageNamespace: []string{"Acme", "Cloud"},
				ProductName:      "Acme Bookstore",
			},
		},
	})
	require.NoError(err)
	require.Equal("bookstore", n.Name)
	require.Equal([]string{"Acme", "Cloud"}, n.Namespace)
	require.Equal("Acme Bookstore", n.ProductName)

	// The same annotation in many files is consistent.
	meta := &load.Metadata{ProductName: "Acme Library"}
	n, err = NewNaming([]*load.File{
		{Name: "a.proto", Package: "example.library.v1", Metadata: meta},
		{Name: "b.proto", Package: "example.library.v1", Metadata: &load.Metadata{ProductName: "Acme Library"}},
	})
	require.NoError(err)
	require.Equal("Acme Library", n.ProductName)
}

func TestNaming_ConflictingMetadata(t *testing.T) {
	require := require.New(t)
	_, err := NewNaming([]*load.File{
		{Name: "a.proto", Package: "example.library.v1", Metadata: &load.Metadata{ProductName: "Acme Library"}},
		{Name: "b.proto", Package: "example.library.v1", Metadata: &load.Metadata{ProductName: "Acme Bookstore"}},
	})
	require.Error(err)
	require.ErrorIs(err, ErrConflictingMetadata)
	require.True(IsConflictingMetadataError(err))

	// Empty annotations never conflict.
	_, err = NewNaming([]*load.File{
		{Name: "a.proto", Package: "example.library.v1", Metadata: &load.Metadata{ProductName: "Acme Library"}},
		{Name: "b.proto", Package: "example.library.v1", Metadata: &load.Metadata{}},
		{Name: "c.proto", Package: "example.library.v1"},
	})
	require.NoError(err)
}

func TestNaming_Derived(t *testing.T) {
	n := &Naming{
		Name:      "Library",
		Namespace: []string{"Example"},
		Version:   "v1",
	}
	assert.Equal(t, "Example Library", n.LongName())
	assert.Equal(t, "library", n.ModuleName())
	assert.Equal(t, "library_v1", n.VersionedModuleName())
	assert.Equal(t, "example-library", n.DistributionName())

	n = &Naming{Name: "Acme Library", Namespace: []string{"Example"}}
	assert.Equal(t, "Example Acme Library", n.LongName())
	assert.Equal(t, "acme_library", n.ModuleName())
	assert.Equal(t, "acme_library", n.VersionedModuleName(), "no version, same as module name")
	assert.Equal(t, "example-acme-library", n.DistributionName())

	assert.True(t, (&Naming{}).IsZero())
	assert.False(t, (&Naming{ProductURL: "https://example.com"}).IsZero())
}

func TestVersionSegment(t *testing.T) {
	tests := []struct {
		segment string
		match   bool
	}{
		{"v1", true},
		{"v20", true},
		{"v1p1", true},
		{"v2beta1", true},
		{"v1p1alpha1", true},
		{"v1alpha2beta3", true},
		{"v1test1", true},
		{"v", false},
		{"v1x", false},
		{"1v", false},
		{"version1", false},
		{"v1beta", false},
		{"beta1", false},
	}
	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			assert.Equal(t, tt.match, versionRegexp.MatchString(tt.segment))
		})
	}
}

func TestCommonSegments(t *testing.T) {
	tests := []struct {
		name     string
		packages []string
		common   []string
	}{
		{"single", []string{"example.library.v1"}, []string{"example", "library", "v1"}},
		{"shared version", []string{"example.library.v1", "example.library.v1.admin"}, []string{"example", "library", "v1"}},
		{"diverging", []string{"a.foo", "a.bar"}, []string{"a"}},
		{"disjoint", []string{"a.foo", "b.foo"}, []string{}},
		{"none", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.common, commonSegments(tt.packages))
		})
	}
}
