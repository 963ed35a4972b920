package gen

import (
	"regexp"
	"slices"
	"strings"

	"github.com/descware/apigen/compiler/load"
)

// versionRegexp matches a trailing version segment of a package path,
// e.g. "v1", "v2beta1" or "v1p1alpha1".
var versionRegexp = regexp.MustCompile(`^v[0-9]+(p[0-9]+)?((alpha|beta|test)[0-9]+)*$`)

// Naming holds the resolved identity of an API: its name, namespace,
// version and product branding. It is pieced together from the package
// paths of the declaration files and, where present, the explicit
// per-file metadata annotation. A Naming is resolved once per generation
// pass and is read-only afterwards, so it is safe to share across
// concurrent consumers.
type Naming struct {
	// Name is the API name, capitalized for display use.
	Name string
	// Namespace holds the capitalized namespace segments, outermost first.
	Namespace []string
	// Version is the API version segment as declared, e.g. "v2beta1".
	// Empty if the package path carries no version.
	Version string
	// ProductName is the branded product name.
	ProductName string
	// ProductURL points at the product documentation.
	ProductURL string
}

// NewNaming resolves the identity of an API from its declaration files.
// The file list should only include files targeted for generation, not
// their transitive imports.
//
// The package-derived record is the base; the single metadata annotation,
// if any, overrides it field-by-field wherever its value is non-empty.
// Resolution fails if the files disagree on their package below the
// version segment, or if more than one distinct non-empty metadata
// annotation exists.
func NewNaming(files []*load.File) (*Naming, error) {
	packages := distinctPackages(files)
	n := packageNaming(packages)
	if n.Version == "" && len(packages) > 1 {
		return nil, NewAmbiguousVersionError(packages)
	}
	meta, err := fileMetadata(files)
	if err != nil {
		return nil, err
	}
	if meta != nil {
		if name := meta.PackageName; name != "" {
			n.Name = name
		} else if meta.ProductName != "" {
			n.Name = meta.ProductName
		}
		if len(meta.PackageNamespace) > 0 {
			n.Namespace = slices.Clone(meta.PackageNamespace)
		}
		if meta.ProductName != "" {
			n.ProductName = meta.ProductName
		}
		if meta.ProductURL != "" {
			n.ProductURL = meta.ProductURL
		}
		// The annotation carries no version, so the package-derived
		// version always survives the merge.
	}
	return n, nil
}

// distinctPackages returns the distinct package paths declared by the
// files, in first-seen order.
func distinctPackages(files []*load.File) []string {
	var (
		packages []string
		seen     = make(map[string]struct{}, len(files))
	)
	for _, f := range files {
		if _, ok := seen[f.Package]; ok {
			continue
		}
		seen[f.Package] = struct{}{}
		packages = append(packages, f.Package)
	}
	return packages
}

// packageNaming derives a naming record from the longest common
// dot-delimited prefix of the given package paths. The version is
// recognized as an explicit trailing segment, the name is the segment
// before it and everything above is the namespace.
//
// Segment validity (lowercase alphanumeric and underscore) is not
// enforced here; the parser guarantees well-formed package paths.
func packageNaming(packages []string) *Naming {
	segments := commonSegments(packages)
	n := &Naming{}
	if last := len(segments) - 1; last >= 0 && versionRegexp.MatchString(segments[last]) {
		n.Version = segments[last]
		segments = segments[:last]
	}
	if last := len(segments) - 1; last >= 0 {
		n.Name = capitalize(segments[last])
		n.ProductName = n.Name
		segments = segments[:last]
	}
	for _, seg := range segments {
		n.Namespace = append(n.Namespace, capitalize(seg))
	}
	return n
}

// commonSegments computes the longest common prefix of the dot-split
// package paths, treating each dot-delimited segment as a unit.
func commonSegments(packages []string) []string {
	if len(packages) == 0 {
		return nil
	}
	common := strings.Split(packages[0], ".")
	for _, pkg := range packages[1:] {
		segments := strings.Split(pkg, ".")
		if len(segments) < len(common) {
			common = common[:len(segments)]
		}
		for i := range common {
			if common[i] != segments[i] {
				common = common[:i]
				break
			}
		}
	}
	return common
}

// fileMetadata scans the files for non-empty metadata annotations and
// returns the single record they agree on, or nil if none is set. The
// scan is ordered: the first non-empty record seen is the candidate and
// every subsequent non-empty record must equal it by value.
func fileMetadata(files []*load.File) (*load.Metadata, error) {
	var meta *load.Metadata
	for _, f := range files {
		m := f.Metadata
		if m.IsZero() {
			continue
		}
		if meta == nil {
			meta = m
			continue
		}
		if !meta.Equal(m) {
			return nil, NewConflictingMetadataError(metaLabel(meta), metaLabel(m))
		}
	}
	return meta, nil
}

func metaLabel(m *load.Metadata) string {
	if m.PackageName != "" {
		return m.PackageName
	}
	return m.ProductName
}

// IsZero reports whether every naming field is empty. Callers use it to
// detect that no identity could be derived at all.
func (n *Naming) IsZero() bool {
	return n.Name == "" && len(n.Namespace) == 0 && n.Version == "" &&
		n.ProductName == "" && n.ProductURL == ""
}

// LongName returns the title-cased display name: the namespace segments
// joined with the name by single spaces.
func (n *Naming) LongName() string {
	return strings.Join(append(slices.Clone(n.Namespace), n.Name), " ")
}

// ModuleName returns the ecosystem-safe module identifier for the API.
func (n *Naming) ModuleName() string {
	return moduleName(n.Name)
}

// VersionedModuleName returns the module identifier suffixed with the
// version (e.g. "library_v1"). If there is no version, this is the same
// as ModuleName.
func (n *Naming) VersionedModuleName() string {
	if n.Version != "" {
		return n.ModuleName() + "_" + n.Version
	}
	return n.ModuleName()
}

// DistributionName returns the hyphen-joined, lowercased package name
// used for distribution metadata, e.g. "acme-cloud-library".
func (n *Naming) DistributionName() string {
	parts := append(slices.Clone(n.Namespace), strings.Fields(n.Name)...)
	return strings.ToLower(strings.Join(parts, "-"))
}
