package searches

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/amp-labs/searchhistory/ordered"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Catalog is an offline Searcher backed by a fixed set of results, keyed by
// search term. Term matching ignores case, Unicode normalization form and
// surrounding whitespace.
//
// The YAML form is a mapping from term to a list of photos:
//
//	sunset:
//	  - id: "5300"
//	    owner: 12@N01
//	    secret: abc
//	    server: "65535"
//	    farm: 66
//	    title: Golden hour
type Catalog struct {
	terms *ordered.Dict[string, []Photo]
}

var _ Searcher = (*Catalog)(nil)

// ParseCatalog reads a catalog from YAML. Terms that differ only in case or
// normalization are merged in file order; a term written twice exactly is an
// error.
func ParseCatalog(data []byte) (*Catalog, error) {
	raw := ordered.New[string, []Photo](0)

	if err := yaml.Unmarshal(data, raw); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	cat := &Catalog{terms: ordered.New[string, []Photo](raw.Count())}

	for term, photos := range raw.All() {
		key := normalize(term)
		merged := append(cat.terms.Get(key).GetOrElse(nil), photos...)
		cat.terms.Set(key, merged)
	}

	return cat, nil
}

// LoadCatalog reads a catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseCatalog(data)
}

// Search returns the photos listed for term. An unknown term yields no photos
// and no error, the same as a live search with no hits.
func (c *Catalog) Search(ctx context.Context, term string) ([]Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return slices.Clone(c.terms.Get(normalize(term)).GetOrElse(nil)), nil
}

// Terms lists the catalog's terms in file order.
func (c *Catalog) Terms() []string {
	return c.terms.Keys()
}

func normalize(term string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(term)))
}
