package attributes

import (
	"net/url"
	"strings"
)

// ResolveBrand picks the brand of a product page: the DOM brand node text, then
// the og:brand meta value, then the second label of the page host
// (www.brand.com gives "brand"). Returns "" when nothing applies.
func ResolveBrand(domBrand, metaBrand, rawURL string) string {
	if b := strings.TrimSpace(domBrand); b != "" {
		return b
	}
	if b := strings.TrimSpace(metaBrand); b != "" {
		return b
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	labels := strings.Split(u.Hostname(), ".")
	if len(labels) < 2 {
		return ""
	}
	return labels[1]
}
