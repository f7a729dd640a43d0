package resource

import "strings"

// NormalizeURL cleans a raw URL cell.
//
// Surrounding whitespace and one layer of surrounding double quotes are removed,
// along with any whitespace that was inside the quotes.
// Values already starting with http:// or https:// are returned as is; anything
// else gets an https:// prefix. The remainder is not validated. Blank input
// reports false.
func NormalizeURL(raw string) (string, bool) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return "", false
	}

	if strings.HasPrefix(url, `"`) && strings.HasSuffix(url, `"`) {
		if len(url) < 2 {
			return "", false
		}
		url = strings.TrimSpace(url[1 : len(url)-1])
		if url == "" {
			return "", false
		}
	}

	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url, true
	}

	// www. hosts and bare hosts alike are assumed to be served over https
	return "https://" + url, true
}
