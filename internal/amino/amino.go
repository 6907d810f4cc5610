// Package amino exposes the remote service's resources as lazy entities.
// Every accessor reads through a remote.Entity, so the first read fetches the
// resource and later reads are served from the cached snapshot until Refresh.
package amino

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

func globalCommunityPath(id, suffix string) string {
	return fmt.Sprintf("/g/s-x%s/%s", id, suffix)
}

func localPath(ndc, suffix string) string {
	return fmt.Sprintf("/x%s/s/%s", ndc, suffix)
}

func scoped(ndc string) bool {
	return ndc != "" && ndc != "0"
}

func query(pairs ...string) url.Values {
	values := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			values.Set(pairs[i], pairs[i+1])
		}
	}
	return values
}

// splitList splits a comma separated field, dropping blank entries.
func splitList(raw string) []string {
	return lo.FilterMap(strings.Split(raw, ","), func(item string, _ int) (string, bool) {
		item = strings.TrimSpace(item)
		return item, item != ""
	})
}
