// Package webfonts reads catalogs in the webfonts list format published by
// Google Fonts and the Open Font Repository:
//
//	{"kind": "webfonts#webfontList", "items": [{"family": "Roboto", ...}]}
//
// Hand-maintained catalogs may carry comments and trailing commas.
package webfonts

import (
	"encoding/json"

	"github.com/tidwall/jsonc"

	"github.com/agentstation/fontmap/pkg/catalogs"
	"github.com/agentstation/fontmap/pkg/errors"
)

// List is the top-level payload.
type List struct {
	Kind  string               `json:"kind"`
	Items *[]catalogs.RepoFont `json:"items"`
}

// Parse decodes a catalog payload. source names the payload in errors.
// Entries without a family name are dropped.
func Parse(data []byte, source string) ([]catalogs.RepoFont, error) {
	var list List
	if err := json.Unmarshal(jsonc.ToJSON(data), &list); err != nil {
		return nil, errors.NewParseError("json", source, err.Error(), err)
	}
	if list.Items == nil {
		return nil, errors.NewParseError("json", source, `missing "items"`, nil)
	}

	fonts := make([]catalogs.RepoFont, 0, len(*list.Items))
	for _, item := range *list.Items {
		if item.Family == "" {
			continue
		}
		fonts = append(fonts, item)
	}
	return fonts, nil
}
