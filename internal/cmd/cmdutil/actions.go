// Package cmdutil holds the per-family loop shared by the commands that
// change installed fonts.
package cmdutil

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/fontmap/internal/cmd/output"
	"github.com/agentstation/fontmap/pkg/catalogs"
	"github.com/agentstation/fontmap/pkg/errors"
	"github.com/agentstation/fontmap/pkg/logging"
)

// Action changes one family and reports what it did.
type Action func(ctx context.Context, font *catalogs.Font) (output.ActionRow, error)

// ForEachFamily runs action on each named family in order. The context
// passed to action carries a logger tagged with the family. A family that
// cannot be found or whose action fails is reported in its row and does not
// stop the others. The returned error summarizes the failures.
func ForEachFamily(ctx context.Context, cat *catalogs.Catalog, logger *zerolog.Logger, name string, families []string, action Action) ([]output.ActionRow, error) {
	ctx = logging.WithLogger(ctx, logger)
	rows := make([]output.ActionRow, 0, len(families))
	var failed []error

	for _, family := range families {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		font, err := cat.Lookup(family)
		if err != nil {
			rows = append(rows, output.ActionRow{Family: family, Action: name, Error: err.Error()})
			failed = append(failed, err)
			continue
		}

		fctx := logging.WithOperation(logging.WithFamily(ctx, font.Family()), name)
		row, err := action(fctx, font)
		if row.Family == "" {
			row.Family = font.Family()
		}
		if row.Action == "" {
			row.Action = name
		}
		if err != nil {
			logger.Debug().Err(err).Str("family", font.Family()).Str("action", name).Msg("Action failed")
			row.Error = err.Error()
			failed = append(failed, err)
		}
		rows = append(rows, row)
	}

	if len(failed) > 0 {
		return rows, fmt.Errorf("%s: %d of %d families failed: %w", name, len(failed), len(families), errors.Join(failed...))
	}
	return rows, nil
}

// Paths returns the file paths of a variant->path map in variant order.
func Paths(files map[string]string) []string {
	paths := make([]string, 0, len(files))
	for _, variant := range slices.Sorted(maps.Keys(files)) {
		paths = append(paths, files[variant])
	}
	return paths
}
