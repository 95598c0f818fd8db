package selection

import (
	"fmt"
	"strconv"
	"strings"

	"previewgen/internal/catalog"
)

// Mode names a selection policy for a run.
type Mode string

const (
	// ModeAll selects every entry in catalog order.
	ModeAll Mode = "all"
	// ModeMissing selects entries without a preview, in catalog order.
	ModeMissing Mode = "missing"
	// ModeIDs selects an explicit comma-separated identifier list.
	ModeIDs Mode = "ids"
)

// ParseMode normalizes a mode string, accepting the numeric menu aliases.
func ParseMode(value string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "all", "1":
		return ModeAll, true
	case "missing", "2":
		return ModeMissing, true
	case "ids", "3":
		return ModeIDs, true
	}
	return "", false
}

// Resolve returns the identifiers in scope for the given mode. For ModeIDs,
// rawIDs is split on commas and unparsable tokens are dropped silently; input
// order is preserved and duplicates are kept. An empty result is valid and
// means the run is a no-op.
func Resolve(cat *catalog.Catalog, mode Mode, rawIDs string) ([]int, error) {
	switch mode {
	case ModeAll:
		return cat.IDs(), nil
	case ModeMissing:
		return cat.MissingPreviewIDs(), nil
	case ModeIDs:
		return ParseIDList(rawIDs), nil
	}
	return nil, fmt.Errorf("unknown selection mode %q", mode)
}

// ParseIDList parses a comma-separated identifier list, dropping tokens that
// are not integers.
func ParseIDList(raw string) []int {
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
