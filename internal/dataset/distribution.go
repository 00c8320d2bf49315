package dataset

import (
	"path/filepath"
	"strings"
)

// UnknownDistribution is reported for file names without a "_n" marker.
const UnknownDistribution = "unknown"

// Distribution derives the distribution label from a dataset file name.
// Datasets are named "<dist>_n<size>_seed<seed>.bin"; the label is the
// prefix before the first "_n".
func Distribution(path string) string {
	base := filepath.Base(path)
	dist, _, found := strings.Cut(base, "_n")
	if !found {
		return UnknownDistribution
	}
	return dist
}
