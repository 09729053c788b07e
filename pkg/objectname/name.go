// Package objectname implements the sole naming convention used against the
// object store: a total, injective mapping from (chunkId, blockIndex,
// version) to an object name.
//
// There is no share/content hierarchy here — just (chunk, block, version)
// — so the key is a flat underscore-joined triple rather than a nested
// path.
package objectname

import (
	"fmt"
	"strconv"
	"strings"
)

// Name returns the object name for the block at blockIndex within chunkID,
// written at version. The format is decimal, underscore-separated:
// "{chunkId}_{blockIndex}_{version}".
func Name(chunkID, blockIndex, version uint64) string {
	return strconv.FormatUint(chunkID, 10) + "_" +
		strconv.FormatUint(blockIndex, 10) + "_" +
		strconv.FormatUint(version, 10)
}

// Parse reverses Name, splitting an object name back into its coordinates.
// It returns an error if name is not exactly three underscore-separated
// decimal integers.
func Parse(name string) (chunkID, blockIndex, version uint64, err error) {
	parts := strings.Split(name, "_")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("objectname: %q is not chunkId_blockIndex_version", name)
	}

	chunkID, err = strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("objectname: invalid chunk id in %q: %w", name, err)
	}
	blockIndex, err = strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("objectname: invalid block index in %q: %w", name, err)
	}
	version, err = strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("objectname: invalid version in %q: %w", name, err)
	}
	return chunkID, blockIndex, version, nil
}
