package wallet

import (
	"fmt"

	"github.com/AlexZinkM/legacy-wallet/internal/history"
	"github.com/AlexZinkM/legacy-wallet/internal/serialization"
)

const (
	// LegacyVersionV1 files carry the history in the version 1 layout.
	// They are read but never written.
	LegacyVersionV1 uint32 = 1

	// CurrentVersion is written by every Serialize call
	CurrentVersion uint32 = 2
)

// format is the layout of the history block
type format int

const (
	formatCurrent format = iota
	formatLegacyV1
)

// formatOf maps an envelope version to a history layout. Versions other
// than 1, including ones newer than CurrentVersion, use the current layout.
func formatOf(version uint32) format {
	if version == LegacyVersionV1 {
		return formatLegacyV1
	}
	return formatCurrent
}

func (f format) String() string {
	switch f {
	case formatCurrent:
		return "current"
	case formatLegacyV1:
		return "legacy-v1"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

func (f format) decodeDetails(r *serialization.Reader, txs *history.Cache) error {
	switch f {
	case formatCurrent:
		return txs.Deserialize(r)
	case formatLegacyV1:
		return txs.DeserializeLegacyV1(r)
	}
	return fmt.Errorf("unsupported history format %s", f)
}
