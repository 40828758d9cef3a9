package commit

import (
	"fmt"
	"strings"

	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/utils"
)

// ValidateBlocks checks every block before any write happens. Rejection here
// is what guarantees the store never holds a partially-applied record.
func ValidateBlocks(blocks []models.TimeBlock) error {
	for _, block := range blocks {
		if err := ValidateBlock(block); err != nil {
			return err
		}
	}
	return nil
}

// ValidateBlock checks a single block: non-empty identity, well-formed HH:MM
// times, and start strictly before end (same-day, no wraparound).
func ValidateBlock(block models.TimeBlock) error {
	if strings.TrimSpace(block.Identity) == "" {
		return fmt.Errorf("%w: empty identity", apperrors.ErrInvalidBlock)
	}

	start, err := utils.ParseTimeToMinutes(block.Start)
	if err != nil {
		return fmt.Errorf("%w: bad start time %q", apperrors.ErrInvalidBlock, block.Start)
	}
	end, err := utils.ParseTimeToMinutes(block.End)
	if err != nil {
		return fmt.Errorf("%w: bad end time %q", apperrors.ErrInvalidBlock, block.End)
	}
	if start >= end {
		return fmt.Errorf("%w: start %s is not before end %s", apperrors.ErrInvalidBlock, block.Start, block.End)
	}

	return nil
}
