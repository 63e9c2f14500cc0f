package dispatch

import (
	"encoding/json"
	"fmt"

	"github.com/meridian-erp/meridian/internal/shared"
)

// DecodeParams decodes the argument at idx into target. Arguments arrive as
// the loose shapes JSON decoding produces, so the value is round-tripped
// through JSON to fill the typed struct.
func DecodeParams(args []any, idx int, target any) error {
	if idx >= len(args) {
		return fmt.Errorf("%w: argument %d missing", shared.ErrInvalidArgument, idx)
	}
	raw, err := json.Marshal(args[idx])
	if err != nil {
		return fmt.Errorf("%w: argument %d: %v", shared.ErrInvalidArgument, idx, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: argument %d: %v", shared.ErrInvalidArgument, idx, err)
	}
	return nil
}
