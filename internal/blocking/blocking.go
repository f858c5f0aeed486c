// Package blocking assigns blocking keys to normalized records and groups
// them into blocks, so the matcher only ever compares records inside the
// same block instead of every pair in the dataset.
package blocking

import (
	"fmt"

	"github.com/ClaudioLutz/dublettenbereinigung/internal/model"
)

// Key computes the blocking key for a record using the first-applicable
// strategy from spec §4.3: plz+street, plz-only, street-only, and finally a
// phonetic fallback for records with no address at all. The phonetic codes
// enter blocking only in that last branch.
func Key(postalCode, street, givenPhonetic, surnamePhonetic string) string {
	switch {
	case postalCode != "" && street != "":
		return fmt.Sprintf("%s|%s", postalCode, street)
	case postalCode != "":
		return "plz|" + postalCode
	case street != "":
		return "str|" + street
	default:
		return fmt.Sprintf("phon|%s|%s", givenPhonetic, surnamePhonetic)
	}
}

// Blocks groups records by their BlockingKey, drops singleton groups, and
// splits any group larger than maxBlockSize into consecutive chunks. A true
// duplicate pair split across chunks by this step is an accepted
// precision/throughput trade-off (spec §4.3), not a bug.
func Blocks(records []model.NormalizedRecord, maxBlockSize int) []model.Block {
	if maxBlockSize <= 0 {
		maxBlockSize = 10000
	}

	grouped := make(map[string][]int)
	order := make([]string, 0)
	for _, r := range records {
		if _, seen := grouped[r.BlockingKey]; !seen {
			order = append(order, r.BlockingKey)
		}
		grouped[r.BlockingKey] = append(grouped[r.BlockingKey], r.ID)
	}

	blocks := make([]model.Block, 0, len(order))
	for _, key := range order {
		ids := grouped[key]
		if len(ids) < 2 {
			continue
		}
		if len(ids) <= maxBlockSize {
			blocks = append(blocks, model.Block{Key: key, IDs: ids})
			continue
		}
		for start := 0; start < len(ids); start += maxBlockSize {
			end := start + maxBlockSize
			if end > len(ids) {
				end = len(ids)
			}
			chunk := ids[start:end]
			if len(chunk) < 2 {
				continue
			}
			blocks = append(blocks, model.Block{Key: key, IDs: chunk})
		}
	}
	return blocks
}
