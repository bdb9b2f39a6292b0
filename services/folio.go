package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bonaparte-uniformes/bonaparte-api/repository"
)

const folioPadWidth = 4

// NextFolio produces the folio for a new pedido. Numbering restarts each
// calendar year: PREFIX-2025-0001, PREFIX-2025-0002, ... The counter follows
// the highest assigned folio, not the row count, so deleting older pedidos
// does not make a folio come back. Generation never fails; when the last
// sequence cannot be determined it restarts at 1.
func NextFolio(store repository.Store, prefix string, now time.Time) string {
	yearPrefix := fmt.Sprintf("%s-%d-", prefix, now.Year())

	seq := 1
	last, err := store.LastFolio(yearPrefix)
	if err != nil {
		zap.S().Warnw("folio lookup failed, restarting sequence", "prefix", yearPrefix, "error", err)
	} else if last != "" {
		if n, err := strconv.Atoi(strings.TrimPrefix(last, yearPrefix)); err == nil {
			seq = n + 1
		}
	}

	return fmt.Sprintf("%s%0*d", yearPrefix, folioPadWidth, seq)
}
