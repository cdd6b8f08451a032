package jobs

import (
	"context"

	"library-backend/internal/domain"
	"library-backend/internal/logger"
)

// RecalculateFines sweeps every patron in the directory and recomputes
// their fine balance at the role's rate. Balances are also recomputed on
// demand per operation; the nightly sweep keeps idle accounts current.
func (jr *JobRunner) RecalculateFines() {
	jr.runWithRecovery("RecalculateFines", func() {
		ctx := context.Background()

		patrons, err := jr.directory.ListPatrons(ctx)
		if err != nil {
			logger.Error("Failed to list patrons for fine sweep", "error", err)
			return
		}

		swept := 0
		var total int32
		for i := range patrons {
			if patrons[i].Role == domain.RoleLibrarian {
				continue
			}
			balance, err := jr.accounts.CalculateFines(ctx, &patrons[i])
			if err != nil {
				logger.Error("Failed to recalculate fines", "patron_id", patrons[i].ID, "error", err)
				continue
			}
			if balance > 0 {
				logger.Debug("Outstanding fines", "patron_id", patrons[i].ID, "balance", balance)
			}
			total += balance
			swept++
		}

		logger.Info("Recalculated fines", "patrons", swept, "total_outstanding", total)
	})
}
