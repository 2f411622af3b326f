package estimator

import "github.com/bobby-s-dev/agri-optimizer/internal/models"

// Summarize derives revenue and profit. Negative profit is a valid loss,
// not an error.
func Summarize(yieldKg, pricePerKg, normalCost, optimizedCost float64) models.Financials {
	revenue := yieldKg * pricePerKg
	return models.Financials{
		Revenue:         revenue,
		ProfitNormal:    revenue - normalCost,
		ProfitOptimized: revenue - optimizedCost,
		Savings:         normalCost - optimizedCost,
	}
}
