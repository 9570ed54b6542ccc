package procure

import (
	"context"
	"fmt"
	"time"

	"github.com/sells-group/visionflow/internal/model"
)

// Approval thresholds in dollars.
const (
	approvalFloor  = 1000.0
	vpFinanceFloor = 5000.0
	cfoFloor       = 20000.0
)

// BudgetCheckResult reports budget availability and the approval chain for a
// requested spend.
type BudgetCheckResult struct {
	BudgetAvailable  bool      `json:"budget_available"`
	AvailableBudget  float64   `json:"available_budget"`
	ApprovalRequired bool      `json:"approval_required"`
	ApprovalChain    []string  `json:"approval_chain"`
	ComplianceStatus string    `json:"compliance_status"`
	Timestamp        time.Time `json:"timestamp"`
}

// CheckBudget validates a spend against the department budget and derives the
// approval chain. Unknown departments have no budget.
func (s *Service) CheckBudget(ctx context.Context, department string, amount float64) (*BudgetCheckResult, error) {
	if department == "" {
		return nil, model.Validationf("department is required")
	}
	if amount < 0 {
		return nil, model.Validationf("amount must not be negative")
	}

	budget, _, err := s.budgets.Get(ctx, department)
	if err != nil {
		return nil, err
	}

	available := budget.Available
	budgetAvailable := available >= amount

	approvalRequired := amount > approvalFloor
	chain := []string{}
	if approvalRequired {
		chain = append(chain, fmt.Sprintf("%s Manager", department))
		if amount > vpFinanceFloor {
			chain = append(chain, "VP Finance")
		}
		if amount > cfoFloor {
			chain = append(chain, "CFO")
		}
	}

	status := "COMPLIANT"
	if !budgetAvailable {
		status = "BUDGET_EXCEEDED"
	}

	return &BudgetCheckResult{
		BudgetAvailable:  budgetAvailable,
		AvailableBudget:  available,
		ApprovalRequired: approvalRequired,
		ApprovalChain:    chain,
		ComplianceStatus: status,
		Timestamp:        time.Now().UTC(),
	}, nil
}
