package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Plan string

const (
	PlanFree       Plan = "free"
	PlanStarter    Plan = "starter"
	PlanGrowth     Plan = "growth"
	PlanEnterprise Plan = "enterprise"
)

var ErrInvalidPlan = errors.New("invalid plan")

func ParsePlan(s string) (Plan, error) {
	switch p := Plan(s); p {
	case PlanFree, PlanStarter, PlanGrowth, PlanEnterprise:
		return p, nil
	}
	return "", fmt.Errorf("%w %q", ErrInvalidPlan, s)
}

// PlanTable maps a plan to its default seat limit. A plan missing from the
// table, or mapped to zero, is unlimited.
type PlanTable map[Plan]int

// DefaultPlanTable returns the seat limits used when none are configured.
func DefaultPlanTable() PlanTable {
	return PlanTable{
		PlanFree:       2,
		PlanStarter:    5,
		PlanGrowth:     15,
		PlanEnterprise: 100,
	}
}

// ParsePlanTable reads "plan:seats,plan:seats". Entries override the
// defaults; plans not named keep their default limit.
func ParsePlanTable(s string) (PlanTable, error) {
	table := DefaultPlanTable()
	for entry := range strings.SplitSeq(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, seats, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("plan table entry %q: want plan:seats", entry)
		}
		plan, err := ParsePlan(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(seats))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("plan table entry %q: seats must be a non-negative integer", entry)
		}
		table[plan] = n
	}
	return table, nil
}

// UnmarshalText lets config loaders decode CRM_PLAN_SEATS directly.
func (t *PlanTable) UnmarshalText(b []byte) error {
	parsed, err := ParsePlanTable(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
