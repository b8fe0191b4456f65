package cmd

import (
	"fmt"
	"os"

	"github.com/ca-ayumi/fast-food-order-service/internal/core/domain/model/order"

	"gopkg.in/yaml.v3"
)

// KitchenTransitionsName selects order.KitchenTransitions instead of a file.
const KitchenTransitionsName = "kitchen"

// LoadTransitions reads a transition table like
//
//	RECEIVED: [PREPARING, CANCELLED]
//	PREPARING: [READY, CANCELLED]
//
// An empty path returns nil, which allows every transition.
func LoadTransitions(path string) (order.Transitions, error) {
	switch path {
	case "":
		return nil, nil
	case KitchenTransitionsName:
		return order.KitchenTransitions(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transitions file: %w", err)
	}
	return ParseTransitions(data)
}

// ParseTransitions decodes the YAML form accepted by LoadTransitions.
// Status names are matched exactly.
func ParseTransitions(data []byte) (order.Transitions, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse transitions: %w", err)
	}

	table := make(order.Transitions, len(raw))
	for from, targets := range raw {
		current, err := order.ParseStatus(from)
		if err != nil {
			return nil, fmt.Errorf("transitions key %q: %w", from, err)
		}
		next, err := order.ParseStatuses(targets)
		if err != nil {
			return nil, fmt.Errorf("transitions from %s: %w", from, err)
		}
		table[current] = next
	}
	return table, nil
}
