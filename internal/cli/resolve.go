package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveID matches input against known IDs: exact match first, then a
// unique prefix.
func resolveID(kind, input string, ids []string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}

	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	plans, err := app.Plans.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(plans))
	for i, p := range plans {
		ids[i] = p.ID
	}
	return resolveID("plan", input, ids)
}

func resolveSimulationID(ctx context.Context, app *App, input string) (string, error) {
	sims, err := app.Simulations.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(sims))
	for i, s := range sims {
		ids[i] = s.ID
	}
	return resolveID("simulation", input, ids)
}
