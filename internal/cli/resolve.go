package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/gantt/internal/domain"
)

// resolveGroup resolves a group identifier which can be a short ID
// (case-insensitive), a full UUID or a UUID prefix.
func resolveGroup(ctx context.Context, app *App, input string) (*domain.Group, error) {
	if input == "" {
		return nil, fmt.Errorf("group is required")
	}

	groups, err := app.Groups.List(ctx)
	if err != nil {
		return nil, err
	}

	// 1. Exact short ID match (case-insensitive)
	for _, g := range groups {
		if g.ShortID != "" && strings.EqualFold(g.ShortID, input) {
			return g, nil
		}
	}

	// 2. Exact UUID match
	for _, g := range groups {
		if g.ID == input {
			return g, nil
		}
	}

	// 3. UUID prefix match
	var matches []*domain.Group
	for _, g := range groups {
		if strings.HasPrefix(g.ID, input) {
			matches = append(matches, g)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("group not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("group ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveItem resolves an item identifier which can be:
//   - SHORTID#SEQ, e.g. WEB01#3
//   - a numeric seq, which requires groupFlag
//   - a full UUID or a UUID prefix
func resolveItem(ctx context.Context, app *App, input, groupFlag string) (*domain.TimelineItem, error) {
	if input == "" {
		return nil, fmt.Errorf("item is required")
	}

	if short, seqStr, ok := strings.Cut(input, "#"); ok {
		seq, err := strconv.Atoi(seqStr)
		if err != nil || seq < 1 {
			return nil, fmt.Errorf("invalid item reference %q", input)
		}
		if short == "" {
			short = groupFlag
		}
		return itemBySeq(ctx, app, short, seq)
	}

	if seq, err := strconv.Atoi(input); err == nil && seq > 0 {
		if groupFlag == "" {
			return nil, fmt.Errorf("numeric ID #%d requires group context (use --group or GROUP#%d)", seq, seq)
		}
		return itemBySeq(ctx, app, groupFlag, seq)
	}

	items, err := app.Items.List(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*domain.TimelineItem
	for _, it := range items {
		if it.ID == input {
			return it, nil
		}
		if strings.HasPrefix(it.ID, input) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("item not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("item ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func itemBySeq(ctx context.Context, app *App, group string, seq int) (*domain.TimelineItem, error) {
	if group == "" {
		return nil, fmt.Errorf("item #%d requires a group", seq)
	}
	g, err := resolveGroup(ctx, app, group)
	if err != nil {
		return nil, err
	}
	it, err := app.Items.GetBySeq(ctx, g.ID, seq)
	if err != nil {
		return nil, fmt.Errorf("item %s#%d not found: %w", g.ShortID, seq, err)
	}
	return it, nil
}

// groupIndex loads all groups keyed by ID.
func groupIndex(ctx context.Context, app *App) (map[string]*domain.Group, error) {
	groups, err := app.Groups.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]*domain.Group, len(groups))
	for _, g := range groups {
		idx[g.ID] = g
	}
	return idx, nil
}
