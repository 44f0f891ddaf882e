package importer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/google/uuid"
)

// Generated holds the domain objects produced from a seed, ready for
// persistence. Items are ordered so every stage precedes its children.
type Generated struct {
	Groups       []*domain.Group
	Items        []*domain.TimelineItem
	Dependencies []domain.DependencyEdge
	Holidays     []domain.Holiday
}

// Convert transforms a validated ImportSchema into domain objects.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*Generated, error) {
	now := time.Now().UTC().Truncate(time.Second)
	out := &Generated{}

	groupIDs := make(map[string]string, len(schema.Groups)) // ref -> UUID
	for _, g := range schema.Groups {
		group := &domain.Group{
			ID:         uuid.New().String(),
			ShortID:    normalizeShortID(g.ShortID),
			Name:       g.Name,
			Status:     domain.GroupStatus(domain.CoalesceStr(g.Status, string(domain.GroupActive))),
			OrderIndex: g.Order,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		groupIDs[g.Ref] = group.ID
		out.Groups = append(out.Groups, group)
	}

	itemIDs := make(map[string]string, len(schema.Items))
	for _, it := range schema.Items {
		itemIDs[it.Ref] = uuid.New().String()
	}

	seqByGroup := make(map[string]int)
	for _, it := range schema.Items {
		groupID, ok := groupIDs[it.GroupRef]
		if !ok {
			return nil, fmt.Errorf("group_ref %q not found for item %q", it.GroupRef, it.Ref)
		}
		start, err := domain.ParseDay(it.Start)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", it.Ref, err)
		}
		end := start
		if it.End != "" {
			if end, err = domain.ParseDay(it.End); err != nil {
				return nil, fmt.Errorf("item %q: %w", it.Ref, err)
			}
		}

		var parentID *string
		if it.ParentRef != nil && *it.ParentRef != "" {
			pid, ok := itemIDs[*it.ParentRef]
			if !ok {
				return nil, fmt.Errorf("parent_ref %q not found for item %q", *it.ParentRef, it.Ref)
			}
			parentID = &pid
		}

		deps := make([]string, 0, len(it.DependsOn))
		for _, ref := range it.DependsOn {
			depID, ok := itemIDs[ref]
			if !ok {
				return nil, fmt.Errorf("depends_on %q not found for item %q", ref, it.Ref)
			}
			deps = append(deps, depID)
			out.Dependencies = append(out.Dependencies, domain.DependencyEdge{FromID: depID, ToID: itemIDs[it.Ref]})
		}

		seqByGroup[groupID]++
		out.Items = append(out.Items, &domain.TimelineItem{
			ID:           itemIDs[it.Ref],
			Seq:          seqByGroup[groupID],
			Kind:         domain.ItemKind(it.Kind),
			GroupID:      groupID,
			ParentID:     parentID,
			Name:         it.Name,
			StartDate:    start,
			EndDate:      end,
			Progress:     domain.Float64FromPtrWithDefault(0, it.Progress),
			Status:       domain.ItemStatus(domain.CoalesceStr(it.Status, string(domain.StatusTodo))),
			Assignee:     it.Assignee,
			OrderIndex:   it.Order,
			Dependencies: deps,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	// Parents must be stored before the children that reference them.
	sort.SliceStable(out.Items, func(i, j int) bool {
		return out.Items[i].ParentID == nil && out.Items[j].ParentID != nil
	})

	for _, h := range schema.Holidays {
		day, err := domain.ParseDay(h.Day)
		if err != nil {
			return nil, fmt.Errorf("holiday: %w", err)
		}
		out.Holidays = append(out.Holidays, domain.Holiday{Day: day, Name: h.Name})
	}

	return out, nil
}

func normalizeShortID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
