package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/gantt/internal/depgraph"
	"github.com/alexanderramin/gantt/internal/domain"
)

// ValidateImportSchema checks the seed for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	groupRefs := make(map[string]bool)
	errs = append(errs, validateGroups(schema.Groups, groupRefs)...)

	items := make(map[string]ItemImport)
	errs = append(errs, validateItems(schema.Items, groupRefs, items)...)
	errs = append(errs, validateParents(schema.Items, items)...)
	errs = append(errs, validateDependencies(schema.Items, items)...)
	errs = append(errs, validateHolidays(schema.Holidays)...)

	return errs
}

func validateGroups(groups []GroupImport, refs map[string]bool) []error {
	var errs []error
	shortIDs := make(map[string]bool)

	for i, g := range groups {
		prefix := fmt.Sprintf("groups[%d]", i)

		if g.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[g.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, g.Ref))
		} else {
			refs[g.Ref] = true
		}

		probe := domain.Group{Name: g.Name, Status: domain.GroupStatus(g.Status), ShortID: normalizeShortID(g.ShortID)}
		if err := probe.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", prefix, err))
		}
		if probe.ShortID != "" {
			if shortIDs[probe.ShortID] {
				errs = append(errs, fmt.Errorf("%s.short_id: duplicate short id %q", prefix, probe.ShortID))
			}
			shortIDs[probe.ShortID] = true
		}
	}
	return errs
}

func validateItems(items []ItemImport, groupRefs map[string]bool, byRef map[string]ItemImport) []error {
	var errs []error

	for i, it := range items {
		prefix := fmt.Sprintf("items[%d]", i)

		if it.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if _, dup := byRef[it.Ref]; dup {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, it.Ref))
		} else {
			byRef[it.Ref] = it
		}

		if it.GroupRef == "" {
			errs = append(errs, fmt.Errorf("%s.group_ref is required", prefix))
		} else if !groupRefs[it.GroupRef] {
			errs = append(errs, fmt.Errorf("%s.group_ref: ref %q not found in groups", prefix, it.GroupRef))
		}

		if it.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if it.Kind == "" {
			errs = append(errs, fmt.Errorf("%s.kind is required", prefix))
		} else if !domain.ValidItemKinds[it.Kind] {
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q", prefix, it.Kind))
		}
		if it.Status != "" && !domain.ValidItemStatuses[it.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, it.Status))
		}
		if it.Progress != nil && (*it.Progress < 0 || *it.Progress > 1) {
			errs = append(errs, fmt.Errorf("%s.progress: %.2f outside 0..1", prefix, *it.Progress))
		}

		errs = append(errs, validateSpan(prefix, it)...)
	}
	return errs
}

func validateSpan(prefix string, it ItemImport) []error {
	start, startErr := parseRequiredDate(prefix+".start", it.Start)
	if startErr != nil {
		return []error{startErr}
	}
	if it.End == "" {
		if it.Kind != string(domain.KindMilestone) {
			return []error{fmt.Errorf("%s.end is required", prefix)}
		}
		return nil
	}
	end, endErr := parseRequiredDate(prefix+".end", it.End)
	if endErr != nil {
		return []error{endErr}
	}
	if end.Before(start) {
		return []error{fmt.Errorf("%s: end %s precedes start %s", prefix, it.End, it.Start)}
	}
	if it.Kind == string(domain.KindMilestone) && !start.Equal(end) {
		return []error{fmt.Errorf("%s: milestone must start and end on the same day", prefix)}
	}
	return nil
}

// validateParents requires parent_ref to name a stage of the same group.
// Stages themselves cannot be nested.
func validateParents(items []ItemImport, byRef map[string]ItemImport) []error {
	var errs []error
	for i, it := range items {
		if it.ParentRef == nil || *it.ParentRef == "" {
			continue
		}
		prefix := fmt.Sprintf("items[%d].parent_ref", i)
		parent, ok := byRef[*it.ParentRef]
		switch {
		case it.Kind == string(domain.KindStage):
			errs = append(errs, fmt.Errorf("%s: stages cannot have a parent", prefix))
		case !ok:
			errs = append(errs, fmt.Errorf("%s: ref %q not found in items", prefix, *it.ParentRef))
		case parent.Kind != string(domain.KindStage):
			errs = append(errs, fmt.Errorf("%s: %q is not a stage", prefix, *it.ParentRef))
		case parent.GroupRef != it.GroupRef:
			errs = append(errs, fmt.Errorf("%s: %q belongs to another group", prefix, *it.ParentRef))
		}
	}
	return errs
}

// validateDependencies checks references and rejects cycles by inserting
// every edge into a dependency graph, which refuses cycle-closing edges.
func validateDependencies(items []ItemImport, byRef map[string]ItemImport) []error {
	var errs []error
	g := depgraph.New()
	for _, it := range items {
		if it.Ref != "" {
			g.AddNode(it.Ref)
		}
	}

	for i, it := range items {
		for j, dep := range it.DependsOn {
			prefix := fmt.Sprintf("items[%d].depends_on[%d]", i, j)
			switch {
			case dep == it.Ref:
				errs = append(errs, fmt.Errorf("%s: self-dependency on %q", prefix, dep))
			case byRef[dep].Ref == "":
				errs = append(errs, fmt.Errorf("%s: ref %q not found in items", prefix, dep))
			case it.Ref == "":
				// already reported
			case !g.AddDependency(it.Ref, dep):
				errs = append(errs, fmt.Errorf("%s: circular dependency detected involving %q and %q", prefix, it.Ref, dep))
			}
		}
	}
	return errs
}

func validateHolidays(holidays []HolidayImport) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, h := range holidays {
		prefix := fmt.Sprintf("holidays[%d].day", i)
		if _, err := parseRequiredDate(prefix, h.Day); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[h.Day] {
			errs = append(errs, fmt.Errorf("%s: duplicate day %q", prefix, h.Day))
		}
		seen[h.Day] = true
	}
	return errs
}

func parseRequiredDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse(domain.DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, s)
	}
	return t, nil
}
