package domain

import "strings"

// ResolvePlurbs maps a user-supplied identifier to matching plurbs.
//
// Matching policy, in order:
//  1. exact match against a plurb id — always unambiguous, returns that
//     one plurb even if another plurb's task happens to share the name;
//  2. case-sensitive exact match against task names;
//  3. case-insensitive exact match against task names.
//
// All plurbs whose task name matches are returned, so a task with
// several live instances yields several candidates. An empty result
// means not found; more than one means the caller must disambiguate —
// never silently pick one.
func ResolvePlurbs(identifier string, plurbs []*Plurb) []*Plurb {
	for _, p := range plurbs {
		if p.ID == identifier {
			return []*Plurb{p}
		}
	}

	var exact []*Plurb
	for _, p := range plurbs {
		if p.TaskName == identifier {
			exact = append(exact, p)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	var folded []*Plurb
	for _, p := range plurbs {
		if strings.EqualFold(p.TaskName, identifier) {
			folded = append(folded, p)
		}
	}
	return folded
}
