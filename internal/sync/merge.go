package sync

import (
	"sort"

	"focusdo/internal/model"
)

// Merge reconciles the local collection with a remote snapshot. The remote
// record wins whenever its last-update timestamp is greater than or equal
// to the local one, so ties converge on the remote copy across devices.
// Local records the remote has never seen come back in localOnly for
// upload.
func Merge(local, remoteTasks []model.Task) (merged, localOnly []model.Task) {
	// Local duplicates should not occur, but tolerate them: keep the
	// newer copy per identifier.
	byID := make(map[string]model.Task, len(local))
	order := make([]string, 0, len(local))
	for _, t := range local {
		prev, ok := byID[t.ID]
		if !ok {
			byID[t.ID] = t
			order = append(order, t.ID)
			continue
		}
		if t.UpdatedAt.After(prev.UpdatedAt) {
			byID[t.ID] = t
		}
	}

	remoteIDs := make(map[string]bool, len(remoteTasks))
	for _, rt := range remoteTasks {
		remoteIDs[rt.ID] = true
		lt, ok := byID[rt.ID]
		if !ok {
			byID[rt.ID] = rt
			order = append(order, rt.ID)
			continue
		}
		if !rt.UpdatedAt.Before(lt.UpdatedAt) {
			byID[rt.ID] = rt
		}
	}

	merged = make([]model.Task, 0, len(order))
	for _, id := range order {
		merged = append(merged, byID[id])
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].UpdatedAt.After(merged[j].UpdatedAt)
	})

	for _, id := range order {
		if !remoteIDs[id] {
			localOnly = append(localOnly, byID[id])
		}
	}
	return merged, localOnly
}

// MergeCategories unions the local and remote category lists by
// identifier. The remote copy wins on a newer-or-equal update timestamp;
// categories the remote has never seen come back in localOnly for upload.
func MergeCategories(local, remoteCategories []model.Category) (merged, localOnly []model.Category) {
	byID := make(map[string]model.Category, len(local))
	order := make([]string, 0, len(local))
	for _, c := range local {
		if _, ok := byID[c.ID]; !ok {
			byID[c.ID] = c
			order = append(order, c.ID)
		}
	}

	remoteIDs := make(map[string]bool, len(remoteCategories))
	for _, rc := range remoteCategories {
		remoteIDs[rc.ID] = true
		lc, ok := byID[rc.ID]
		if !ok {
			byID[rc.ID] = rc
			order = append(order, rc.ID)
			continue
		}
		if !rc.UpdatedAt.Before(lc.UpdatedAt) {
			byID[rc.ID] = rc
		}
	}

	for _, id := range order {
		merged = append(merged, byID[id])
		if !remoteIDs[id] {
			localOnly = append(localOnly, byID[id])
		}
	}
	return merged, localOnly
}

// ResolveCategories attaches the current category value to any task that
// carries a category identifier without an embedded category.
func ResolveCategories(tasks []model.Task, categories []model.Category) {
	if len(categories) == 0 {
		return
	}
	byID := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	for i := range tasks {
		if tasks[i].Category != nil || tasks[i].CategoryID == "" {
			continue
		}
		if c, ok := byID[tasks[i].CategoryID]; ok {
			v := c
			tasks[i].Category = &v
		}
	}
}
