package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/animstore/anim"
)

type EntityInfo struct {
	ID         anim.EntityId
	Properties string
	Kind       string
	Summary    string
}

type browserCache struct {
	entities      []EntityInfo
	refreshIn     int
	sortColumn    int
	sortAscending bool
}

// refreshFrames is how many rendered frames a browser snapshot is reused for.
const refreshFrames = 15

func NewAnimationBrowser(maxEntitiesPerPage int) *AnimationBrowser {
	return &AnimationBrowser{
		cache: &browserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (ab *AnimationBrowser) Render(store *anim.Store) {
	if !imgui.BeginV("Animations", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ab.refresh(store)

	imgui.InputTextWithHint("##search", "Search...", &ab.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		ab.filterText = ""
		ab.currentPage = 0
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("AnimationTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Properties")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Value")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			ab.cache.sortColumn = int(spec.ColumnIndex())
			ab.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortEntities(ab.cache.entities, ab.cache.sortColumn, ab.cache.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		filtered := filterEntities(ab.cache.entities, ab.filterText)
		startIdx, endIdx := pageBounds(len(filtered), ab.currentPage, ab.maxEntitiesPerPage)

		for _, entity := range filtered[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := ab.hasSelection && ab.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				ab.selectedEntityId = entity.ID
				ab.hasSelection = true
			}

			imgui.TableNextColumn()
			imgui.Text(entity.Properties)

			imgui.TableNextColumn()
			imgui.Text(entity.Kind)

			imgui.TableNextColumn()
			imgui.Text(entity.Summary)
		}

		imgui.EndTable()
	}

	filtered := filterEntities(ab.cache.entities, ab.filterText)
	if len(filtered) > ab.maxEntitiesPerPage {
		totalPages := (len(filtered) + ab.maxEntitiesPerPage - 1) / ab.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", ab.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && ab.currentPage > 0 {
			ab.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && ab.currentPage < totalPages-1 {
			ab.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// Selected returns the selected entity, if any.
func (ab *AnimationBrowser) Selected() (anim.EntityId, bool) {
	return ab.selectedEntityId, ab.hasSelection
}

func (ab *AnimationBrowser) refresh(store *anim.Store) {
	if ab.cache.entities != nil && ab.cache.refreshIn > 0 {
		ab.cache.refreshIn--
		return
	}
	ab.cache.entities = entityInfos(store.States())
	ab.cache.refreshIn = refreshFrames
	sortEntities(ab.cache.entities, ab.cache.sortColumn, ab.cache.sortAscending)
}

func entityInfos(states []anim.EntityState) []EntityInfo {
	infos := make([]EntityInfo, 0, len(states))
	for _, st := range states {
		names := make([]string, len(st.Properties))
		for i, p := range st.Properties {
			names[i] = p.String()
		}

		info := EntityInfo{
			ID:         st.Id,
			Properties: strings.Join(names, ", "),
			Kind:       "-",
			Summary:    "pending",
		}
		if st.HasValue {
			info.Kind = st.Value.Kind().String()
			info.Summary = summarize(st.Value)
		}
		infos = append(infos, info)
	}
	return infos
}

func summarize(v anim.Value) string {
	switch v.Kind() {
	case anim.KindOpacity:
		return fmt.Sprintf("%.3f", v.Opacity())
	case anim.KindColor:
		return v.Color().String()
	case anim.KindTransform:
		m := v.Transform().DeviceMatrix
		return fmt.Sprintf("t=(%.1f, %.1f)", m[12], m[13])
	}
	return ""
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	slices.SortStableFunc(entities, func(a, b EntityInfo) int {
		var c int
		switch column {
		case 1:
			c = strings.Compare(a.Properties, b.Properties)
		case 2:
			c = strings.Compare(a.Kind, b.Kind)
		case 3:
			c = strings.Compare(a.Summary, b.Summary)
		}
		if c == 0 {
			switch {
			case a.ID < b.ID:
				c = -1
			case a.ID > b.ID:
				c = 1
			}
		}
		if !ascending {
			return -c
		}
		return c
	})
}

func filterEntities(entities []EntityInfo, filterText string) []EntityInfo {
	if filterText == "" {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(filterText)
	for _, entity := range entities {
		idStr := fmt.Sprintf("%d", entity.ID)
		if !strings.Contains(idStr, filterLower) &&
			!strings.Contains(entity.Properties, filterLower) &&
			!strings.Contains(entity.Kind, filterLower) {
			continue
		}
		filtered = append(filtered, entity)
	}
	return filtered
}

func pageBounds(total, page, perPage int) (int, int) {
	start := min(page*perPage, total)
	end := min(start+perPage, total)
	return start, end
}
