package preview

import (
	"testing"

	"github.com/autocore-io/autocore/internal/gateway/core/model"
)

func TestShouldShowItemPrecedence(t *testing.T) {
	item := &model.ScreenItem{
		Visible:       boolPtr(true),
		VisibleMobile: boolPtr(false),
	}

	if ShouldShowItem(item, ClassMobile) {
		t.Error("mobile override should win over generic visible")
	}
	if !ShouldShowItem(item, ClassWeb) {
		t.Error("web has no override, generic visible applies")
	}

	generic := &model.ScreenItem{Visible: boolPtr(false)}
	if ShouldShowItem(generic, ClassDisplaySmall) {
		t.Error("generic visible=false should hide on all classes")
	}

	if !ShouldShowItem(&model.ScreenItem{}, ClassDisplayLarge) {
		t.Error("no fields set defaults to visible")
	}
}

func TestShouldShowItemInactiveNeverRenders(t *testing.T) {
	item := &model.ScreenItem{
		IsActive:      boolPtr(false),
		Visible:       boolPtr(true),
		VisibleMobile: boolPtr(true),
	}
	if ShouldShowItem(item, ClassMobile) {
		t.Error("inactive item rendered")
	}
}

func TestItemSizePrecedence(t *testing.T) {
	item := &model.ScreenItem{
		Size:             "large",
		SizeDisplaySmall: "small",
	}

	if got := ItemSize(item, ClassDisplaySmall); got != "small" {
		t.Errorf("size = %q, want small", got)
	}
	if got := ItemSize(item, ClassMobile); got != "large" {
		t.Errorf("size = %q, want large", got)
	}
	if got := ItemSize(&model.ScreenItem{}, ClassWeb); got != "normal" {
		t.Errorf("size = %q, want normal", got)
	}
}

func TestScreenColumnsPrecedence(t *testing.T) {
	s := &model.Screen{
		Columns:       intPtr(3),
		ColumnsMobile: intPtr(1),
	}

	if got := ScreenColumns(s, ClassMobile); got != 1 {
		t.Errorf("columns = %d, want 1", got)
	}
	if got := ScreenColumns(s, ClassDisplayLarge); got != 3 {
		t.Errorf("columns = %d, want 3", got)
	}
	if got := ScreenColumns(&model.Screen{}, ClassWeb); got != 2 {
		t.Errorf("columns = %d, want 2", got)
	}
}

func TestAdaptedAccessorsUseSource(t *testing.T) {
	snap := &model.ConfigSnapshot{
		Screens: []model.Screen{{
			ColumnsWeb: intPtr(4),
			Items: []model.ScreenItem{{
				ItemType:   "button",
				Name:       "Farol",
				VisibleWeb: boolPtr(false),
				SizeWeb:    "wide",
			}},
		}},
	}

	m := NewAdapter(fixedRand{0}).Adapt(snap)
	screen := m.Screens[0]

	if screen.Columns(ClassWeb) != 4 {
		t.Errorf("columns = %d, want 4", screen.Columns(ClassWeb))
	}
	if screen.Items[0].Visible(ClassWeb) {
		t.Error("web override should hide item")
	}
	if screen.Items[0].Size(ClassWeb) != "wide" {
		t.Errorf("size = %q, want wide", screen.Items[0].Size(ClassWeb))
	}
}
