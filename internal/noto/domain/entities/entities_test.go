package entities_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noto/internal/noto/domain/entities"
)

func TestParseEnums(t *testing.T) {
	theme, ok := entities.ParseTheme("SystemBlack")
	assert.True(t, ok)
	assert.Equal(t, entities.ThemeSystemBlack, theme)

	_, ok = entities.ParseTheme("systemblack")
	assert.False(t, ok, "parsing is case sensitive")

	_, ok = entities.ParseFont("")
	assert.False(t, ok)

	for _, v := range entities.VaultTimeouts {
		parsed, ok := entities.ParseVaultTimeout(string(v))
		assert.True(t, ok)
		assert.Equal(t, v, parsed)
	}

	color, ok := entities.ParseNotoColor("DeepPurple")
	assert.True(t, ok)
	assert.Equal(t, entities.NotoColorDeepPurple, color)
}

func TestDefaultSettingsConfig(t *testing.T) {
	cfg := entities.DefaultSettingsConfig()

	assert.Equal(t, entities.ThemeSystem, cfg.Theme)
	assert.Equal(t, entities.FontNunito, cfg.Font)
	assert.Equal(t, entities.LanguageSystem, cfg.Language)
	assert.Nil(t, cfg.VaultPasscode)
	assert.Equal(t, entities.VaultTimeoutImmediately, cfg.VaultTimeout)
	assert.Nil(t, cfg.ScheduledVaultTimeout)
	assert.False(t, cfg.IsVaultOpen)
	assert.False(t, cfg.IsBioAuthEnabled)
	assert.Equal(t, entities.DefaultLastVersion, cfg.LastVersion)
	assert.Equal(t, entities.LibraryListSortingCreationDate, cfg.SortingType)
	assert.Equal(t, entities.SortingOrderDescending, cfg.SortingOrder)
	assert.False(t, cfg.IsCollapseToolbar)
	assert.False(t, cfg.IsShowNotesCount)
	assert.Equal(t, entities.InboxLibraryID, cfg.MainLibraryID)
}

func TestDefaultWidgetSettings(t *testing.T) {
	w := entities.DefaultWidgetSettings(7, 3)

	assert.False(t, w.IsCreated)
	assert.True(t, w.IsHeaderEnabled)
	assert.True(t, w.IsEditButtonEnabled)
	assert.True(t, w.IsAppIconEnabled)
	assert.True(t, w.IsNewItemButtonEnabled)
	assert.True(t, w.IsNotesCountEnabled)
	assert.Equal(t, 16, w.Radius)
	assert.Empty(t, w.SelectedLabelIDs)
}

func TestNoteMatches(t *testing.T) {
	note := entities.NewNote(1, "Shopping List", "Milk and eggs")

	tests := []struct {
		term string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"shopping", true},
		{"EGGS", true},
		{"bread", false},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, note.Matches(tt.term))
		})
	}
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", entities.NewValidationError("title", entities.MsgTitleEmpty))

	vErr, ok := entities.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "title", vErr.Field)
	assert.Equal(t, "title: Title can't be empty", vErr.Error())

	_, ok = entities.AsValidationError(fmt.Errorf("other"))
	assert.False(t, ok)
}

func TestLibraryHelpers(t *testing.T) {
	lib := entities.NewLibrary(0, 3)
	lib.Title = "Work"

	assert.True(t, lib.HasTitle("  Work "))
	assert.False(t, lib.HasTitle("work"))
	assert.False(t, lib.IsInbox())
	assert.Equal(t, entities.NotoColorGray, lib.Color)
}
