package ui

import "testing"

func TestThemePalettesAreComplete(t *testing.T) {
	for name, theme := range map[string]Theme{"dark": themeDark(), "light": themeLight()} {
		if theme.FocusBorder == theme.Border {
			t.Errorf("%s: focus border must stand out from the resting border", name)
		}
		if theme.SelectionFg == theme.SelectionBg {
			t.Errorf("%s: selection text must be readable on the selection background", name)
		}
	}
}

func TestStatusColorFallback(t *testing.T) {
	theme := themeDark()

	if got := theme.statusTcell("status-closed"); got != theme.StatusClosed {
		t.Errorf("status-closed = %v", got)
	}
	if got := theme.statusTcell("status-unknown"); got != theme.StatusNew {
		t.Errorf("unknown class should fall back to New, got %v", got)
	}
	if got := theme.statusTag("status-partial"); got != theme.TagStatusPartial {
		t.Errorf("status-partial tag = %q", got)
	}
	if got := theme.statusTag(""); got != theme.TagStatusNew {
		t.Errorf("empty class should fall back to New tag, got %q", got)
	}
}
