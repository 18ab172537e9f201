package ui

import "github.com/gdamore/tcell/v2"

// Theme defines the color tokens used across widgets and text tags.
type Theme struct {
	// Widget colors
	Bg          tcell.Color
	Surface     tcell.Color
	Border      tcell.Color
	FocusBorder tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	TextPrimary tcell.Color
	TextMuted   tcell.Color
	Accent      tcell.Color
	Success     tcell.Color
	Warning     tcell.Color
	Error       tcell.Color

	// Table colors
	TableHeader   tcell.Color
	TableHeaderBg tcell.Color
	TableZebra1   tcell.Color
	TableZebra2   tcell.Color

	// Status badge colors keyed by workflow stage
	StatusNew      tcell.Color
	StatusFollowUp tcell.Color
	StatusPartial  tcell.Color
	StatusClosed   tcell.Color

	// Text tag colors (for tview dynamic color markup)
	TagTextPrimary string
	TagMuted       string
	TagAccent      string
	TagSuccess     string
	TagWarning     string
	TagError       string

	TagStatusNew      string
	TagStatusFollowUp string
	TagStatusPartial  string
	TagStatusClosed   string
}

// helpers
func hex(s string) tcell.Color { return tcell.GetColor(s) }

func themeDark() Theme {
	return Theme{
		Bg:          hex("#0e1116"),
		Surface:     hex("#12161e"),
		Border:      hex("#2b3240"),
		FocusBorder: hex("#4aa8ff"),
		SelectionBg: hex("#2b3240"),
		SelectionFg: hex("#cfd8e3"),
		TextPrimary: hex("#e6edf3"),
		TextMuted:   hex("#8a939f"),
		Accent:      hex("#2dd4bf"),
		Success:     hex("#22c55e"),
		Warning:     hex("#f59e0b"),
		Error:       hex("#ef4444"),

		TableHeader:   hex("#eab308"),
		TableHeaderBg: hex("#1a2332"),
		TableZebra1:   hex("#161c27"),
		TableZebra2:   hex("#121823"),

		StatusNew:      hex("#87afff"),
		StatusFollowUp: hex("#ffd75f"),
		StatusPartial:  hex("#ffaf5f"),
		StatusClosed:   hex("#87ffaf"),

		TagTextPrimary: "#e6edf3",
		TagMuted:       "#8a939f",
		TagAccent:      "#2dd4bf",
		TagSuccess:     "#22c55e",
		TagWarning:     "#f59e0b",
		TagError:       "#ef4444",

		TagStatusNew:      "#87afff",
		TagStatusFollowUp: "#ffd75f",
		TagStatusPartial:  "#ffaf5f",
		TagStatusClosed:   "#87ffaf",
	}
}

func themeLight() Theme {
	return Theme{
		Bg:          hex("#f6f8fa"),
		Surface:     hex("#ffffff"),
		Border:      hex("#d0d7de"),
		FocusBorder: hex("#1f6feb"),
		SelectionBg: hex("#e2e8f0"),
		SelectionFg: hex("#111827"),
		TextPrimary: hex("#111827"),
		TextMuted:   hex("#6b7280"),
		Accent:      hex("#2563eb"),
		Success:     hex("#15803d"),
		Warning:     hex("#b45309"),
		Error:       hex("#b91c1c"),

		TableHeader:   hex("#1f2937"),
		TableHeaderBg: hex("#e5e7eb"),
		TableZebra1:   hex("#ffffff"),
		TableZebra2:   hex("#f8fafc"),

		StatusNew:      hex("#2563eb"),
		StatusFollowUp: hex("#ca8a04"),
		StatusPartial:  hex("#f97316"),
		StatusClosed:   hex("#16a34a"),

		TagTextPrimary: "#111827",
		TagMuted:       "#6b7280",
		TagAccent:      "#2563eb",
		TagSuccess:     "#15803d",
		TagWarning:     "#b45309",
		TagError:       "#b91c1c",

		TagStatusNew:      "#2563eb",
		TagStatusFollowUp: "#ca8a04",
		TagStatusPartial:  "#f97316",
		TagStatusClosed:   "#16a34a",
	}
}

// statusTcell returns the badge widget color for a badge style name,
// defaulting to the New style for anything unrecognized.
func (t Theme) statusTcell(class string) tcell.Color {
	switch class {
	case "status-followup":
		return t.StatusFollowUp
	case "status-partial":
		return t.StatusPartial
	case "status-closed":
		return t.StatusClosed
	}
	return t.StatusNew
}

// statusTag returns the text tag color for a badge style name.
func (t Theme) statusTag(class string) string {
	switch class {
	case "status-followup":
		return t.TagStatusFollowUp
	case "status-partial":
		return t.TagStatusPartial
	case "status-closed":
		return t.TagStatusClosed
	}
	return t.TagStatusNew
}
