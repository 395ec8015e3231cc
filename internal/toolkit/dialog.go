package toolkit

// DialogType selects the file chooser mode.
type DialogType int

const (
	OpenFileDialog DialogType = iota
	OpenFilesDialog
	OpenFolderDialog
	SaveFileDialog
)

// FileFilter is one selectable filter entry: a human-readable label and
// its glob patterns.
type FileFilter struct {
	Label    string
	Patterns []string
}

// FileDialogOptions parameterizes ChooseFiles.
type FileDialogOptions struct {
	Type      DialogType
	Title     string
	Directory string
	// AllowMultiple only applies to OpenFilesDialog.
	AllowMultiple bool
	// SaveFilename pre-fills the name field for SaveFileDialog.
	SaveFilename string
	Filters      []FileFilter
}

// Strings are the user-visible dialog labels. The embedding application
// substitutes localized values; these are the fallbacks.
type Strings struct {
	QuitConfirmation string
	OpenFile         string
	OpenFiles        string
	OpenFolder       string
	SaveFile         string
}

// DefaultStrings returns the untranslated labels.
func DefaultStrings() Strings {
	return Strings{
		QuitConfirmation: "Do you want to close the window?",
		OpenFile:         "Open file",
		OpenFiles:        "Open files",
		OpenFolder:       "Open folder",
		SaveFile:         "Save file",
	}
}
