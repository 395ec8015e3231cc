//go:build gtk

package gtk

/*
#cgo pkg-config: gtk4
#include <gtk/gtk.h>
#include <stdlib.h>

// gtk_alert_dialog_new is variadic, which gotk4 does not generate.
static GtkAlertDialog* create_alert_dialog(const char* message) {
    return gtk_alert_dialog_new("%s", message);
}
*/
import "C"

import (
	"context"
	"unsafe"

	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"

	"github.com/bnema/webpane/internal/toolkit"
)

// Dialogs implements the modal primitives. Both calls block the loop
// thread via a nested main loop until the user responds, which is safe
// because they only run inside loop callbacks.
type Dialogs struct {
	parent *gtk.Window
	logger zerolog.Logger
}

func newAlertDialog(message string) *gtk.AlertDialog {
	cstr := C.CString(message)
	defer C.free(unsafe.Pointer(cstr))

	cDialog := C.create_alert_dialog(cstr)
	if cDialog == nil {
		return nil
	}
	obj := coreglib.AssumeOwnership(unsafe.Pointer(cDialog))
	return &gtk.AlertDialog{Object: obj}
}

// Confirm shows a modal OK/Cancel prompt and reports acceptance.
func (d *Dialogs) Confirm(title, message string) bool {
	dialog := newAlertDialog(message)
	if dialog == nil {
		d.logger.Error().Msg("create alert dialog failed")
		return false
	}
	dialog.SetDetail(title)
	dialog.SetModal(true)
	dialog.SetButtons([]string{"Cancel", "OK"})
	dialog.SetDefaultButton(1)
	dialog.SetCancelButton(0)

	nested := glib.NewMainLoop(nil, false)
	accepted := false
	dialog.Choose(context.Background(), d.parent, func(res gio.AsyncResulter) {
		idx, err := dialog.ChooseFinish(res)
		accepted = err == nil && idx == 1
		nested.Quit()
	})
	nested.Run()
	return accepted
}

// ChooseFiles runs a gtk.FileDialog in the requested mode. ok is false
// on cancel.
func (d *Dialogs) ChooseFiles(opts toolkit.FileDialogOptions) ([]string, bool) {
	dialog := gtk.NewFileDialog()
	dialog.SetTitle(opts.Title)
	dialog.SetModal(true)

	if opts.Directory != "" {
		dialog.SetInitialFolder(gio.NewFileForPath(opts.Directory))
	}
	if opts.Type == toolkit.SaveFileDialog && opts.SaveFilename != "" {
		dialog.SetInitialName(opts.SaveFilename)
	}
	if len(opts.Filters) > 0 {
		filters := gio.NewListStore(coreglib.TypeObject)
		for _, spec := range opts.Filters {
			f := gtk.NewFileFilter()
			f.SetName(spec.Label)
			for _, pattern := range spec.Patterns {
				f.AddPattern(pattern)
			}
			filters.Append(f.Object)
		}
		dialog.SetFilters(filters)
	}

	nested := glib.NewMainLoop(nil, false)
	var paths []string
	chose := false
	done := func(p []string, ok bool) {
		paths, chose = p, ok
		nested.Quit()
	}

	ctx := context.Background()
	switch opts.Type {
	case toolkit.OpenFilesDialog:
		if opts.AllowMultiple {
			dialog.OpenMultiple(ctx, d.parent, func(res gio.AsyncResulter) {
				files, err := dialog.OpenMultipleFinish(res)
				if err != nil {
					done(nil, false)
					return
				}
				done(listFilePaths(files), true)
			})
			break
		}
		fallthrough
	case toolkit.OpenFileDialog:
		dialog.Open(ctx, d.parent, func(res gio.AsyncResulter) {
			file, err := dialog.OpenFinish(res)
			if err != nil || file == nil {
				done(nil, false)
				return
			}
			done([]string{file.Path()}, true)
		})
	case toolkit.OpenFolderDialog:
		dialog.SelectFolder(ctx, d.parent, func(res gio.AsyncResulter) {
			folder, err := dialog.SelectFolderFinish(res)
			if err != nil || folder == nil {
				done(nil, false)
				return
			}
			done([]string{folder.Path()}, true)
		})
	case toolkit.SaveFileDialog:
		dialog.Save(ctx, d.parent, func(res gio.AsyncResulter) {
			file, err := dialog.SaveFinish(res)
			if err != nil || file == nil {
				done(nil, false)
				return
			}
			done([]string{file.Path()}, true)
		})
	}

	nested.Run()
	return paths, chose
}

// listFilePaths collects paths from a gio file list in selection order.
func listFilePaths(files gio.ListModeller) []string {
	n := files.NItems()
	paths := make([]string, 0, n)
	for i := uint(0); i < n; i++ {
		obj := files.Item(i)
		if file, ok := obj.Cast().(*gio.File); ok {
			paths = append(paths, file.Path())
		}
	}
	return paths
}
