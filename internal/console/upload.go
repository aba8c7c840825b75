package console

import (
	"bytes"
	"io"
)

// FileHandle gives access to the content of a selected file.
type FileHandle interface {
	Open() (io.ReadCloser, error)
}

// PendingFile is the file chosen for analysis.
type PendingFile struct {
	Name      string
	SizeBytes int64
	Handle    FileHandle
}

// BytesFile is a FileHandle over an in-memory copy of a file.
type BytesFile []byte

func (b BytesFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

// UploadController owns the pending file slot.
type UploadController struct {
	c       *Console
	pending *PendingFile
}

// SelectFile replaces the pending file. Picker and drop both land here; no
// type or size check is made.
func (u *UploadController) SelectFile(file PendingFile) {
	u.c.loop.Do(func() { u.selectFile(file) })
}

// ClearFile empties the slot. Clearing an empty slot changes nothing further.
func (u *UploadController) ClearFile() {
	u.c.loop.Do(u.clearFile)
}

// Pending returns a copy of the pending file, if any.
func (u *UploadController) Pending() (PendingFile, bool) {
	var (
		f  PendingFile
		ok bool
	)
	u.c.loop.Do(func() {
		if u.pending != nil {
			f, ok = *u.pending, true
		}
	})
	return f, ok
}

func (u *UploadController) selectFile(file PendingFile) {
	c := u.c
	u.pending = &file

	preview, err := c.renderer.FilePreview(file.Name, file.SizeBytes)
	if err != nil {
		c.log.Errorw("failed to render file preview", "file", file.Name, "error", err)
	}
	c.page.setHTML(RoleFilePreview, preview)
	c.page.show(RoleFilePreview)
	c.page.enable(RoleAnalyzeAction)

	c.Analysis.clearResult()
	c.view.enter(ViewState{Kind: ViewUpload})
	c.log.Debugw("file selected", "file", file.Name, "size", file.SizeBytes)
}

func (u *UploadController) clearFile() {
	c := u.c
	u.pending = nil

	c.page.setHTML(RoleFilePreview, "")
	c.page.hide(RoleFilePreview)
	c.page.disable(RoleAnalyzeAction)

	c.Analysis.clearResult()
	c.view.enter(ViewState{Kind: ViewUpload})
}
