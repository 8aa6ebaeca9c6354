package models

import "time"

// StoredFile is the metadata row describing one encrypted blob at rest.
//
// The ciphertext itself lives on the filesystem under StoredName; the
// database only carries metadata. A metadata row and its blob exist
// together or not at all — creation and deletion paths must keep the two
// in step.
type StoredFile struct {
	// FileID is the internal unique identifier of the file.
	FileID int64 `json:"id"`

	// OwnerID references the user who uploaded the file.
	// It must resolve to an existing user at write time.
	OwnerID int64 `json:"-"`

	// Filename is the original client-supplied name, kept for display and
	// download responses. It takes no part in the on-disk path.
	Filename string `json:"filename"`

	// StoredName is the server-generated unguessable on-disk name of the
	// ciphertext blob (a random component plus the ".enc" suffix).
	StoredName string `json:"-"`

	// Path is the absolute location of the ciphertext blob on disk.
	Path string `json:"-"`

	// Size is the declared size of the stored ciphertext in bytes.
	Size int64 `json:"size"`

	// ContentType is the MIME type declared at upload.
	ContentType string `json:"file_type"`

	// IsDeleted soft-deletes the file: the row stays for audit, the file
	// no longer appears in listings and cannot be downloaded or shared.
	IsDeleted bool `json:"-"`

	// CreatedAt is the upload timestamp.
	CreatedAt time.Time `json:"upload_date"`
}

// TableName returns the name of the database table
// associated with the StoredFile model.
func (f StoredFile) TableName() string {
	return "files"
}
