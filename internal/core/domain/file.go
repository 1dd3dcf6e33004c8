package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Owners is the capability set controlling a file: the uploading user plus an
// optional delegated owner (uploaded on behalf of).
type Owners struct {
	Primary  uuid.UUID
	Delegate *uuid.UUID
}

// Contains reports whether id is one of the owners.
func (o Owners) Contains(id uuid.UUID) bool {
	if o.Primary == id {
		return true
	}
	return o.Delegate != nil && *o.Delegate == id
}

// FileCategory is a coarse grouping of MIME types used by search filters.
type FileCategory string

const (
	CategoryImage        FileCategory = "image"
	CategoryPDF          FileCategory = "pdf"
	CategoryDocument     FileCategory = "document"
	CategorySpreadsheet  FileCategory = "spreadsheet"
	CategoryPresentation FileCategory = "presentation"
	CategoryText         FileCategory = "text"
	CategoryOther        FileCategory = "other"
)

// CategoryFromMime maps a MIME type to its FileCategory.
func CategoryFromMime(mimeType string) FileCategory {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return CategoryImage
	case mimeType == "application/pdf":
		return CategoryPDF
	case strings.Contains(mimeType, "word") || strings.Contains(mimeType, "document"):
		return CategoryDocument
	case strings.Contains(mimeType, "sheet") || strings.Contains(mimeType, "excel"):
		return CategorySpreadsheet
	case strings.Contains(mimeType, "presentation") || strings.Contains(mimeType, "powerpoint"):
		return CategoryPresentation
	case strings.HasPrefix(mimeType, "text/"):
		return CategoryText
	default:
		return CategoryOther
	}
}

// File represents an uploaded file record. StoredPath is server-controlled
// and never derived from user input.
type File struct {
	ID           uuid.UUID
	OriginalName string
	MimeType     string
	StoredPath   string
	SizeBytes    int64
	Description  string
	Tags         []string
	Keywords     []string
	Owners       Owners
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Live reports whether the file has not been soft-deleted. All read and
// listing operations exclude non-live files outside the trash view.
func (f *File) Live() bool {
	return f.DeletedAt == nil
}

// FileSearchQuery carries the free-text query and structured filters for
// file search. Zero values mean "no filter".
type FileSearchQuery struct {
	Query    string
	Category FileCategory
	Tags     []string
	MinSize  int64
	MaxSize  int64
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}
