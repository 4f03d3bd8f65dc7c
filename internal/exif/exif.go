// Package exif validates submitted image evidence: it extracts the capture
// timestamp and geotag presence, and compares the capture date against the
// policy dates.
package exif

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"time"

	goexif "github.com/rwcarlsen/goexif/exif"
)

// ErrEvidenceUnreadable indicates the evidence bytes could not be decoded as
// an image at all. Unlike missing metadata, this is fatal: the pipeline
// aborts before MetadataCheck.
var ErrEvidenceUnreadable = errors.New("evidence unreadable")

// CaptureInfo holds what the image metadata says about when and where the
// photo was taken
type CaptureInfo struct {
	CaptureDate *time.Time
	HasGeotag   bool
}

// ExtractCaptureInfo decodes the image and pulls the EXIF capture timestamp
// and GPS presence. Absence of EXIF metadata is not an error; it yields a nil
// CaptureDate. Bytes that are not a decodable image return
// ErrEvidenceUnreadable.
func ExtractCaptureInfo(data []byte) (CaptureInfo, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return CaptureInfo{}, ErrEvidenceUnreadable
	}

	x, err := goexif.Decode(bytes.NewReader(data))
	if err != nil {
		// No EXIF block (or a corrupt one) is a soft failure: the photo is
		// still valid evidence, we just cannot date it.
		return CaptureInfo{}, nil
	}

	info := CaptureInfo{}

	if tm, err := x.DateTime(); err == nil {
		info.CaptureDate = &tm
	}

	if _, _, err := x.LatLong(); err == nil {
		info.HasGeotag = true
	}

	return info, nil
}
