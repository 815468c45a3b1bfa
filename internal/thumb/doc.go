// Package thumb turns pet image URLs into small terminal thumbnails.
//
// Images are downloaded on an alitto/pond worker pool so a gallery full of
// cards never opens more than MaxWorkers connections at once. Each image is
// decoded (JPEG, PNG or GIF), scaled with nfnt/resize to fit the card and
// painted with upper half blocks, two pixels per cell.
//
// A failed load is reported to the caller, which decides whether to fall back
// to the placeholder image; the loader keeps no cache of its own.
package thumb
