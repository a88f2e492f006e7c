// Package extract persists image-block regions as standalone assets.
// For every Image block it crops the block's region from the page
// raster, composites it onto white, and writes a JPEG into the image
// directory. Asset names are sequential within the document and are a
// pure function of the block's position, so repeated and parallel runs
// produce identical names without coordination.
package extract

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"os"
	"path"
	"path/filepath"

	"github.com/tsawler/folio/internal/atomicfile"
	"github.com/tsawler/folio/model"
)

// jpegQuality is the encoding quality for extracted assets.
const jpegQuality = 95

// Skip records one image block that produced no asset. Skips are
// expected operation, not failure: the block simply renders as a
// placeholder downstream.
type Skip struct {
	Page   int
	Reason string
}

// Extract writes a JPEG asset for every Image block whose region can
// be cropped from its page raster, and sets the block's AssetPath
// relative to refDir. rasters holds one entry per page; nil entries
// mean no raster was supplied for that page.
//
// Blocks that cannot be extracted (missing raster, no geometry, region
// degenerate after clamping, encode failure) are skipped and reported;
// their AssetPath stays empty. Skipped blocks still consume their
// sequence number, keeping names stable for a given document.
//
// The returned error covers only the image directory itself; a failed
// directory downgrades every block to a skip at the caller's
// discretion.
func Extract(doc *model.Document, rasters []image.Image, imageDir, refDir string) ([]Skip, error) {
	images := doc.Images()
	if len(images) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}

	var skips []Skip
	for n, block := range images {
		name := fmt.Sprintf("image_%d.jpg", n)

		var raster image.Image
		if block.PageIndex >= 0 && block.PageIndex < len(rasters) {
			raster = rasters[block.PageIndex]
		}
		if raster == nil {
			skips = append(skips, Skip{Page: block.PageIndex, Reason: "no source raster"})
			continue
		}
		if !block.HasRegions() {
			skips = append(skips, Skip{Page: block.PageIndex, Reason: "image block has no region"})
			continue
		}

		crop, ok := cropRegion(raster, block.Regions[0])
		if !ok {
			skips = append(skips, Skip{Page: block.PageIndex, Reason: "region degenerate after clamping"})
			continue
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, crop, &jpeg.Options{Quality: jpegQuality}); err != nil {
			skips = append(skips, Skip{Page: block.PageIndex, Reason: fmt.Sprintf("encode: %v", err)})
			continue
		}
		if err := atomicfile.WriteFile(filepath.Join(imageDir, name), buf.Bytes()); err != nil {
			skips = append(skips, Skip{Page: block.PageIndex, Reason: fmt.Sprintf("write: %v", err)})
			continue
		}

		block.AssetPath = path.Join(refDir, name)
	}
	return skips, nil
}

// cropRegion scales a tag-space region onto the raster, clamps it, and
// renders the covered pixels onto a white canvas. JPEG has no alpha,
// so transparent sources composite against white rather than black.
func cropRegion(raster image.Image, region model.Region) (image.Image, bool) {
	bounds := raster.Bounds()
	px := region.Scale(bounds.Dx(), bounds.Dy()).Clamp(bounds.Dx(), bounds.Dy())
	if !px.Valid() {
		return nil, false
	}

	crop := image.NewRGBA(image.Rect(0, 0, px.Width(), px.Height()))
	draw.Draw(crop, crop.Bounds(), image.White, image.Point{}, draw.Src)
	src := bounds.Min.Add(image.Pt(px.X1, px.Y1))
	draw.Draw(crop, crop.Bounds(), raster, src, draw.Over)
	return crop, true
}
