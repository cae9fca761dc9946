// Package pixedit implements the core of an interactive raster image editor:
// display-to-buffer coordinate mapping, a draggable crop region, CSS-style
// filter composition, freehand/shape annotation with linear snapshot history,
// and resample-and-encode export.
//
// The package is deliberately presentation-free. A frontend feeds it pointer
// events in display coordinates together with the rendered element size; all
// pixel work happens here on standard library image types. Every committed
// stage produces a new buffer and leaves its input untouched.
package pixedit
