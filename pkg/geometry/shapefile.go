package geometry

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ShapefileOptions names the attribute columns carried onto loaded
// points. Empty fields are simply not populated.
type ShapefileOptions struct {
	IDField          string
	ExternalIDField  string
	NameField        string
	DescriptionField string
	CodeLength       int
}

// LoadShapefilePoints reads every point record from a shapefile.
// Non-point shapes are skipped and counted. Attribute lookups are
// case-insensitive since DBF headers are frequently uppercased.
func LoadShapefilePoints(path string, opts ShapefileOptions) ([]Point, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geometry: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}

	attr := func(field string) string {
		if field == "" {
			return ""
		}
		idx, ok := fieldIdx[strings.ToLower(field)]
		if !ok {
			return ""
		}
		return strings.TrimSpace(strings.TrimRight(reader.Attribute(idx), "\x00"))
	}

	var points []Point
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()
		pt, ok := shape.(*shp.Point)
		if !ok || pt == nil {
			skipped++
			continue
		}

		pointOpts := []PointOption{
			WithID(attr(opts.IDField)),
			WithExternalID(attr(opts.ExternalIDField)),
			WithName(attr(opts.NameField)),
			WithDescription(attr(opts.DescriptionField)),
		}
		if opts.CodeLength > 0 {
			pointOpts = append(pointOpts, WithCodeLength(opts.CodeLength))
		}
		points = append(points, NewPoint(pt.Y, pt.X, pointOpts...))
	}

	if skipped > 0 {
		zap.L().Debug("geometry: skipped non-point shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}

	return points, nil
}
