// dispatch/geojson.go
// Copyright(c) 2026 dispatch planner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package dispatch

import (
	"strconv"
	"strings"

	"github.com/aerodispatch/planner/geo"
)

// renderLineString writes the literal, whitespace-free GeoJSON shape
// the external boundary contracts for: lng before lat, numbers at
// their natural floating-point precision.
func renderLineString(coords []geo.Position) string {
	var b strings.Builder
	b.WriteString(`{"type":"LineString","coordinates":[`)
	for i, p := range coords {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		b.WriteString(strconv.FormatFloat(p[0], 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(p[1], 'g', -1, 64))
		b.WriteByte(']')
	}
	b.WriteString(`]}`)
	return b.String()
}
