//----------------------------------------------------------------------
// This file is part of leatea-routing.
// Copyright (C) 2022 Bernd Fix >Y<
//
// leatea-routing is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// leatea-routing is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package visualize

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	svg "github.com/ajstarks/svgo"
)

// SVGSink renders snapshots as SVG files under Dir, one file per
// Render call named by seq.
type SVGSink struct {
	dir    string
	width  int
	height int
	scale  float64 // pixels per meter
	seq    int
}

// NewSVGSink creates a sink writing numbered .svg files under dir. The
// field is assumed to span [0, widthM] x [0, heightM] meters.
func NewSVGSink(dir string, widthM, heightM float64) *SVGSink {
	const pixelsPerMeter = 0.05
	return &SVGSink{
		dir:    dir,
		width:  int(widthM * pixelsPerMeter),
		height: int(heightM * pixelsPerMeter),
		scale:  pixelsPerMeter,
	}
}

func (s *SVGSink) xlate(v float64) int {
	return int(v * s.scale)
}

// Render draws every node as a circle with its coverage radius and
// writes the result to dir/frame-NNNN.svg, returning that path.
func (s *SVGSink) Render(snap Snapshot) (string, error) {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(s.width, s.height)
	canvas.Rect(0, 0, s.width, s.height, "fill:white")

	for _, n := range snap.Nodes {
		style := "fill:none;stroke:gray;stroke-width:1"
		canvas.Circle(s.xlate(n.Position.X), s.xlate(n.Position.Y), s.xlate(n.Range), style)

		fill := "fill:red"
		if snap.HasObserver && n.NodeID == snap.ObserverID {
			fill = "fill:blue"
		}
		canvas.Circle(s.xlate(n.Position.X), s.xlate(n.Position.Y), 4, fill)
		canvas.Text(s.xlate(n.Position.X), s.xlate(n.Position.Y)-6, fmt.Sprintf("%d", n.NodeID),
			"text-anchor:middle;font-size:10px")
	}
	canvas.End()

	s.seq++
	path := filepath.Join(s.dir, fmt.Sprintf("frame-%04d.svg", s.seq))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("visualize: write %s: %w", path, err)
	}
	return path, nil
}
