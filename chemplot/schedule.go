/*
 * schedule.go, part of goAPR.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chemplot

import (
	"fmt"

	"github.com/rmera/goapr/restraint"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//maxLegend is the largest number of series that get a legend entry.
const maxLegend = 8

//basicSchedulePlot returns a plot with the title, axes and grid set.
func basicSchedulePlot(title string, phase restraint.Phase) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = fmt.Sprintf("%s window", phase)
	if phase == restraint.Pull {
		p.Y.Label.Text = "Target"
	} else {
		p.Y.Label.Text = "Force constant"
	}
	p.X.Min = 0
	p.Add(plotter.NewGrid())
	return p
}

//SchedulePlot produces a plot, in PNG format, of how each restraint changes along the
//windows of phase: the force constants for the attach and release phases, the targets
//for the pull phase. Restraints not active in the phase are skipped. The extension
//must be included in filename.
func SchedulePlot(restraints []*restraint.DAT, phase restraint.Phase, title, filename string) error {
	active := make([]*restraint.DAT, 0, len(restraints))
	for _, r := range restraints {
		if r.Windows(phase) > 0 {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		return fmt.Errorf("SchedulePlot: no restraint is active in the %s phase", phase)
	}
	p := basicSchedulePlot(title, phase)
	for key, r := range active {
		s := r.Phase[phase]
		values := s.ForceConstants
		if phase == restraint.Pull {
			values = s.Targets
		}
		pts := make(plotter.XYs, len(values))
		for i, v := range values {
			pts[i].X = float64(i)
			pts[i].Y = v
		}
		l, sc, err := plotter.NewLinePoints(pts)
		if err != nil {
			return err
		}
		c := seriesColor(key, len(active))
		l.Color = c
		sc.Color = c
		sc.Radius = vg.Points(1.5)
		p.Add(l, sc)
		if len(active) <= maxLegend {
			p.Legend.Add(r.String(), l, sc)
		}
	}
	p.Legend.Top = true
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
